package session

import (
	"context"
	"time"

	"auction-room/internal/models"
	"auction-room/utils"
)

// Timer is the auction countdown: idle until the first accepted bid, then
// running until its deadline passes, then ended for good.
type Timer struct {
	phase    models.TimerPhase
	duration time.Duration
	deadline time.Time
}

func NewTimer(duration time.Duration) *Timer {
	return &Timer{phase: models.TimerIdle, duration: duration}
}

func (t *Timer) Phase() models.TimerPhase {
	return t.phase
}

// Activity starts the countdown, or resets it to the full duration if it is
// already running. It has no effect once the timer has ended.
func (t *Timer) Activity(now time.Time) {
	if t.phase == models.TimerEnded {
		return
	}
	t.phase = models.TimerRunning
	t.deadline = now.Add(t.duration)
}

// Expired reports whether a running countdown has reached zero
func (t *Timer) Expired(now time.Time) bool {
	return t.phase == models.TimerRunning && !now.Before(t.deadline)
}

// End moves the timer to ended. It reports false if it had already ended.
func (t *Timer) End() bool {
	if t.phase == models.TimerEnded {
		return false
	}
	t.phase = models.TimerEnded
	return true
}

// RemainingSeconds rounds the time left up to whole seconds
func (t *Timer) RemainingSeconds(now time.Time) int {
	switch t.phase {
	case models.TimerIdle:
		return durationSeconds(t.duration)
	case models.TimerEnded:
		return 0
	}
	left := t.deadline.Sub(now)
	if left <= 0 {
		return 0
	}
	return durationSeconds(left)
}

func (t *Timer) State(now time.Time) models.TimerState {
	return models.TimerState{
		Phase:            t.phase,
		RemainingSeconds: t.RemainingSeconds(now),
		DurationSeconds:  durationSeconds(t.duration),
	}
}

func durationSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}

// RunTimer drives Tick on the configured cadence until ctx is cancelled or
// the auction ends.
func (s *Session) RunTimer(ctx context.Context) {
	ticker := s.clock.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()

	utils.Info("timer controller started", map[string]any{
		"tick_interval": s.opts.TickInterval.String(),
		"bid_duration":  s.opts.BidDuration.String(),
	})

	for {
		select {
		case <-ctx.Done():
			utils.Info("timer controller stopped", nil)
			return
		case <-ticker.Chan():
			if ended := s.Tick(); ended {
				utils.Info("timer controller finished, auction ended", nil)
				return
			}
		}
	}
}
