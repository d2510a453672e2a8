package session

import (
	"testing"
	"time"

	"auction-room/internal/models"

	"github.com/stretchr/testify/require"
)

func TestTimer_Lifecycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timer := NewTimer(10 * time.Second)

	require.Equal(t, models.TimerIdle, timer.Phase())
	require.Equal(t, 10, timer.RemainingSeconds(now))
	require.False(t, timer.Expired(now.Add(time.Hour)))

	timer.Activity(now)
	require.Equal(t, models.TimerRunning, timer.Phase())
	require.Equal(t, 10, timer.RemainingSeconds(now))
	require.Equal(t, 10, timer.RemainingSeconds(now.Add(100*time.Millisecond)))
	require.Equal(t, 1, timer.RemainingSeconds(now.Add(9*time.Second+time.Millisecond)))
	require.False(t, timer.Expired(now.Add(9*time.Second)))
	require.True(t, timer.Expired(now.Add(10*time.Second)))
	require.Equal(t, 0, timer.RemainingSeconds(now.Add(11*time.Second)))

	// activity resets to the full duration
	timer.Activity(now.Add(8 * time.Second))
	require.Equal(t, 10, timer.RemainingSeconds(now.Add(8*time.Second)))
	require.False(t, timer.Expired(now.Add(10*time.Second)))

	require.True(t, timer.End())
	require.False(t, timer.End())
	require.Equal(t, models.TimerEnded, timer.Phase())
	require.Equal(t, 0, timer.RemainingSeconds(now))

	// ended is terminal
	timer.Activity(now.Add(20 * time.Second))
	require.Equal(t, models.TimerEnded, timer.Phase())
	require.False(t, timer.Expired(now.Add(time.Hour)))
}

func TestTimer_State(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timer := NewTimer(90 * time.Second)
	timer.Activity(now)

	require.Equal(t, models.TimerState{
		Phase:            models.TimerRunning,
		RemainingSeconds: 60,
		DurationSeconds:  90,
	}, timer.State(now.Add(30*time.Second)))
}

func TestDurationSeconds(t *testing.T) {
	require.Equal(t, 0, durationSeconds(0))
	require.Equal(t, 1, durationSeconds(time.Nanosecond))
	require.Equal(t, 1, durationSeconds(time.Second))
	require.Equal(t, 2, durationSeconds(1500*time.Millisecond))
}
