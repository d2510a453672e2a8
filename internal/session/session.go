// Package session is the authoritative state of one auction room. Every
// command, timer tick and disconnect is applied under a single lock, and the
// events each one produces are handed to the broadcaster before the lock is
// released, so all connections observe one total order of changes.
package session

//go:generate mockgen -source=session.go -destination=mock_broadcaster.go -package=session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	bidding "auction-room/internal/biddingService"
	"auction-room/internal/biddingerrors"
	"auction-room/internal/decoder"
	"auction-room/internal/dispatcher"
	"auction-room/internal/events"
	"auction-room/internal/models"
	"auction-room/internal/monitoring"
	"auction-room/internal/repository"
	"auction-room/utils"

	"github.com/jonboulle/clockwork"
)

// Broadcaster delivers the events produced by one serialized mutation
type Broadcaster interface {
	Dispatch(deliveries []dispatcher.Delivery)
}

// Clock is the time source for timestamps and the countdown.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) clockwork.Ticker
}

// Options configures a Session
type Options struct {
	BidDuration       time.Duration
	TickInterval      time.Duration
	HistoryLimit      int
	MaxUsernameLength int
	Clock             Clock
	Monitor           *monitoring.Monitor
}

// Session owns the roster, bid ledger, chat log and countdown of one room
type Session struct {
	mu          sync.Mutex
	opts        Options
	clock       Clock
	bidding     *bidding.BiddingService
	chat        repository.ChatLog
	roster      *Roster
	timer       *Timer
	broadcaster Broadcaster
	monitor     *monitoring.Monitor
}

// New creates an idle room: empty roster, ledger and chat log
func New(bids repository.AuctionDB, chat repository.ChatLog, broadcaster Broadcaster, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Monitor == nil {
		opts.Monitor = monitoring.NewMonitor()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	return &Session{
		opts:        opts,
		clock:       opts.Clock,
		bidding:     bidding.NewBiddingService(bids),
		chat:        chat,
		roster:      NewRoster(),
		timer:       NewTimer(opts.BidDuration),
		broadcaster: broadcaster,
		monitor:     opts.Monitor,
	}
}

// Handle applies one decoded command from connID. A rejected command is
// reported to connID only and its error returned to the caller.
func (s *Session) Handle(connID string, cmd decoder.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deliveries, err := s.apply(connID, cmd)
	if err != nil {
		deliveries = append(deliveries, s.rejection(connID, err))
		utils.Debug("command rejected", map[string]any{
			"connection_id": connID,
			"command":       cmd.Kind.String(),
			"error":         err.Error(),
		})
	}
	s.dispatch(deliveries)
	return err
}

// Reject reports a command that failed before reaching the room, such as a
// decoding error, to connID only.
func (s *Session) Reject(connID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dispatch([]dispatcher.Delivery{s.rejection(connID, err)})
}

// Disconnect removes connID from the roster. Calling it more than once, or
// for a connection that never joined, emits nothing.
func (s *Session) Disconnect(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dispatch(s.leave(connID))
}

// Tick advances the countdown. It reports whether the auction has ended.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if closing := s.expire(now); closing != nil {
		s.dispatch(closing)
		return true
	}
	switch s.timer.Phase() {
	case models.TimerEnded:
		return true
	case models.TimerIdle:
		return false
	}

	s.dispatch([]dispatcher.Delivery{{
		Event:  events.NewTimerEvent(s.timer.RemainingSeconds(now)),
		Target: dispatcher.All(),
	}})
	return false
}

// Close force-ends the auction if it has not ended yet and returns the result
func (s *Session) Close() models.AuctionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer.Phase() != models.TimerEnded {
		s.dispatch(s.end())
	}
	return s.result()
}

// HighestBid returns the current highest bid
func (s *Session) HighestBid() (models.Bid, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bid, err := s.bidding.GetWinningBid()
	if err != nil {
		return models.Bid{}, false
	}
	return bid, true
}

// Bids returns every accepted bid in acceptance order
func (s *Session) Bids() ([]models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bidding.GetBids()
}

// Users returns the current usernames in join order
func (s *Session) Users() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Users()
}

// History returns the chat log as sent in catch-up snapshots
func (s *Session) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chat.GetMessages(s.opts.HistoryLimit)
}

// Timer returns the countdown state
func (s *Session) Timer() models.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.dispatch(s.expire(now))
	return s.timer.State(now)
}

func (s *Session) dispatch(deliveries []dispatcher.Delivery) {
	if len(deliveries) == 0 {
		return
	}
	s.broadcaster.Dispatch(deliveries)
}

func (s *Session) apply(connID string, cmd decoder.Command) ([]dispatcher.Delivery, error) {
	switch cmd.Kind {
	case decoder.SetUsername:
		return s.join(connID, cmd.Username)
	case decoder.Chat:
		return s.postChat(connID, cmd.Text)
	case decoder.Bid:
		return s.submitBid(connID, cmd)
	case decoder.RequestRoster:
		return only(connID, events.NewUsersListEvent(s.roster.Users())), nil
	case decoder.RequestHistory:
		return only(connID, events.NewChatHistoryEvent(s.chat.GetMessages(s.opts.HistoryLimit))), nil
	case decoder.RequestHighestBid:
		return only(connID, s.highestBidEvent()), nil
	case decoder.RequestBids:
		bids, err := s.bidding.GetBids()
		if err != nil {
			return nil, err
		}
		return only(connID, events.NewAllBidsEvent(bids)), nil
	case decoder.Typing, decoder.StoppedTyping:
		return s.typing(connID, cmd.Kind), nil
	}
	return nil, fmt.Errorf("session: %w - unsupported command %s", biddingerrors.ErrMalformedInput, cmd.Kind)
}

func (s *Session) join(connID, username string) ([]dispatcher.Delivery, error) {
	if err := ValidateUsername(username, s.opts.MaxUsernameLength); err != nil {
		return nil, err
	}
	if err := s.roster.Join(connID, username); err != nil {
		return nil, err
	}

	notice := s.appendChat(username, fmt.Sprintf("%s joined the auction", username), models.MessageKindSystem)
	users := s.roster.Users()
	s.monitor.SetParticipants(s.roster.Count())

	utils.Info("user joined", map[string]any{
		"connection_id": connID,
		"username":      username,
		"participants":  len(users),
	})

	return []dispatcher.Delivery{
		{Event: events.NewUserJoinedEvent(username, users), Target: dispatcher.All()},
		{Event: events.NewUsersCountEvent(len(users)), Target: dispatcher.All()},
		{Event: events.NewResponseEvent(notice), Target: dispatcher.All()},
		// catch-up snapshots, taken at the same serialized point as the broadcasts above
		{Event: events.NewChatHistoryEvent(s.chat.GetMessages(s.opts.HistoryLimit)), Target: dispatcher.Only(connID)},
		{Event: s.highestBidEvent(), Target: dispatcher.Only(connID)},
		{Event: events.NewUsersListEvent(users), Target: dispatcher.Only(connID)},
	}, nil
}

func (s *Session) leave(connID string) []dispatcher.Delivery {
	p, ok := s.roster.Leave(connID)
	if !ok {
		return nil
	}

	notice := s.appendChat(p.Username, fmt.Sprintf("%s left the auction", p.Username), models.MessageKindSystem)
	users := s.roster.Users()
	s.monitor.SetParticipants(s.roster.Count())

	utils.Info("user left", map[string]any{
		"connection_id": connID,
		"username":      p.Username,
		"participants":  len(users),
	})

	return []dispatcher.Delivery{
		{Event: events.NewUserLeftEvent(p.Username, users), Target: dispatcher.AllExcept(connID)},
		{Event: events.NewUsersCountEvent(len(users)), Target: dispatcher.AllExcept(connID)},
		{Event: events.NewResponseEvent(notice), Target: dispatcher.AllExcept(connID)},
	}
}

func (s *Session) postChat(connID, text string) ([]dispatcher.Delivery, error) {
	username, ok := s.roster.Username(connID)
	if !ok {
		return nil, fmt.Errorf("session: %w", biddingerrors.ErrNotJoined)
	}

	msg := s.appendChat(username, text, models.MessageKindUser)
	s.monitor.TrackChatMessage()
	return []dispatcher.Delivery{{Event: events.NewResponseEvent(msg), Target: dispatcher.All()}}, nil
}

func (s *Session) submitBid(connID string, cmd decoder.Command) ([]dispatcher.Delivery, error) {
	username, ok := s.roster.Username(connID)
	if !ok {
		return nil, fmt.Errorf("session: %w", biddingerrors.ErrNotJoined)
	}

	// a deadline that passed between ticks ends the auction before this bid is considered
	now := s.clock.Now()
	closing := s.expire(now)
	if s.timer.Phase() == models.TimerEnded {
		s.monitor.TrackBid("rejected")
		return closing, fmt.Errorf("session: %w - no further bids are accepted", biddingerrors.ErrAuctionEnded)
	}

	bid, moved, err := s.bidding.PlaceBid(username, cmd.Amount, now)
	if err != nil {
		s.monitor.TrackBid("rejected")
		return nil, err
	}
	s.monitor.TrackBid("accepted")

	msg := s.appendChat(username, cmd.Text, models.MessageKindUser)
	s.timer.Activity(now)

	utils.Info("bid accepted", map[string]any{
		"bid_id":   bid.BidID,
		"username": username,
		"amount":   bid.Amount.StringFixed(2),
	})

	deliveries := []dispatcher.Delivery{{Event: events.NewBidEvent(bid), Target: dispatcher.All()}}
	if moved {
		deliveries = append(deliveries, dispatcher.Delivery{Event: events.NewHighestBidEvent(&bid), Target: dispatcher.All()})
	}
	deliveries = append(deliveries,
		dispatcher.Delivery{Event: events.NewResponseEvent(msg), Target: dispatcher.All()},
		dispatcher.Delivery{Event: events.NewTimerEvent(s.timer.RemainingSeconds(now)), Target: dispatcher.All()},
	)
	return deliveries, nil
}

func (s *Session) typing(connID string, kind decoder.Kind) []dispatcher.Delivery {
	username, ok := s.roster.Username(connID)
	if !ok {
		return nil
	}
	ev := events.NewTypingEvent(username)
	if kind == decoder.StoppedTyping {
		ev = events.NewStoppedTypingEvent(username)
	}
	return []dispatcher.Delivery{{Event: ev, Target: dispatcher.AllExcept(connID)}}
}

// expire ends the auction if the running countdown has reached its deadline
func (s *Session) expire(now time.Time) []dispatcher.Delivery {
	if !s.timer.Expired(now) {
		return nil
	}
	return s.end()
}

// end transitions the timer to ended and announces the result exactly once
func (s *Session) end() []dispatcher.Delivery {
	if !s.timer.End() {
		return nil
	}

	result := s.result()
	deliveries := []dispatcher.Delivery{{Event: events.NewAuctionEndEvent(result), Target: dispatcher.All()}}
	if result.Winner != nil {
		deliveries = append(deliveries, dispatcher.Delivery{Event: events.NewHighestBidEvent(result.Winner), Target: dispatcher.All()})
		utils.Info("auction ended", map[string]any{
			"winner": result.Winner.Username,
			"amount": result.Winner.Amount.StringFixed(2),
			"bids":   s.bidding.CountBids(),
		})
	} else {
		utils.Info("auction ended with no bids", nil)
	}
	return deliveries
}

func (s *Session) result() models.AuctionResult {
	winner, err := s.bidding.GetWinningBid()
	if err != nil {
		return models.AuctionResult{}
	}
	return models.AuctionResult{Winner: &winner}
}

func (s *Session) highestBidEvent() events.Event {
	winner, err := s.bidding.GetWinningBid()
	if err != nil {
		return events.NewHighestBidEvent(nil)
	}
	return events.NewHighestBidEvent(&winner)
}

func (s *Session) appendChat(username, text string, kind models.MessageKind) models.ChatMessage {
	msg := models.ChatMessage{
		Username:  username,
		Text:      text,
		Timestamp: s.clock.Now().UTC(),
		Kind:      kind,
	}
	s.chat.AppendMessage(msg)
	return msg
}

func (s *Session) rejection(connID string, err error) dispatcher.Delivery {
	kind := biddingerrors.Kind(err)
	s.monitor.TrackRejection(kind)
	return dispatcher.Delivery{Event: events.NewErrorEvent(kind, publicMessage(err)), Target: dispatcher.Only(connID)}
}

// publicMessage strips the layer prefixes ("service: ", "decode: ") from an error
func publicMessage(err error) string {
	msg := err.Error()
	for {
		i := strings.Index(msg, ": ")
		if i < 0 || strings.ContainsAny(msg[:i], " -") {
			return msg
		}
		msg = msg[i+2:]
	}
}

func only(connID string, ev events.Event) []dispatcher.Delivery {
	return []dispatcher.Delivery{{Event: ev, Target: dispatcher.Only(connID)}}
}

