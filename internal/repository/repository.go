package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"auction-room/internal/biddingerrors"
	model "auction-room/internal/models"
	"fmt"
	"sync"
)

// AuctionDB defines the bid ledger storage interface for the auction room
type AuctionDB interface {
	RecordBid(bid model.Bid) error
	GetBids() ([]model.Bid, error)
	GetWinningBid() (model.Bid, error)
	CountBids() int
}

// ChatLog defines the append-only chat history storage
type ChatLog interface {
	AppendMessage(msg model.ChatMessage)
	GetMessages(limit int) []model.ChatMessage
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB and ChatLog
type MemoryRepo struct {
	mu       sync.RWMutex
	bids     []model.Bid // acceptance order, never reordered
	winning  int         // index into bids, -1 when empty
	messages []model.ChatMessage
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		winning: -1,
	}
}

// RecordBid appends a bid to the ledger and moves the winning pointer if it ranks higher
func (r *MemoryRepo) RecordBid(bid model.Bid) error {
	if bid.Username == "" {
		return fmt.Errorf("record bid %s: %w - missing username", bid.BidID, biddingerrors.ErrInvalidBid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bids = append(r.bids, bid)
	if r.winning < 0 || Outranks(bid, r.bids[r.winning]) {
		r.winning = len(r.bids) - 1
	}
	return nil
}

// GetBids returns all accepted bids in acceptance order
func (r *MemoryRepo) GetBids() ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.bids) == 0 {
		return nil, fmt.Errorf("get bids: %w", biddingerrors.ErrNoBids)
	}
	return append([]model.Bid(nil), r.bids...), nil
}

// GetWinningBid returns the highest bid in the ledger
func (r *MemoryRepo) GetWinningBid() (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.winning < 0 {
		return model.Bid{}, fmt.Errorf("get winning bid: %w", biddingerrors.ErrNoBids)
	}
	return r.bids[r.winning], nil
}

// CountBids returns the ledger length
func (r *MemoryRepo) CountBids() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bids)
}

// AppendMessage appends a chat message to the log
func (r *MemoryRepo) AppendMessage(msg model.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

// GetMessages returns the most recent limit messages in insertion order; limit <= 0 returns all
func (r *MemoryRepo) GetMessages(limit int) []model.ChatMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start := 0
	if limit > 0 && len(r.messages) > limit {
		start = len(r.messages) - limit
	}
	return append([]model.ChatMessage{}, r.messages[start:]...)
}

// Outranks reports whether a ranks above b: higher amount wins, equal amounts go to the earlier bid
func Outranks(a, b model.Bid) bool {
	switch a.Amount.Cmp(b.Amount) {
	case 1:
		return true
	case -1:
		return false
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// Highest scans bids and returns the top-ranked one; ties that share a timestamp keep the first seen
func Highest(bids []model.Bid) (model.Bid, bool) {
	if len(bids) == 0 {
		return model.Bid{}, false
	}
	winning := bids[0]
	for _, b := range bids[1:] {
		if Outranks(b, winning) {
			winning = b
		}
	}
	return winning, true
}
