package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Participant is a connection bound to a self-declared username
type Participant struct {
	ConnectionID string `json:"connection_id"`
	Username     string `json:"username"`
}

// MessageKind separates coordinator-generated chat lines from user ones
type MessageKind string

const (
	MessageKindSystem MessageKind = "system"
	MessageKindUser   MessageKind = "user"
)

// ChatMessage is one immutable entry of the room's chat log
type ChatMessage struct {
	Username  string      `json:"username"`
	Text      string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Kind      MessageKind `json:"type"`
}

// Bid represents an accepted bid in the room's ledger
type Bid struct {
	BidID     string          `json:"bid_id"`
	Username  string          `json:"username"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"timestamp"`
}

// TimerPhase is the lifecycle phase of the auction countdown
type TimerPhase string

const (
	TimerIdle    TimerPhase = "idle"
	TimerRunning TimerPhase = "running"
	TimerEnded   TimerPhase = "ended"
)

// TimerState is a point-in-time view of the countdown
type TimerState struct {
	Phase            TimerPhase `json:"phase"`
	RemainingSeconds int        `json:"remaining"`
	DurationSeconds  int        `json:"duration"`
}

// AuctionResult is the outcome reported once the auction ends.
// Winner is nil when the auction closed without any accepted bid.
type AuctionResult struct {
	Winner *Bid
}
