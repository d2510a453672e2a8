package helpers

import (
	"encoding/json"
	"time"

	"auction-room/internal/events"
	model "auction-room/internal/models"
)

// Response DTOs
type BidResponse struct {
	BidID     string      `json:"bid_id"`
	Username  string      `json:"username"`
	Amount    json.Number `json:"amount"`
	CreatedAt string      `json:"created_at"`
}

type UsersResponse struct {
	Users []string `json:"users"`
	Count int      `json:"count"`
}

type TimerResponse struct {
	Phase     model.TimerPhase `json:"phase"`
	Remaining int              `json:"remaining"`
	Duration  int              `json:"duration"`
}

// NewBidResponse converts a ledger bid into its HTTP form
func NewBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		Username:  bid.Username,
		Amount:    events.FormatAmount(bid),
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}
