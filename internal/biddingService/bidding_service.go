package bidding

import (
	"auction-room/internal/biddingerrors"
	"auction-room/internal/models"
	"auction-room/internal/repository"
	"auction-room/utils"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// amountScale is the number of decimal places a bid amount may carry
const amountScale = 2

// BiddingService validates and ranks bid submissions against the room ledger
type BiddingService struct {
	repo repository.AuctionDB
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB) *BiddingService {
	return &BiddingService{
		repo: repo,
	}
}

// PlaceBid validates and records a user's bid.
// moved reports whether the bid became the new highest bid.
func (s *BiddingService) PlaceBid(username string, amount decimal.Decimal, now time.Time) (bid models.Bid, moved bool, err error) {
	previous, hadBid, err := s.validateBid(username, amount)
	if err != nil {
		return models.Bid{}, false, err
	}

	bid = models.Bid{
		BidID:     utils.GenerateID(),
		Username:  username,
		Amount:    amount,
		CreatedAt: now.UTC(),
	}

	if err := s.repo.RecordBid(bid); err != nil {
		return models.Bid{}, false, fmt.Errorf("service: failed to record bid by user %s: %w", username, err)
	}

	winning, err := s.repo.GetWinningBid()
	if err != nil {
		return models.Bid{}, false, fmt.Errorf("service: failed to read winning bid: %w", err)
	}

	moved = !hadBid || winning.BidID != previous.BidID
	return bid, moved, nil
}

// validateBid checks input validity and the strictly-greater rule
func (s *BiddingService) validateBid(username string, amount decimal.Decimal) (models.Bid, bool, error) {
	if username == "" {
		return models.Bid{}, false, fmt.Errorf("service: %w - missing username", biddingerrors.ErrInvalidBid)
	}
	if !amount.IsPositive() {
		return models.Bid{}, false, fmt.Errorf("service: %w - non-positive bid amount", biddingerrors.ErrInvalidBid)
	}
	if !amount.Equal(amount.Truncate(amountScale)) {
		return models.Bid{}, false, fmt.Errorf("service: %w - more than %d decimal places", biddingerrors.ErrInvalidBid, amountScale)
	}

	winningBid, err := s.repo.GetWinningBid()
	if err == nil {
		if amount.LessThanOrEqual(winningBid.Amount) {
			return models.Bid{}, false, fmt.Errorf("service: %w - current highest bid is %s", biddingerrors.ErrBidTooLow, winningBid.Amount.StringFixed(amountScale))
		}
		return winningBid, true, nil
	} else if !errors.Is(err, biddingerrors.ErrNoBids) {
		return models.Bid{}, false, fmt.Errorf("service: failed to check winning bid: %w", err)
	}

	return models.Bid{}, false, nil
}

// GetBids returns all accepted bids in acceptance order; an empty ledger is not an error
func (s *BiddingService) GetBids() ([]models.Bid, error) {
	bids, err := s.repo.GetBids()
	if err != nil {
		if errors.Is(err, biddingerrors.ErrNoBids) {
			return []models.Bid{}, nil
		}
		return nil, fmt.Errorf("service: failed to get bids: %w", err)
	}

	return bids, nil
}

// GetWinningBid returns the current highest bid
func (s *BiddingService) GetWinningBid() (models.Bid, error) {
	winningBid, err := s.repo.GetWinningBid()
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid: %w", err)
	}

	return winningBid, nil
}

// CountBids returns the number of accepted bids
func (s *BiddingService) CountBids() int {
	return s.repo.CountBids()
}
