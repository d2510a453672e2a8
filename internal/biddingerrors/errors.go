package biddingerrors

import "errors"

// Repository-level errors
var (
	ErrNoBids = errors.New("no bids placed")
)

// business logic errors
var (
	ErrInvalidBid     = errors.New("invalid bid")
	ErrBidTooLow      = errors.New("bid amount too low")
	ErrAuctionEnded   = errors.New("auction has ended")
	ErrInvalidName    = errors.New("invalid username")
	ErrDuplicateName  = errors.New("username already set for this connection")
	ErrAlreadyJoined  = errors.New("connection already joined")
	ErrNotJoined      = errors.New("connection has not set a username")
	ErrEmptyMessage   = errors.New("empty message")
	ErrMalformedInput = errors.New("malformed command")
)

// Error kinds reported to the sender of a rejected command
const (
	KindBidRejected        = "BidRejected"
	KindValidationRejected = "ValidationRejected"
	KindDuplicateUsername  = "DuplicateUsernameAssignment"
	KindAlreadyJoined      = "AlreadyJoined"
	KindNotJoined          = "NotJoined"
	KindMalformedCommand   = "MalformedCommand"
	KindInternal           = "Internal"
)

// Kind maps an error onto the kind string sent to clients
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrBidTooLow), errors.Is(err, ErrAuctionEnded), errors.Is(err, ErrInvalidBid):
		return KindBidRejected
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrEmptyMessage):
		return KindValidationRejected
	case errors.Is(err, ErrDuplicateName):
		return KindDuplicateUsername
	case errors.Is(err, ErrAlreadyJoined):
		return KindAlreadyJoined
	case errors.Is(err, ErrNotJoined):
		return KindNotJoined
	case errors.Is(err, ErrMalformedInput):
		return KindMalformedCommand
	default:
		return KindInternal
	}
}
