// Package decoder turns raw inbound connection frames into typed room commands.
// Decoding is pure: it never touches room state and is safe to run on every
// connection's read loop concurrently.
package decoder

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"auction-room/internal/biddingerrors"

	"github.com/shopspring/decimal"
)

// Inbound event names
const (
	EventSetUsername       = "set_username"
	EventMessage           = "message"
	EventGetUsersList      = "get_users_list"
	EventRequestHistory    = "request_history"
	EventRequestHighestBid = "request_highest_bidder"
	EventGetBids           = "get_bids"
	EventTyping            = "typing"
	EventStoppedTyping     = "stopped_typing"
)

// Kind identifies the command decoded from a frame
type Kind int

const (
	SetUsername Kind = iota + 1
	Chat
	Bid
	RequestRoster
	RequestHistory
	RequestHighestBid
	RequestBids
	Typing
	StoppedTyping
)

func (k Kind) String() string {
	switch k {
	case SetUsername:
		return "SetUsername"
	case Chat:
		return "Chat"
	case Bid:
		return "Bid"
	case RequestRoster:
		return "RequestRoster"
	case RequestHistory:
		return "RequestHistory"
	case RequestHighestBid:
		return "RequestHighestBid"
	case RequestBids:
		return "RequestBids"
	case Typing:
		return "Typing"
	case StoppedTyping:
		return "StoppedTyping"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Command is one decoded inbound request
type Command struct {
	Kind     Kind
	Username string          // SetUsername
	Text     string          // Chat and Bid: the literal message text
	Amount   decimal.Decimal // Bid
}

// Envelope is the inbound wire frame
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

const bidPrefix = "bid "

var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// Decode parses a raw frame. username is the name already bound to the
// connection, or "" if it has not joined yet.
func Decode(raw []byte, username string) (Command, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Command{}, fmt.Errorf("decode: %w - %v", biddingerrors.ErrMalformedInput, err)
	}

	switch env.Event {
	case EventSetUsername:
		if username != "" {
			return Command{}, fmt.Errorf("decode: %w - already bound to %q", biddingerrors.ErrDuplicateName, username)
		}
		name, err := stringData(env)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: SetUsername, Username: strings.TrimSpace(name)}, nil

	case EventMessage:
		text, err := stringData(env)
		if err != nil {
			return Command{}, err
		}
		return ParseMessage(text)

	case EventGetUsersList:
		return Command{Kind: RequestRoster}, nil
	case EventRequestHistory:
		return Command{Kind: RequestHistory}, nil
	case EventRequestHighestBid:
		return Command{Kind: RequestHighestBid}, nil
	case EventGetBids:
		return Command{Kind: RequestBids}, nil
	case EventTyping:
		return Command{Kind: Typing}, nil
	case EventStoppedTyping:
		return Command{Kind: StoppedTyping}, nil
	}

	return Command{}, fmt.Errorf("decode: %w - unknown event %q", biddingerrors.ErrMalformedInput, env.Event)
}

// ParseMessage classifies chat text. "bid <amount>" with a positive amount of
// at most two decimals is a Bid; any other non-empty text is Chat, including
// malformed bids.
func ParseMessage(text string) (Command, error) {
	if strings.TrimSpace(text) == "" {
		return Command{}, fmt.Errorf("decode: %w", biddingerrors.ErrEmptyMessage)
	}

	if len(text) > len(bidPrefix) && strings.EqualFold(text[:len(bidPrefix)], bidPrefix) {
		if amount, ok := parseAmount(strings.TrimSpace(text[len(bidPrefix):])); ok {
			return Command{Kind: Bid, Text: text, Amount: amount}, nil
		}
	}

	return Command{Kind: Chat, Text: text}, nil
}

func parseAmount(s string) (decimal.Decimal, bool) {
	if !amountPattern.MatchString(s) {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(s)
	if err != nil || !amount.IsPositive() {
		return decimal.Decimal{}, false
	}
	return amount, true
}

func stringData(env Envelope) (string, error) {
	var s string
	if len(env.Data) == 0 {
		return "", fmt.Errorf("decode: %w - %s requires a string payload", biddingerrors.ErrMalformedInput, env.Event)
	}
	if err := json.Unmarshal(env.Data, &s); err != nil {
		return "", fmt.Errorf("decode: %w - %s requires a string payload", biddingerrors.ErrMalformedInput, env.Event)
	}
	return s, nil
}
