package events

import (
	"encoding/json"
	"time"

	"auction-room/internal/models"
)

// Name is the wire name of an outbound event
type Name string

const (
	ChatHistory       Name = "chat_history"
	HighestBid        Name = "highest_bid"
	Response          Name = "response"
	NewBid            Name = "new_bid"
	UsersCount        Name = "users_count"
	UserJoined        Name = "user_joined"
	UserLeft          Name = "user_left"
	UsersList         Name = "users_list"
	BidTimer          Name = "bid_timer"
	AuctionEnd        Name = "auction_end"
	AllBids           Name = "all_bids"
	UserTyping        Name = "user_typing"
	UserStoppedTyping Name = "user_stopped_typing"
	Error             Name = "error"
)

// NoBidsMessage is reported when the auction closes without any accepted bid
const NoBidsMessage = "no bids placed"

// NoHighestBidMessage is reported when the highest bid is requested from an empty ledger
const NoHighestBidMessage = "No bids placed yet"

// Event is one outbound notification as written on the wire
type Event struct {
	Name Name `json:"event"`
	Data any  `json:"data"`
}

// Marshal encodes the event envelope
func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// BidPayload is the wire form of a bid; amounts are sent as numbers with two decimals
type BidPayload struct {
	BidID     string      `json:"bid_id"`
	Username  string      `json:"username"`
	Amount    json.Number `json:"amount"`
	Timestamp time.Time   `json:"timestamp"`
}

type HighestBidPayload struct {
	HighestBid *BidPayload `json:"highest_bid"`
	Message    string      `json:"message,omitempty"`
}

type ChatHistoryPayload struct {
	Messages []models.ChatMessage `json:"messages"`
}

type CountPayload struct {
	Count int `json:"count"`
}

type MembershipPayload struct {
	Username string   `json:"username"`
	Users    []string `json:"users"`
}

type UsersListPayload struct {
	Users []string `json:"users"`
}

type TimerPayload struct {
	Remaining int `json:"remaining"`
}

type AuctionEndPayload struct {
	Winner  string      `json:"winner,omitempty"`
	Amount  json.Number `json:"amount,omitempty"`
	Message string      `json:"message,omitempty"`
}

type AllBidsPayload struct {
	Bids []BidPayload `json:"bids"`
}

type TypingPayload struct {
	Username string `json:"username"`
}

type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// FormatAmount renders a bid amount for the wire
func FormatAmount(b models.Bid) json.Number {
	return json.Number(b.Amount.StringFixed(2))
}

func ToBidPayload(b models.Bid) BidPayload {
	return BidPayload{
		BidID:     b.BidID,
		Username:  b.Username,
		Amount:    FormatAmount(b),
		Timestamp: b.CreatedAt,
	}
}

func NewBidEvent(b models.Bid) Event {
	return Event{Name: NewBid, Data: ToBidPayload(b)}
}

// NewHighestBidEvent builds a highest_bid event; a nil bid means nothing has been accepted yet
func NewHighestBidEvent(b *models.Bid) Event {
	if b == nil {
		return Event{Name: HighestBid, Data: HighestBidPayload{Message: NoHighestBidMessage}}
	}
	p := ToBidPayload(*b)
	return Event{Name: HighestBid, Data: HighestBidPayload{HighestBid: &p}}
}

func NewResponseEvent(msg models.ChatMessage) Event {
	return Event{Name: Response, Data: msg}
}

func NewChatHistoryEvent(msgs []models.ChatMessage) Event {
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	return Event{Name: ChatHistory, Data: ChatHistoryPayload{Messages: msgs}}
}

func NewUsersCountEvent(count int) Event {
	return Event{Name: UsersCount, Data: CountPayload{Count: count}}
}

func NewUserJoinedEvent(username string, users []string) Event {
	return Event{Name: UserJoined, Data: MembershipPayload{Username: username, Users: users}}
}

func NewUserLeftEvent(username string, users []string) Event {
	return Event{Name: UserLeft, Data: MembershipPayload{Username: username, Users: users}}
}

func NewUsersListEvent(users []string) Event {
	return Event{Name: UsersList, Data: UsersListPayload{Users: users}}
}

func NewTimerEvent(remaining int) Event {
	return Event{Name: BidTimer, Data: TimerPayload{Remaining: remaining}}
}

// NewAuctionEndEvent reports the winner, or the no-bids message when result has no winner
func NewAuctionEndEvent(result models.AuctionResult) Event {
	if result.Winner == nil {
		return Event{Name: AuctionEnd, Data: AuctionEndPayload{Message: NoBidsMessage}}
	}
	return Event{Name: AuctionEnd, Data: AuctionEndPayload{
		Winner: result.Winner.Username,
		Amount: FormatAmount(*result.Winner),
	}}
}

func NewAllBidsEvent(bids []models.Bid) Event {
	payload := make([]BidPayload, 0, len(bids))
	for _, b := range bids {
		payload = append(payload, ToBidPayload(b))
	}
	return Event{Name: AllBids, Data: AllBidsPayload{Bids: payload}}
}

func NewTypingEvent(username string) Event {
	return Event{Name: UserTyping, Data: TypingPayload{Username: username}}
}

func NewStoppedTypingEvent(username string) Event {
	return Event{Name: UserStoppedTyping, Data: TypingPayload{Username: username}}
}

func NewErrorEvent(kind, message string) Event {
	return Event{Name: Error, Data: ErrorPayload{Kind: kind, Message: message}}
}
