package decoder

import (
	"errors"
	"testing"

	"auction-room/internal/biddingerrors"

	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantKind   Kind
		wantAmount string
		wantErr    error
	}{
		{name: "plain_chat", text: "hello everyone", wantKind: Chat},
		{name: "integer_bid", text: "bid 10", wantKind: Bid, wantAmount: "10"},
		{name: "decimal_bid", text: "bid 10.50", wantKind: Bid, wantAmount: "10.5"},
		{name: "uppercase_prefix", text: "BID 15", wantKind: Bid, wantAmount: "15"},
		{name: "mixed_case_prefix", text: "Bid 7.5", wantKind: Bid, wantAmount: "7.5"},
		{name: "extra_spaces", text: "bid   25 ", wantKind: Bid, wantAmount: "25"},
		{name: "zero_amount_is_chat", text: "bid 0", wantKind: Chat},
		{name: "negative_amount_is_chat", text: "bid -5", wantKind: Chat},
		{name: "unparsable_amount_is_chat", text: "bid lots", wantKind: Chat},
		{name: "three_decimals_is_chat", text: "bid 1.234", wantKind: Chat},
		{name: "exponent_is_chat", text: "bid 1e5", wantKind: Chat},
		{name: "no_space_is_chat", text: "bid10", wantKind: Chat},
		{name: "bare_prefix_is_chat", text: "bid ", wantKind: Chat},
		{name: "word_starting_with_bid_is_chat", text: "bidding war!", wantKind: Chat},
		{name: "empty", text: "", wantErr: biddingerrors.ErrEmptyMessage},
		{name: "whitespace_only", text: "   ", wantErr: biddingerrors.ErrEmptyMessage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := ParseMessage(tc.text)
			if tc.wantErr != nil {
				require.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantKind, cmd.Kind)
			require.Equal(t, tc.text, cmd.Text, "literal text is kept")
			if tc.wantKind == Bid {
				require.Equal(t, tc.wantAmount, cmd.Amount.String())
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		username string
		want     Command
		wantErr  error
	}{
		{
			name: "set_username",
			raw:  `{"event":"set_username","data":"  alice "}`,
			want: Command{Kind: SetUsername, Username: "alice"},
		},
		{
			name:     "set_username_twice",
			raw:      `{"event":"set_username","data":"alice2"}`,
			username: "alice",
			wantErr:  biddingerrors.ErrDuplicateName,
		},
		{
			name:    "set_username_without_payload",
			raw:     `{"event":"set_username"}`,
			wantErr: biddingerrors.ErrMalformedInput,
		},
		{
			name:     "chat_message",
			raw:      `{"event":"message","data":"hi"}`,
			username: "alice",
			want:     Command{Kind: Chat, Text: "hi"},
		},
		{
			name:     "message_with_number_payload",
			raw:      `{"event":"message","data":12}`,
			username: "alice",
			wantErr:  biddingerrors.ErrMalformedInput,
		},
		{
			name:     "empty_message",
			raw:      `{"event":"message","data":""}`,
			username: "alice",
			wantErr:  biddingerrors.ErrEmptyMessage,
		},
		{name: "users_list", raw: `{"event":"get_users_list"}`, want: Command{Kind: RequestRoster}},
		{name: "history", raw: `{"event":"request_history"}`, want: Command{Kind: RequestHistory}},
		{name: "highest", raw: `{"event":"request_highest_bidder"}`, want: Command{Kind: RequestHighestBid}},
		{name: "bids", raw: `{"event":"get_bids"}`, want: Command{Kind: RequestBids}},
		{name: "typing", raw: `{"event":"typing"}`, want: Command{Kind: Typing}},
		{name: "stopped_typing", raw: `{"event":"stopped_typing"}`, want: Command{Kind: StoppedTyping}},
		{name: "unknown_event", raw: `{"event":"launch_missiles"}`, wantErr: biddingerrors.ErrMalformedInput},
		{name: "invalid_json", raw: `{event: message}`, wantErr: biddingerrors.ErrMalformedInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := Decode([]byte(tc.raw), tc.username)
			if tc.wantErr != nil {
				require.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, cmd)
		})
	}
}

func TestDecode_Bid(t *testing.T) {
	cmd, err := Decode([]byte(`{"event":"message","data":"bid 99.99"}`), "alice")
	require.NoError(t, err)
	require.Equal(t, Bid, cmd.Kind)
	require.Equal(t, "99.99", cmd.Amount.StringFixed(2))
	require.Equal(t, "Bid", cmd.Kind.String())
}
