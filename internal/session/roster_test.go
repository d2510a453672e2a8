package session

import (
	"testing"

	"auction-room/internal/biddingerrors"

	"github.com/stretchr/testify/require"
)

func TestRoster_JoinLeave(t *testing.T) {
	r := NewRoster()
	require.NotNil(t, r.Users())
	require.Empty(t, r.Users())

	require.NoError(t, r.Join("c1", "alice"))
	require.NoError(t, r.Join("c2", "bob"))
	require.NoError(t, r.Join("c3", "carol"))
	require.ErrorIs(t, r.Join("c2", "bobby"), biddingerrors.ErrAlreadyJoined)

	require.Equal(t, []string{"alice", "bob", "carol"}, r.Users())
	require.Equal(t, 3, r.Count())

	p, ok := r.Leave("c2")
	require.True(t, ok)
	require.Equal(t, "bob", p.Username)
	require.Equal(t, []string{"alice", "carol"}, r.Users())

	_, ok = r.Leave("c2")
	require.False(t, ok)

	name, ok := r.Username("c3")
	require.True(t, ok)
	require.Equal(t, "carol", name)

	_, ok = r.Username("c2")
	require.False(t, ok)

	// a connection can join again after leaving
	require.NoError(t, r.Join("c2", "bob"))
	require.Equal(t, []string{"alice", "carol", "bob"}, r.Users())
}

func TestRoster_UsersIsACopy(t *testing.T) {
	r := NewRoster()
	require.NoError(t, r.Join("c1", "alice"))

	users := r.Users()
	users[0] = "mallory"

	require.Equal(t, []string{"alice"}, r.Users())
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		maxLen   int
		wantErr  bool
	}{
		{name: "valid", username: "alice", maxLen: 32},
		{name: "empty", username: "", maxLen: 32, wantErr: true},
		{name: "whitespace", username: " \t", maxLen: 32, wantErr: true},
		{name: "at_limit", username: "abcd", maxLen: 4},
		{name: "over_limit", username: "abcde", maxLen: 4, wantErr: true},
		{name: "multibyte_counts_runes", username: "ééé", maxLen: 3},
		{name: "no_limit", username: "a-very-long-username-without-limit", maxLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username, tt.maxLen)
			if tt.wantErr {
				require.ErrorIs(t, err, biddingerrors.ErrInvalidName)
				return
			}
			require.NoError(t, err)
		})
	}
}
