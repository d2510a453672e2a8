package session

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"auction-room/internal/biddingerrors"
	"auction-room/internal/models"
)

// Roster tracks connection-to-username bindings in join order.
// Usernames may repeat across connections; connection IDs may not.
type Roster struct {
	entries []models.Participant
}

func NewRoster() *Roster {
	return &Roster{}
}

// Join binds username to connID
func (r *Roster) Join(connID, username string) error {
	if _, ok := r.Username(connID); ok {
		return fmt.Errorf("roster: %w - %s", biddingerrors.ErrAlreadyJoined, connID)
	}
	r.entries = append(r.entries, models.Participant{ConnectionID: connID, Username: username})
	return nil
}

// Leave removes connID's binding. It reports false if connID never joined or already left.
func (r *Roster) Leave(connID string) (models.Participant, bool) {
	for i, p := range r.entries {
		if p.ConnectionID == connID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return p, true
		}
	}
	return models.Participant{}, false
}

// Username returns the name bound to connID
func (r *Roster) Username(connID string) (string, bool) {
	for _, p := range r.entries {
		if p.ConnectionID == connID {
			return p.Username, true
		}
	}
	return "", false
}

// Users returns the current usernames in join order
func (r *Roster) Users() []string {
	users := make([]string, 0, len(r.entries))
	for _, p := range r.entries {
		users = append(users, p.Username)
	}
	return users
}

func (r *Roster) Count() int {
	return len(r.entries)
}

// ValidateUsername rejects blank names and names longer than maxLen runes
func ValidateUsername(username string, maxLen int) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("roster: %w - username is empty", biddingerrors.ErrInvalidName)
	}
	if maxLen > 0 && utf8.RuneCountInString(username) > maxLen {
		return fmt.Errorf("roster: %w - username longer than %d characters", biddingerrors.ErrInvalidName, maxLen)
	}
	return nil
}
