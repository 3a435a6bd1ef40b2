package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is an anonymous visitor session.
type Session struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newSession(now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the session expired at now.
func (s *Session) IsExpired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}

// Key returns the id as a string, suitable for keying per-session state.
func (s *Session) Key() string {
	if s == nil {
		return ""
	}
	return s.ID.String()
}
