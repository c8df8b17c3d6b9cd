package domain

import "time"

// Session binds an opaque client-held token to an authenticated user.
// It references the user by ID only; if the user disappears, resolution
// yields no authenticated user rather than an error.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its absolute expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
