package models

import "time"

// Session binds a hashed bearer token to a user until ExpiresAt.
type Session struct {
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ValidAt reports whether the session is still usable at now.
func (s *Session) ValidAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
