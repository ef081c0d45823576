package models

import "time"

// Session binds an opaque token to a user for a bounded time. Expired
// sessions are inert; they are not purged eagerly.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return !time.Now().Before(s.ExpiresAt)
}
