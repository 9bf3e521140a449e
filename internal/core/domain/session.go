package domain

import "time"

// Session is an authenticated login with a fixed-duration expiry. It is owned
// exclusively by the session manager and persisted to durable storage as two
// keys: the serialized identity and the expiry timestamp in epoch millis.
type Session struct {
	Token     string    `json:"token"`
	Identity  *User     `json:"identity"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has lapsed at the given instant.
// A session past its expiry is treated as absent regardless of what durable
// storage still holds.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
