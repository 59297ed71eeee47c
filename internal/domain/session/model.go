package session

import "time"

// Session is a server-side login session. Only a SHA-256 hash of the
// bearer token is stored, the plaintext token lives on the client.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
