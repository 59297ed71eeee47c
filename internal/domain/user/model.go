package user

import "time"

// User is an account as stored on the server. The password field
// holds a bcrypt hash, never the plaintext.
type User struct {
	ID        string
	Login     string
	Password  string
	CreatedAt time.Time
}
