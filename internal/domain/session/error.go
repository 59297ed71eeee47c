package session

import "errors"

var (
	// ErrNotFound is returned when no session matches a token.
	ErrNotFound = errors.New("session not found")

	// ErrExpired is returned when the matched session is past expiry.
	ErrExpired = errors.New("session expired")
)
