package user

import "errors"

var (
	// ErrAlreadyExists is returned on registration with a taken login.
	ErrAlreadyExists = errors.New("login already in use")

	// ErrNotFound is returned when a user lookup misses.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when login/password do not match.
	ErrInvalidCredentials = errors.New("invalid login or password")
)
