package user

import "context"

// Repository persists user accounts.
type Repository interface {
	// Create stores a new user. Returns ErrAlreadyExists when the
	// login is taken.
	Create(ctx context.Context, u User) error

	// GetByLogin returns the user with the given login or ErrNotFound.
	GetByLogin(ctx context.Context, login string) (*User, error)

	// GetByID returns the user with the given id or ErrNotFound.
	GetByID(ctx context.Context, id string) (*User, error)
}
