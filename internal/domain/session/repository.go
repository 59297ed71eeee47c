package session

import "context"

// Repository persists login sessions.
type Repository interface {
	Create(ctx context.Context, s Session) error

	// GetByTokenHash returns the session for the given hash or
	// ErrNotFound.
	GetByTokenHash(ctx context.Context, hash string) (*Session, error)

	Delete(ctx context.Context, id string) error
}
