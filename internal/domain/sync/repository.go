package sync

import (
	"context"
	"time"

	"github.com/wuntoguo/word-assistant/internal/domain/word"
)

// Repository is the server-side word storage the sync service runs against.
type Repository interface {
	// GetByUserAndWord looks up a record by its uniqueness key; returns
	// word.ErrNotFound when the user has no such word.
	GetByUserAndWord(ctx context.Context, userID, normalized string) (*word.Record, error)

	// ListByUser returns the user's records updated strictly after since,
	// or the whole collection when since is nil.
	ListByUser(ctx context.Context, userID string, since *time.Time) ([]word.Record, error)

	// Upsert stores the record keyed by (user, word).
	Upsert(ctx context.Context, userID string, rec word.Record) error
}
