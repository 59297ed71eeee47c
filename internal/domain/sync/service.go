package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/wuntoguo/word-assistant/internal/domain/word"
)

// Servicer is the sync business logic exposed to the HTTP layer.
type Servicer interface {
	// Sync merges the client's changed words into the server collection and
	// returns everything newer than the client's cursor.
	Sync(ctx context.Context, userID string, req SyncRequest) (*SyncResponse, error)

	// ListWords returns the user's full collection (full-resync fallback).
	ListWords(ctx context.Context, userID string) (*WordsResponse, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "sync_service"),
		now:  time.Now,
	}
}

// Sync processes one sync round. Each incoming client word is merged with
// the server's record for the same (user, normalized word) — the server's id
// always survives the merge, so a record's identity never changes once the
// server has seen it. Merging is idempotent, which makes the endpoint safe
// to retry with the same payload.
func (s *Service) Sync(ctx context.Context, userID string, req SyncRequest) (*SyncResponse, error) {
	now := s.now().UTC()

	for _, cw := range req.ClientWords {
		cw.Word = word.Normalize(cw.Word)
		if cw.Word == "" {
			continue
		}

		existing, err := s.repo.GetByUserAndWord(ctx, userID, cw.Word)
		switch {
		case errors.Is(err, word.ErrNotFound):
			// first time the server sees this word, keep the client id
			cw.UpdatedAt = now
			if err := s.repo.Upsert(ctx, userID, cw); err != nil {
				return nil, fmt.Errorf("store new word %q: %w", cw.Word, err)
			}
		case err != nil:
			return nil, fmt.Errorf("lookup word %q: %w", cw.Word, err)
		default:
			// The client word is the fresher perspective, so it goes in
			// as keep and its non-empty fields win ties. The stored id
			// is re-pinned afterwards.
			merged := word.Merge(cw, *existing, now)
			merged.ID = existing.ID
			if err := s.repo.Upsert(ctx, userID, merged); err != nil {
				return nil, fmt.Errorf("store merged word %q: %w", merged.Word, err)
			}
		}
	}

	// Just-merged records carry updated_at == now, so a non-nil cursor still
	// returns them: the client always sees the outcome of its own push.
	serverWords, err := s.repo.ListByUser(ctx, userID, req.LastSyncedAt)
	if err != nil {
		return nil, fmt.Errorf("list changed words: %w", err)
	}

	s.log.Debug("sync round complete",
		"user_id", userID,
		"received", len(req.ClientWords),
		"returned", len(serverWords),
		"full", req.LastSyncedAt == nil,
	)

	return &SyncResponse{ServerWords: serverWords, SyncedAt: now}, nil
}

// ListWords returns the authenticated user's entire collection.
func (s *Service) ListWords(ctx context.Context, userID string) (*WordsResponse, error) {
	words, err := s.repo.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return &WordsResponse{Words: words}, nil
}
