package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// TTL is how long an issued session stays valid.
const TTL = 30 * 24 * time.Hour

// Servicer issues and validates bearer tokens.
type Servicer interface {
	Create(ctx context.Context, userID string) (string, error)
	Validate(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(slog.String("component", "session_service")),
		now:  time.Now,
	}
}

// Create issues a new opaque token for the user and stores its hash.
// The returned plaintext token is shown to the caller exactly once.
func (s *Service) Create(ctx context.Context, userID string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	now := s.now().UTC()
	sess := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hashToken(token),
		CreatedAt: now,
		ExpiresAt: now.Add(TTL),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return "", err
	}

	s.log.Debug("session created", slog.String("user_id", userID))
	return token, nil
}

// Validate resolves a bearer token to its user id. Expired sessions
// are deleted on sight.
func (s *Service) Validate(ctx context.Context, token string) (string, error) {
	sess, err := s.repo.GetByTokenHash(ctx, hashToken(token))
	if err != nil {
		return "", err
	}
	if sess.Expired(s.now().UTC()) {
		if err := s.repo.Delete(ctx, sess.ID); err != nil {
			s.log.Warn("delete expired session", slog.String("error", err.Error()))
		}
		return "", ErrExpired
	}
	return sess.UserID, nil
}

// Revoke deletes the session behind a token. Unknown tokens are not an
// error, logout is idempotent.
func (s *Service) Revoke(ctx context.Context, token string) error {
	sess, err := s.repo.GetByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return s.repo.Delete(ctx, sess.ID)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
