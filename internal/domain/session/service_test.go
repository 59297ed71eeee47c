package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, s Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) GetByTokenHash(ctx context.Context, hash string) (*Session, error) {
	args := m.Called(ctx, hash)
	if s, ok := args.Get(0).(*Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository, now time.Time) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, log)
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_CreateAndValidate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	repo := new(MockRepository)
	var stored Session
	repo.On("Create", ctx, mock.AnythingOfType("Session")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(Session) }).
		Return(nil)

	svc := newTestService(repo, now)
	token, err := svc.Create(ctx, "u1")
	require.NoError(t, err)

	assert.Len(t, token, 64)
	assert.NotEqual(t, token, stored.TokenHash)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, now.Add(TTL), stored.ExpiresAt)

	repo.On("GetByTokenHash", ctx, stored.TokenHash).Return(&stored, nil)

	userID, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestService_Validate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("unknown token", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByTokenHash", ctx, mock.Anything).Return(nil, ErrNotFound)

		_, err := newTestService(repo, now).Validate(ctx, "deadbeef")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("expired session is deleted", func(t *testing.T) {
		repo := new(MockRepository)
		expired := &Session{ID: "s1", UserID: "u1", ExpiresAt: now.Add(-time.Hour)}
		repo.On("GetByTokenHash", ctx, mock.Anything).Return(expired, nil)
		repo.On("Delete", ctx, "s1").Return(nil)

		_, err := newTestService(repo, now).Validate(ctx, "deadbeef")
		assert.ErrorIs(t, err, ErrExpired)
		repo.AssertCalled(t, "Delete", ctx, "s1")
	})
}

func TestService_Revoke(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("deletes existing session", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByTokenHash", ctx, mock.Anything).Return(&Session{ID: "s1"}, nil)
		repo.On("Delete", ctx, "s1").Return(nil)

		assert.NoError(t, newTestService(repo, now).Revoke(ctx, "deadbeef"))
	})

	t.Run("unknown token is a no-op", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByTokenHash", ctx, mock.Anything).Return(nil, ErrNotFound)

		assert.NoError(t, newTestService(repo, now).Revoke(ctx, "deadbeef"))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
