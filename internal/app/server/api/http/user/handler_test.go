package user

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/wuntoguo/word-assistant/internal/app/server/api/http/middleware/auth"
	"github.com/wuntoguo/word-assistant/internal/domain/user"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, login, password string) (*user.User, error) {
	args := m.Called(ctx, login, password)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, login, password string) (*user.User, error) {
	args := m.Called(ctx, login, password)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Validate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newTestHandler(svc user.Servicer, sess *MockSessionService) *Handler {
	return NewHandler(svc, sess, slog.Default(), huma.Middlewares{}, huma.Middlewares{})
}

func TestHandler_register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Register", ctx, "alice", "passw0rd123").
			Return(&user.User{ID: "u1", Login: "alice"}, nil)

		out, err := newTestHandler(svc, new(MockSessionService)).register(ctx, &registerInput{
			Body: credentials{Login: "alice", Password: "passw0rd123"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Ok", out.Body.Status)
		assert.Equal(t, "u1", out.Body.UserID)
	})

	t.Run("duplicate login reported in body", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Register", ctx, "alice", "passw0rd123").
			Return(nil, user.ErrAlreadyExists)

		out, err := newTestHandler(svc, new(MockSessionService)).register(ctx, &registerInput{
			Body: credentials{Login: "alice", Password: "passw0rd123"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Error", out.Body.Status)
		assert.NotEmpty(t, out.Body.Error)
	})
}

func TestHandler_login(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns token", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Authenticate", ctx, "alice", "passw0rd123").
			Return(&user.User{ID: "u1", Login: "alice"}, nil)
		sess := new(MockSessionService)
		sess.On("Create", ctx, "u1").Return("tok123", nil)

		out, err := newTestHandler(svc, sess).login(ctx, &loginInput{
			Body: credentials{Login: "alice", Password: "passw0rd123"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Ok", out.Body.Status)
		assert.Equal(t, "tok123", out.Body.Token)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		svc := new(MockUserService)
		svc.On("Authenticate", ctx, "alice", "nope12345").
			Return(nil, user.ErrInvalidCredentials)

		out, err := newTestHandler(svc, new(MockSessionService)).login(ctx, &loginInput{
			Body: credentials{Login: "alice", Password: "nope12345"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Error", out.Body.Status)
		assert.Empty(t, out.Body.Token)
	})
}

func TestHandler_logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes presented token", func(t *testing.T) {
		sess := new(MockSessionService)
		sess.On("Revoke", ctx, "tok123").Return(nil)

		out, err := newTestHandler(new(MockUserService), sess).logout(ctx, &logoutInput{
			Authorization: "Bearer tok123",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ok", out.Body.Status)
		sess.AssertCalled(t, "Revoke", ctx, "tok123")
	})

	t.Run("missing token is still ok", func(t *testing.T) {
		sess := new(MockSessionService)

		out, err := newTestHandler(new(MockUserService), sess).logout(ctx, &logoutInput{})
		require.NoError(t, err)
		assert.Equal(t, "Ok", out.Body.Status)
		sess.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
	})
}

func TestHandler_me(t *testing.T) {
	t.Run("returns account for authenticated user", func(t *testing.T) {
		svc := new(MockUserService)
		ctx := auth.WithUserID(context.Background(), "u1")
		svc.On("GetByID", ctx, "u1").Return(&user.User{ID: "u1", Login: "alice"}, nil)

		out, err := newTestHandler(svc, new(MockSessionService)).me(ctx, &meInput{})
		require.NoError(t, err)
		assert.Equal(t, "alice", out.Body.Login)
	})

	t.Run("unauthenticated context rejected", func(t *testing.T) {
		_, err := newTestHandler(new(MockUserService), new(MockSessionService)).me(context.Background(), &meInput{})
		assert.Error(t, err)
	})
}
