package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
	"golang.org/x/crypto/bcrypt"
)

// Servicer covers account registration and authentication.
type Servicer interface {
	Register(ctx context.Context, login, password string) (*User, error)
	Authenticate(ctx context.Context, login, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type Service struct {
	repo      Repository
	validator *CredentialsValidator
	log       *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: NewCredentialsValidator(),
		log:       log.With(slog.String("component", "user_service")),
	}
}

// Register validates credentials, hashes the password and stores the
// new account.
func (s *Service) Register(ctx context.Context, login, password string) (*User, error) {
	if err := s.validator.ValidateLogin(login); err != nil {
		return nil, err
	}
	if err := s.validator.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:        uuid.NewString(),
		Login:     login,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user registered", slog.String("login", login))
	return &u, nil
}

// Authenticate checks login/password against the stored hash. Lookup
// misses and hash mismatches both map to ErrInvalidCredentials so the
// caller cannot probe for existing logins.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*User, error) {
	u, err := s.repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.log.Debug("user authenticated", slog.String("login", login))
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
