package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthtrack-backend/internal/shared/auth"
)

// Service owns account lifecycle: registration, login, Google upsert and
// per-user analysis credentials.
type Service struct {
	repo   Repo
	tokens *auth.Tokens
	now    func() time.Time
}

func NewService(repo Repo, tokens *auth.Tokens) *Service {
	return &Service{repo: repo, tokens: tokens, now: time.Now}
}

// Register creates an account and returns it with a fresh bearer token.
func (s *Service) Register(ctx context.Context, email, password, name string) (User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, "", fmt.Errorf("hash password: %w", err)
	}
	u := User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, "", err
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// Login verifies credentials and returns the account with a fresh token.
// Unknown email and wrong password both map to ErrInvalidCredentials;
// backend failures propagate as-is.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return User{}, "", fmt.Errorf("lookup user: %w", err)
	}
	if u.PasswordHash == "" || !auth.CheckPassword(password, u.PasswordHash) {
		return User{}, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// Resolve loads the account behind a token subject. ErrNotFound here means
// the token outlived the account.
func (s *Service) Resolve(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// SetGeminiKey stores (or clears, when empty) the user's analysis credential.
func (s *Service) SetGeminiKey(ctx context.Context, id, key string) error {
	return s.repo.SetGeminiKey(ctx, id, strings.TrimSpace(key))
}

// UpsertFromGoogle matches an OAuth profile to a local account by email,
// creating it on first sign-in, and returns the account with a token.
func (s *Service) UpsertFromGoogle(ctx context.Context, email, name string) (User, string, error) {
	u, err := s.repo.UpsertByEmail(ctx, User{
		ID:        uuid.NewString(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Name:      strings.TrimSpace(name),
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return User{}, "", fmt.Errorf("upsert google user: %w", err)
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}
