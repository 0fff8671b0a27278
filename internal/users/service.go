package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resume-analyzer/internal/shared/auth"
	"resume-analyzer/internal/shared/telemetry"
)

const minPasswordLength = 6

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; login failures are indistinguishable on purpose.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrValidation = errors.New("validation failed")
)

// Service contains account business logic.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates an account and returns the user with a signed token.
func (s *Service) Register(ctx context.Context, name, email, password string) (User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return User{}, "", ErrValidation
	}
	if len(password) < minPasswordLength {
		return User{}, "", ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", err
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", err
	}

	token, err := auth.SignJWT(user.ID, user.Email, user.Name)
	if err != nil {
		return User{}, "", err
	}
	telemetry.Info("user.registered", map[string]any{"user_id": user.ID})
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := auth.SignJWT(user.ID, user.Email, user.Name)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// GetByID returns an account by ID.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}
