// Package service provides business logic for authentication, categories,
// and transactions, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"finbook/internal/models"
)

// minPasswordLen is the shortest password accepted at registration.
const minPasswordLen = 8

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// CreateUser inserts a new user record. Returns models.ErrEmailTaken
	// if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail fetches a user by email. Returns models.ErrNotFound
	// when no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenIssuer produces signed credential tokens for a user ID.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthService implements registration and login.
type AuthService struct {
	repo   UserRepository
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService using the provided repository
// and token issuer.
func NewAuthService(repo UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates a new user with a hashed password and issues a
// credential token. Returns a ValidationError for malformed input and
// models.ErrEmailTaken for a duplicate email.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if name == "" {
		return nil, "", models.Validationf("name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", models.Validationf("invalid email")
	}
	if len(password) < minPasswordLen {
		return nil, "", models.Validationf("password must be at least %d characters", minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// Login verifies the email/password pair and issues a credential token.
// An unknown email and a wrong password both return
// models.ErrInvalidCredentials so callers cannot probe which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}
