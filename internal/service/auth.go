// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foodwise/foodwise/internal/auth"
	"github.com/foodwise/foodwise/internal/metrics"
	"github.com/foodwise/foodwise/internal/model"
	"github.com/foodwise/foodwise/internal/repository"
)

// Auth service errors.
var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserStore is the credential persistence interface consumed by AuthService.
// *repository.Repository satisfies it; tests may substitute fakes.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
}

// TokenPair is the credential pair returned by a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles registration, login and token refresh.
type AuthService struct {
	users   UserStore
	tokens  *auth.TokenService
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *auth.TokenService, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		users:   users,
		tokens:  tokens,
		metrics: recorder,
	}
}

// RegisterInput defines input for registering a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user account with a hashed password.
// A duplicate username fails with ErrUsernameTaken, whether detected by the
// pre-insert lookup or by the unique constraint when two registrations race.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if strings.TrimSpace(input.Username) == "" {
		return nil, ErrUsernameRequired
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, ErrEmailRequired
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	// Fast path: reject an existing username before paying for the hash.
	_, err := s.users.GetUserByUsername(ctx, input.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserRegistered()
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
// Unknown usernames and wrong passwords both fail with ErrInvalidCredentials
// so responses do not reveal which part was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailure()
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	s.metrics.IncLoginSuccess()
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh issues a new access token for an already-validated refresh subject.
// The refresh token itself is not rotated or invalidated.
func (s *AuthService) Refresh(ctx context.Context, subject string) (string, error) {
	accessToken, err := s.tokens.IssueAccessToken(subject)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}

	s.metrics.IncTokenRefreshed()
	return accessToken, nil
}
