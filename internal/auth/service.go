package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// Result is returned by Register and Login
type Result struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"access_token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Service handles registration and credential checks
type Service interface {
	Register(ctx context.Context, username, email, password string) (*Result, error)
	// Login accepts either the username or the email as identifier
	Login(ctx context.Context, identifier, password string) (*Result, error)
	Verify(token string) (string, error)
}

type service struct {
	users  repository.User
	tokens *TokenIssuer
	clock  clock.Clock
	cost   int
}

// NewService creates a new auth service
func NewService(users repository.User, tokens *TokenIssuer, clk clock.Clock) Service {
	return &service{users: users, tokens: tokens, clock: clk, cost: bcrypt.DefaultCost}
}

func validateCredentials(username, email, password string) error {
	if n := len(username); n < MinUsernameLength || n > MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", domain.ErrInvalidInput, MinUsernameLength, MaxUsernameLength)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	}
	if n := len(password); n < MinPasswordLength || n > MaxPasswordLength {
		return fmt.Errorf("%w: password must be %d-%d characters", domain.ErrInvalidInput, MinPasswordLength, MaxPasswordLength)
	}
	return nil
}

func (s *service) Register(ctx context.Context, username, email, password string) (*Result, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateCredentials(username, email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgUserRegistered, "user_id", user.ID, "username", user.Username)
	return s.issue(user)
}

func (s *service) Login(ctx context.Context, identifier, password string) (*Result, error) {
	identifier = strings.TrimSpace(identifier)

	var user *domain.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.users.GetUserByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.users.GetUserByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logger.FromContext(ctx).Info(LogMsgLoginFailed, "reason", "unknown_user")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.FromContext(ctx).Info(LogMsgLoginFailed, "user_id", user.ID, "reason", "bad_password")
		return nil, domain.ErrInvalidCredentials
	}

	logger.FromContext(ctx).Info(LogMsgLoginSucceeded, "user_id", user.ID)
	return s.issue(user)
}

func (s *service) Verify(token string) (string, error) {
	return s.tokens.Verify(token, s.clock.Now())
}

func (s *service) issue(user *domain.User) (*Result, error) {
	token, expires, err := s.tokens.Issue(user, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return &Result{User: user, Token: token, TokenType: "bearer", ExpiresAt: expires}, nil
}
