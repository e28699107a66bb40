package repository

import (
	"context"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// User defines the interface for account persistence
type User interface {
	// CreateUser inserts the account and its zeroed progress row
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate, at time.Time) (*domain.User, error)
}
