package repository

import (
	"context"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// Progress defines persistence for the gamification state of users
type Progress interface {
	GetUserProgress(ctx context.Context, userID string) (*domain.UserProgress, error)
	GetEarnedBadges(ctx context.Context, userID string) ([]domain.EarnedBadge, error)
	// ListStreaksAtRisk returns users with a positive streak whose last activity is in [from, to)
	ListStreaksAtRisk(ctx context.Context, from, to time.Time) ([]domain.UserProgress, error)

	BeginTx(ctx context.Context) (ProgressTx, error)
	// JoinTx runs progression writes inside a transaction begun by another
	// repository of the same store. Commit and Rollback on the result are
	// no-ops: the owner of tx ends it.
	JoinTx(tx Tx) (ProgressTx, error)
}

// ProgressTx is the read-modify-write cycle of one progression event.
// LoadUserProgressForUpdate takes the row lock that serialises writers per user.
type ProgressTx interface {
	Tx

	LoadUserProgressForUpdate(ctx context.Context, userID string) (*domain.UserProgress, error)
	CountCompletedQuests(ctx context.Context, userID string) (int, error)
	CountContributions(ctx context.Context, userID string) (int, error)
	ApplyProgressionDelta(ctx context.Context, delta domain.ProgressionDelta) error
	RecordXPEvent(ctx context.Context, event domain.XPEvent) error
}
