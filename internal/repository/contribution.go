package repository

import (
	"context"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// Contribution tracks which contributions have already been credited per repository
type Contribution interface {
	// GetCursor reads without locking; the zero cursor when nothing was credited yet
	GetCursor(ctx context.Context, userID, repository, kind string) (domain.ContributionCursor, error)
	BeginTx(ctx context.Context) (ContributionTx, error)
}

// ContributionTx extends Tx with cursor bookkeeping
type ContributionTx interface {
	Tx

	// GetCursorForUpdate locks the snapshot row, creating it when absent
	GetCursorForUpdate(ctx context.Context, userID, repository, kind string) (domain.ContributionCursor, error)
	AdvanceCursor(ctx context.Context, userID, repository, kind string, cursor domain.ContributionCursor, at time.Time) error
}
