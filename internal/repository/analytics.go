package repository

import (
	"context"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// Analytics defines the reporting queries
type Analytics interface {
	GetSummary(ctx context.Context, userID string) (*domain.AnalyticsSummary, error)
	// GetDailyXP returns one row per UTC day with ledger activity since the given instant
	GetDailyXP(ctx context.Context, userID string, since time.Time) ([]domain.DailyProgress, error)
}
