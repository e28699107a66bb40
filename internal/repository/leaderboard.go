package repository

import (
	"context"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// Leaderboard defines the ranking queries
type Leaderboard interface {
	// TopByXP returns active users ordered by total_xp desc, created_at asc.
	// Rank is 1 + the number of active users with more XP, as in GetUserRank.
	TopByXP(ctx context.Context, limit, offset int) ([]domain.LeaderboardEntry, error)
	GetUserRank(ctx context.Context, userID string) (*domain.UserRank, error)
}
