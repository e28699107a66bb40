package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// LeaderboardRepository implements repository.Leaderboard
type LeaderboardRepository struct {
	db *pgxpool.Pool
}

// NewLeaderboardRepository creates a new LeaderboardRepository
func NewLeaderboardRepository(db *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

var _ repository.Leaderboard = (*LeaderboardRepository)(nil)

// TopByXP orders by total XP, then by who registered first. RANK() gives tied
// users the same rank, matching GetUserRank.
func (r *LeaderboardRepository) TopByXP(ctx context.Context, limit, offset int) ([]domain.LeaderboardEntry, error) {
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT (rank() OVER (ORDER BY p.total_xp DESC))::int,
		       u.user_id, u.username, u.avatar_url, p.total_xp, p.level, p.current_streak,
		       (SELECT count(*) FROM user_badges b WHERE b.user_id = u.user_id)::int
		FROM users u
		JOIN user_progress p ON p.user_id = u.user_id
		WHERE u.is_active
		ORDER BY p.total_xp DESC, u.created_at ASC, u.user_id
		LIMIT $1 OFFSET $2`, clampLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LeaderboardEntry, error) {
		var e domain.LeaderboardEntry
		err := row.Scan(&e.Rank, &e.UserID, &e.Username, &e.AvatarURL, &e.TotalXP, &e.Level, &e.CurrentStreak, &e.BadgeCount)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan leaderboard: %w", err)
	}
	return entries, nil
}

// GetUserRank is 1 + the number of active users with strictly more XP
func (r *LeaderboardRepository) GetUserRank(ctx context.Context, userID string) (*domain.UserRank, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}
	rank := domain.UserRank{UserID: userID}
	err := r.db.QueryRow(ctx, `
		WITH me AS (SELECT total_xp FROM user_progress WHERE user_id = $1)
		SELECT me.total_xp,
		       (SELECT count(*) FROM user_progress p JOIN users u ON u.user_id = p.user_id
		         WHERE u.is_active AND p.total_xp > me.total_xp)::int + 1,
		       (SELECT count(*) FROM users WHERE is_active)::int
		FROM me`, userID).Scan(&rank.TotalXP, &rank.Rank, &rank.TotalUsers)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user rank: %w", err)
	}
	return &rank, nil
}
