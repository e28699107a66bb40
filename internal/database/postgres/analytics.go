package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// AnalyticsRepository implements repository.Analytics
type AnalyticsRepository struct {
	db *pgxpool.Pool
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

var _ repository.Analytics = (*AnalyticsRepository)(nil)

func (r *AnalyticsRepository) GetSummary(ctx context.Context, userID string) (*domain.AnalyticsSummary, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}
	var s domain.AnalyticsSummary
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM quest_progress WHERE user_id = $1 AND status = $2)::int,
			(SELECT count(*) FROM task_progress WHERE user_id = $1)::int,
			(SELECT count(*) FROM tutorial_progress WHERE user_id = $1 AND completed)::int,
			(SELECT count(*) FROM submissions WHERE user_id = $1 AND status = $3)::int,
			p.total_xp, p.level, p.current_streak, p.longest_streak,
			(SELECT count(*) FROM user_badges WHERE user_id = $1)::int,
			(SELECT count(DISTINCT (occurred_at AT TIME ZONE 'UTC')::date) FROM xp_events WHERE user_id = $1)::int
		FROM user_progress p
		WHERE p.user_id = $1`,
		userID, domain.QuestStatusCompleted, domain.SubmissionPassed).Scan(
		&s.QuestsCompleted, &s.TasksCompleted, &s.TutorialsCompleted, &s.SubmissionsPassed,
		&s.TotalXP, &s.Level, &s.CurrentStreak, &s.LongestStreak, &s.BadgeCount, &s.ActiveDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get analytics summary: %w", err)
	}
	return &s, nil
}

// GetDailyXP groups the ledger by UTC day. Days without events are omitted.
func (r *AnalyticsRepository) GetDailyXP(ctx context.Context, userID string, since time.Time) ([]domain.DailyProgress, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `
		SELECT to_char((occurred_at AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD') AS day,
		       SUM(amount)::bigint, count(*)::int
		FROM xp_events
		WHERE user_id = $1 AND occurred_at >= $2
		GROUP BY day
		ORDER BY day`, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily xp: %w", err)
	}
	days, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.DailyProgress])
	if err != nil {
		return nil, fmt.Errorf("failed to scan daily xp: %w", err)
	}
	return days, nil
}
