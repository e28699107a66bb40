package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rishav-026/Gamified-Coding-platform/internal/database/generated"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// ProgressRepository implements repository.Progress
type ProgressRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{
		db: db,
		q:  generated.New(db),
	}
}

var (
	_ repository.Progress   = (*ProgressRepository)(nil)
	_ repository.ProgressTx = (*progressTx)(nil)
	_ repository.ProgressTx = (*joinedProgressTx)(nil)
)

func mapUserProgress(userID string, row generated.UserProgress, badges []string) *domain.UserProgress {
	return &domain.UserProgress{
		UserID:        userID,
		TotalXP:       row.TotalXp,
		Level:         int(row.Level),
		CurrentStreak: int(row.CurrentStreak),
		LongestStreak: int(row.LongestStreak),
		LastActivity:  utcPtr(row.LastActivity),
		EarnedBadges:  badges,
	}
}

func loadProgress(ctx context.Context, q *generated.Queries, userID string, forUpdate bool) (*domain.UserProgress, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	var row generated.UserProgress
	if forUpdate {
		row, err = q.GetUserProgressForUpdate(ctx, id)
	} else {
		row, err = q.GetUserProgress(ctx, id)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user progress: %w", err)
	}

	badges, err := q.ListBadgeIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}
	return mapUserProgress(userID, row, badges), nil
}

func (r *ProgressRepository) GetUserProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	return loadProgress(ctx, r.q, userID, false)
}

func (r *ProgressRepository) GetEarnedBadges(ctx context.Context, userID string) ([]domain.EarnedBadge, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.ListEarnedBadges(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query badges: %w", err)
	}
	badges := make([]domain.EarnedBadge, len(rows))
	for i, row := range rows {
		badges[i] = domain.EarnedBadge{BadgeID: row.BadgeID, EarnedAt: row.EarnedAt.Time.UTC()}
	}
	return badges, nil
}

func (r *ProgressRepository) ListStreaksAtRisk(ctx context.Context, from, to time.Time) ([]domain.UserProgress, error) {
	rows, err := r.q.ListStreaksAtRisk(ctx, generated.ListStreaksAtRiskParams{
		WindowStart: timestamptz(from),
		WindowEnd:   timestamptz(to),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query streaks at risk: %w", err)
	}
	out := make([]domain.UserProgress, len(rows))
	for i, row := range rows {
		out[i] = domain.UserProgress{
			UserID:        row.UserID.String(),
			TotalXP:       row.TotalXp,
			Level:         int(row.Level),
			CurrentStreak: int(row.CurrentStreak),
			LongestStreak: int(row.LongestStreak),
			LastActivity:  utcPtr(row.LastActivity),
		}
	}
	return out, nil
}

func (r *ProgressRepository) BeginTx(ctx context.Context) (repository.ProgressTx, error) {
	tx, err := begin(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &progressTx{pgTx: pgTx{tx: tx}, q: r.q.WithTx(tx)}, nil
}

// JoinTx accepts any transaction begun by a repository in this package
func (r *ProgressRepository) JoinTx(owner repository.Tx) (repository.ProgressTx, error) {
	tx, err := rawTx(owner)
	if err != nil {
		return nil, err
	}
	return &joinedProgressTx{progressTx: progressTx{pgTx: pgTx{tx: tx}, q: r.q.WithTx(tx)}}, nil
}

type progressTx struct {
	pgTx
	q *generated.Queries
}

// joinedProgressTx leaves the end of the transaction to its owner
type joinedProgressTx struct {
	progressTx
}

func (t *joinedProgressTx) Commit(context.Context) error   { return nil }
func (t *joinedProgressTx) Rollback(context.Context) error { return nil }

// LoadUserProgressForUpdate takes the row lock for the rest of the transaction
func (t *progressTx) LoadUserProgressForUpdate(ctx context.Context, userID string) (*domain.UserProgress, error) {
	return loadProgress(ctx, t.q, userID, true)
}

func (t *progressTx) CountCompletedQuests(ctx context.Context, userID string) (int, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}
	n, err := t.q.CountCompletedQuests(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed quests: %w", err)
	}
	return int(n), nil
}

// CountContributions counts credited pull requests
func (t *progressTx) CountContributions(ctx context.Context, userID string) (int, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}
	n, err := t.q.CountCreditedPullRequests(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to count contributions: %w", err)
	}
	return int(n), nil
}

// ApplyProgressionDelta upserts the progress row and grants badges. Badge
// grants that already exist are ignored.
func (t *progressTx) ApplyProgressionDelta(ctx context.Context, d domain.ProgressionDelta) error {
	id, err := parseUserUUID(d.UserID)
	if err != nil {
		return err
	}

	err = t.q.UpsertUserProgress(ctx, generated.UpsertUserProgressParams{
		UserID:        id,
		TotalXp:       d.TotalXP,
		Level:         int32(d.Level),
		CurrentStreak: int32(d.CurrentStreak),
		LongestStreak: int32(d.LongestStreak),
		LastActivity:  timestamptz(d.LastActivity),
	})
	if err != nil {
		return fmt.Errorf("failed to write progress: %w", mapUserFK(err))
	}

	if len(d.GrantBadges) == 0 {
		return nil
	}
	err = t.q.GrantBadges(ctx, generated.GrantBadgesParams{
		UserID:   id,
		BadgeIds: d.GrantBadges,
		EarnedAt: timestamptz(d.LastActivity),
	})
	if err != nil {
		return fmt.Errorf("failed to grant badges: %w", err)
	}
	return nil
}

func (t *progressTx) RecordXPEvent(ctx context.Context, ev domain.XPEvent) error {
	id, err := parseUserUUID(ev.UserID)
	if err != nil {
		return err
	}
	err = t.q.InsertXPEvent(ctx, generated.InsertXPEventParams{
		UserID:     id,
		Amount:     ev.Amount,
		Source:     ev.Source,
		SourceID:   ev.SourceID,
		OccurredAt: timestamptz(ev.OccurredAt),
	})
	if err != nil {
		return fmt.Errorf("failed to record xp event: %w", mapUserFK(err))
	}
	return nil
}
