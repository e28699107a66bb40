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

// ContributionRepository implements repository.Contribution
type ContributionRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewContributionRepository creates a new ContributionRepository
func NewContributionRepository(db *pgxpool.Pool) *ContributionRepository {
	return &ContributionRepository{
		db: db,
		q:  generated.New(db),
	}
}

var (
	_ repository.Contribution   = (*ContributionRepository)(nil)
	_ repository.ContributionTx = (*contributionTx)(nil)
)

func mapSnapshot(row generated.ContributionSnapshot) domain.ContributionCursor {
	return domain.ContributionCursor{
		Credited: int(row.CreditedCount),
		At:       utcPtr(row.CursorAt),
		Ref:      row.CursorRef,
	}
}

func (r *ContributionRepository) GetCursor(ctx context.Context, userID, repo, kind string) (domain.ContributionCursor, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return domain.ContributionCursor{}, err
	}
	row, err := r.q.GetContributionSnapshot(ctx, generated.GetContributionSnapshotParams{
		UserID:     id,
		Repository: repo,
		Kind:       kind,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ContributionCursor{}, nil
		}
		return domain.ContributionCursor{}, fmt.Errorf("failed to read contribution snapshot: %w", err)
	}
	return mapSnapshot(row), nil
}

func (r *ContributionRepository) BeginTx(ctx context.Context) (repository.ContributionTx, error) {
	tx, err := begin(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &contributionTx{pgTx: pgTx{tx: tx}, q: r.q.WithTx(tx)}, nil
}

type contributionTx struct {
	pgTx
	q *generated.Queries
}

// GetCursorForUpdate creates the snapshot row if needed so there is always a row to lock
func (t *contributionTx) GetCursorForUpdate(ctx context.Context, userID, repo, kind string) (domain.ContributionCursor, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return domain.ContributionCursor{}, err
	}
	err = t.q.EnsureContributionSnapshot(ctx, generated.EnsureContributionSnapshotParams{
		UserID:     id,
		Repository: repo,
		Kind:       kind,
	})
	if err != nil {
		return domain.ContributionCursor{}, fmt.Errorf("failed to init contribution snapshot: %w", mapUserFK(err))
	}

	row, err := t.q.GetContributionSnapshotForUpdate(ctx, generated.GetContributionSnapshotForUpdateParams{
		UserID:     id,
		Repository: repo,
		Kind:       kind,
	})
	if err != nil {
		return domain.ContributionCursor{}, fmt.Errorf("failed to read contribution snapshot: %w", err)
	}
	return mapSnapshot(row), nil
}

func (t *contributionTx) AdvanceCursor(ctx context.Context, userID, repo, kind string, c domain.ContributionCursor, at time.Time) error {
	id, err := parseUserUUID(userID)
	if err != nil {
		return err
	}
	err = t.q.AdvanceContributionSnapshot(ctx, generated.AdvanceContributionSnapshotParams{
		UserID:        id,
		Repository:    repo,
		Kind:          kind,
		CreditedCount: int32(c.Credited),
		CursorAt:      timestamptzPtr(c.At),
		CursorRef:     c.Ref,
		UpdatedAt:     timestamptz(at),
	})
	if err != nil {
		return fmt.Errorf("failed to update contribution snapshot: %w", err)
	}
	return nil
}
