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

const tutorialProgressColumns = `tutorial_id, completed, quiz_score, xp_earned, attempts, completed_at`

// TutorialRepository implements repository.Tutorial
type TutorialRepository struct {
	db *pgxpool.Pool
}

// NewTutorialRepository creates a new TutorialRepository
func NewTutorialRepository(db *pgxpool.Pool) *TutorialRepository {
	return &TutorialRepository{db: db}
}

var (
	_ repository.Tutorial   = (*TutorialRepository)(nil)
	_ repository.TutorialTx = (*tutorialTx)(nil)
)

func scanTutorialProgress(userID string, row pgx.Row) (domain.TutorialProgress, error) {
	tp := domain.TutorialProgress{UserID: userID}
	var completedAt *time.Time
	if err := row.Scan(&tp.TutorialID, &tp.Completed, &tp.QuizScore, &tp.XPEarned, &tp.Attempts, &completedAt); err != nil {
		return tp, err
	}
	if completedAt != nil {
		tp.CompletedAt = completedAt.UTC()
	}
	return tp, nil
}

func (r *TutorialRepository) ListTutorialProgress(ctx context.Context, userID string) ([]domain.TutorialProgress, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT `+tutorialProgressColumns+` FROM tutorial_progress WHERE user_id = $1 ORDER BY tutorial_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tutorial progress: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TutorialProgress, error) {
		return scanTutorialProgress(userID, row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tutorial progress: %w", err)
	}
	return list, nil
}

func (r *TutorialRepository) BeginTx(ctx context.Context) (repository.TutorialTx, error) {
	tx, err := begin(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &tutorialTx{pgTx: pgTx{tx: tx}}, nil
}

type tutorialTx struct {
	pgTx
}

func (t *tutorialTx) GetTutorialProgressForUpdate(ctx context.Context, userID, tutorialID string) (*domain.TutorialProgress, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}
	tp, err := scanTutorialProgress(userID, t.tx.QueryRow(ctx,
		`SELECT `+tutorialProgressColumns+` FROM tutorial_progress WHERE user_id = $1 AND tutorial_id = $2 FOR UPDATE`,
		userID, tutorialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tutorial progress: %w", err)
	}
	return &tp, nil
}

func (t *tutorialTx) UpsertTutorialProgress(ctx context.Context, p domain.TutorialProgress) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO tutorial_progress (user_id, tutorial_id, completed, quiz_score, xp_earned, attempts, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, tutorial_id) DO UPDATE SET
			completed = EXCLUDED.completed,
			quiz_score = EXCLUDED.quiz_score,
			xp_earned = EXCLUDED.xp_earned,
			attempts = EXCLUDED.attempts,
			completed_at = EXCLUDED.completed_at`,
		p.UserID, p.TutorialID, p.Completed, p.QuizScore, p.XPEarned, p.Attempts, p.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert tutorial progress: %w", mapUserFK(err))
	}
	return nil
}
