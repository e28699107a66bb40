package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

const submissionColumns = `submission_id, user_id, task_id, quest_id, code, language, status, test_results, feedback, xp_awarded, created_at, updated_at`

// SubmissionRepository implements repository.Submission
type SubmissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

var (
	_ repository.Submission   = (*SubmissionRepository)(nil)
	_ repository.SubmissionTx = (*submissionTx)(nil)
)

func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	var s domain.Submission
	var results []byte
	err := row.Scan(&s.ID, &s.UserID, &s.TaskID, &s.QuestID, &s.Code, &s.Language, &s.Status,
		&results, &s.Feedback, &s.XPAwarded, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to scan submission: %w", err)
	}
	if len(results) > 0 {
		var tr domain.TestResults
		if err := json.Unmarshal(results, &tr); err != nil {
			return nil, fmt.Errorf("failed to decode test results: %w", err)
		}
		s.TestResults = &tr
	}
	return &s, nil
}

func encodeResults(tr *domain.TestResults) ([]byte, error) {
	if tr == nil {
		return nil, nil
	}
	return json.Marshal(tr)
}

func parseSubmissionID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrSubmissionNotFound, id)
	}
	return u, nil
}

func (r *SubmissionRepository) CreateSubmission(ctx context.Context, s *domain.Submission) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if _, err := parseUserUUID(s.UserID); err != nil {
		return err
	}
	results, err := encodeResults(s.TestResults)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO submissions (`+submissionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		s.ID, s.UserID, s.TaskID, s.QuestID, s.Code, s.Language, s.Status,
		results, s.Feedback, s.XPAwarded, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", mapUserFK(err))
	}
	return nil
}

func (r *SubmissionRepository) GetSubmission(ctx context.Context, id string) (*domain.Submission, error) {
	sid, err := parseSubmissionID(id)
	if err != nil {
		return nil, err
	}
	return scanSubmission(r.db.QueryRow(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE submission_id = $1`, sid))
}

func (r *SubmissionRepository) ListSubmissions(ctx context.Context, userID, taskID string, limit int) ([]domain.Submission, error) {
	if _, err := parseUserUUID(userID); err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+submissionColumns+` FROM submissions
		WHERE user_id = $1 AND ($2::text = '' OR task_id = $2)
		ORDER BY created_at DESC, submission_id
		LIMIT $3`, userID, taskID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Submission, error) {
		s, err := scanSubmission(row)
		if err != nil {
			return domain.Submission{}, err
		}
		return *s, nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SubmissionRepository) BeginTx(ctx context.Context) (repository.SubmissionTx, error) {
	tx, err := begin(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &submissionTx{pgTx: pgTx{tx: tx}}, nil
}

type submissionTx struct {
	pgTx
}

func (t *submissionTx) GetSubmissionForUpdate(ctx context.Context, id string) (*domain.Submission, error) {
	sid, err := parseSubmissionID(id)
	if err != nil {
		return nil, err
	}
	return scanSubmission(t.tx.QueryRow(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE submission_id = $1 FOR UPDATE`, sid))
}

func (t *submissionTx) UpdateSubmissionResult(ctx context.Context, s *domain.Submission) error {
	results, err := encodeResults(s.TestResults)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, `
		UPDATE submissions
		SET status = $2, test_results = $3, feedback = $4, xp_awarded = $5, updated_at = $6
		WHERE submission_id = $1`,
		s.ID, s.Status, results, s.Feedback, s.XPAwarded, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}
