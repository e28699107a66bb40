package repository

import (
	"context"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// Submission defines persistence for code submissions
type Submission interface {
	CreateSubmission(ctx context.Context, submission *domain.Submission) error
	GetSubmission(ctx context.Context, id string) (*domain.Submission, error)
	// ListSubmissions filters by task when taskID is non-empty
	ListSubmissions(ctx context.Context, userID, taskID string, limit int) ([]domain.Submission, error)

	BeginTx(ctx context.Context) (SubmissionTx, error)
}

// SubmissionTx extends Tx with evaluation writes
type SubmissionTx interface {
	Tx

	GetSubmissionForUpdate(ctx context.Context, id string) (*domain.Submission, error)
	UpdateSubmissionResult(ctx context.Context, submission *domain.Submission) error
}
