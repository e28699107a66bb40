package repository

import (
	"context"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// Tutorial defines persistence for tutorial attempts
type Tutorial interface {
	ListTutorialProgress(ctx context.Context, userID string) ([]domain.TutorialProgress, error)
	BeginTx(ctx context.Context) (TutorialTx, error)
}

// TutorialTx extends Tx with best-attempt bookkeeping
type TutorialTx interface {
	Tx

	// GetTutorialProgressForUpdate returns nil without error when there is no attempt yet
	GetTutorialProgressForUpdate(ctx context.Context, userID, tutorialID string) (*domain.TutorialProgress, error)
	UpsertTutorialProgress(ctx context.Context, progress domain.TutorialProgress) error
}
