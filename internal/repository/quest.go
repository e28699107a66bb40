package repository

import (
	"context"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// Quest defines persistence for per-user quest progress
type Quest interface {
	StartQuest(ctx context.Context, userID, questID string, totalTasks int, at time.Time) (*domain.QuestProgress, error)
	GetQuestProgress(ctx context.Context, userID, questID string) (*domain.QuestProgress, error)
	ListQuestProgress(ctx context.Context, userID string) ([]domain.QuestProgress, error)
	GetQuestStats(ctx context.Context, userID string) (*domain.QuestStats, error)

	BeginTx(ctx context.Context) (QuestTx, error)
}

// QuestTx extends Tx with task completion
type QuestTx interface {
	Tx

	GetQuestProgressForUpdate(ctx context.Context, userID, questID string) (*domain.QuestProgress, error)
	RecordTaskCompletion(ctx context.Context, userID, questID string, task domain.TaskProgress) error
	UpdateQuestProgress(ctx context.Context, progress *domain.QuestProgress) error
}
