package quest

import (
	"context"
	"fmt"

	"github.com/rishav-026/Gamified-Coding-platform/internal/catalog"
	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// Service defines the quest business logic
type Service interface {
	// Catalog
	ListQuests(ctx context.Context) []domain.Quest
	ListByCategory(ctx context.Context, category string) []domain.Quest
	GetQuest(ctx context.Context, questID string) (*domain.Quest, error)
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)

	// Per-user progress
	StartQuest(ctx context.Context, userID, questID string) (*domain.QuestProgress, error)
	CompleteTask(ctx context.Context, userID, questID, taskID string) (*domain.TaskCompletion, error)
	GetProgress(ctx context.Context, userID, questID string) (*domain.QuestProgress, error)
	ListProgress(ctx context.Context, userID string) ([]domain.QuestProgress, error)
	Stats(ctx context.Context, userID string) (*domain.QuestStats, error)
}

type service struct {
	repo        repository.Quest
	catalog     *catalog.Catalog
	progression gamification.Service
	clock       clock.Clock
	publisher   event.Publisher
}

// NewService creates a new quest service. publisher may be nil.
func NewService(repo repository.Quest, cat *catalog.Catalog, progression gamification.Service, clk clock.Clock, publisher event.Publisher) Service {
	return &service{
		repo:        repo,
		catalog:     cat,
		progression: progression,
		clock:       clk,
		publisher:   publisher,
	}
}

func (s *service) ListQuests(_ context.Context) []domain.Quest {
	return s.catalog.Quests()
}

func (s *service) ListByCategory(_ context.Context, category string) []domain.Quest {
	return s.catalog.QuestsByCategory(category)
}

func (s *service) GetQuest(_ context.Context, questID string) (*domain.Quest, error) {
	q, ok := s.catalog.Quest(questID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestNotFound, questID)
	}
	return &q, nil
}

func (s *service) GetTask(_ context.Context, taskID string) (*domain.Task, error) {
	t, ok := s.catalog.Task(taskID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	return &t, nil
}

// StartQuest creates the user's progress row for the quest
func (s *service) StartQuest(ctx context.Context, userID, questID string) (*domain.QuestProgress, error) {
	q, err := s.GetQuest(ctx, questID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.StartQuest(ctx, userID, questID, len(q.Tasks), s.clock.Now())
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgQuestStarted, "user_id", userID, "quest_id", questID)
	return p, nil
}

// CompleteTask records the task, completes the quest when it was the last
// open task and awards the task XP, all in one transaction. The award is
// staged after the quest row is updated so a just-completed quest already
// counts toward the completed_quests badge metric.
func (s *service) CompleteTask(ctx context.Context, userID, questID, taskID string) (*domain.TaskCompletion, error) {
	log := logger.FromContext(ctx)

	q, err := s.GetQuest(ctx, questID)
	if err != nil {
		return nil, err
	}
	task, ok := q.Task(taskID)
	if !ok {
		return nil, fmt.Errorf("%w: %s in quest %s", domain.ErrTaskNotFound, taskID, questID)
	}

	now := s.clock.Now()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	progress, err := tx.GetQuestProgressForUpdate(ctx, userID, questID)
	if err != nil {
		return nil, err
	}

	if err := tx.RecordTaskCompletion(ctx, userID, questID, domain.TaskProgress{
		TaskID:      taskID,
		XPEarned:    task.XPReward,
		CompletedAt: now,
	}); err != nil {
		return nil, err
	}

	progress.TasksCompleted++
	progress.XPEarned += task.XPReward
	completed := progress.Status != domain.QuestStatusCompleted && progress.TasksCompleted >= len(q.Tasks)
	if completed {
		progress.Status = domain.QuestStatusCompleted
		progress.CompletedAt = &now
	}

	if err := tx.UpdateQuestProgress(ctx, progress); err != nil {
		return nil, err
	}

	award := domain.XPAward{
		Amount:   task.XPReward,
		Source:   domain.XPSourceTask,
		SourceID: taskID,
	}
	result, err := s.progression.StageXP(ctx, tx, userID, award, gamification.FreshOnMissing())
	if err != nil {
		log.Error(LogMsgTaskXPAwardFailed, "user_id", userID, "task_id", taskID, "error", err)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit task completion: %w", err)
	}
	s.progression.Announce(ctx, award, result)

	log.Info(LogMsgTaskCompleted, "user_id", userID, "quest_id", questID, "task_id", taskID, "xp", task.XPReward)

	out := &domain.TaskCompletion{
		QuestID:        questID,
		TaskID:         taskID,
		TaskXP:         task.XPReward,
		QuestXP:        progress.XPEarned,
		TasksCompleted: progress.TasksCompleted,
		TotalTasks:     len(q.Tasks),
		QuestCompleted: completed,
		Progression:    result,
	}

	if completed {
		log.Info(LogMsgQuestCompleted, "user_id", userID, "quest_id", questID, "xp", progress.XPEarned)
		if s.publisher != nil {
			s.publisher.PublishWithRetry(ctx, event.NewQuestCompletedEvent(userID, questID, q.Title, progress.XPEarned, now))
		}
	}

	return out, nil
}

func (s *service) GetProgress(ctx context.Context, userID, questID string) (*domain.QuestProgress, error) {
	if _, err := s.GetQuest(ctx, questID); err != nil {
		return nil, err
	}
	return s.repo.GetQuestProgress(ctx, userID, questID)
}

func (s *service) ListProgress(ctx context.Context, userID string) ([]domain.QuestProgress, error) {
	return s.repo.ListQuestProgress(ctx, userID)
}

func (s *service) Stats(ctx context.Context, userID string) (*domain.QuestStats, error) {
	return s.repo.GetQuestStats(ctx, userID)
}
