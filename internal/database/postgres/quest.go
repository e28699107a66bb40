package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rishav-026/Gamified-Coding-platform/internal/database/generated"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// QuestRepository implements repository.Quest
type QuestRepository struct {
	db *pgxpool.Pool
	q  *generated.Queries
}

// NewQuestRepository creates a new QuestRepository
func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{
		db: db,
		q:  generated.New(db),
	}
}

var (
	_ repository.Quest   = (*QuestRepository)(nil)
	_ repository.QuestTx = (*questTx)(nil)
)

func mapQuestProgressRow(row generated.QuestProgress) domain.QuestProgress {
	return domain.QuestProgress{
		UserID:         row.UserID.String(),
		QuestID:        row.QuestID,
		Status:         row.Status,
		StartedAt:      row.StartedAt.Time.UTC(),
		CompletedAt:    utcPtr(row.CompletedAt),
		XPEarned:       row.XpEarned,
		TasksCompleted: int(row.TasksCompleted),
		TotalTasks:     int(row.TotalTasks),
		Tasks:          []domain.TaskProgress{},
	}
}

func mapTaskProgressRow(row generated.TaskProgress) domain.TaskProgress {
	return domain.TaskProgress{
		TaskID:      row.TaskID,
		XPEarned:    row.XpEarned,
		CompletedAt: row.CompletedAt.Time.UTC(),
	}
}

func getQuestProgress(ctx context.Context, q *generated.Queries, userID, questID string, forUpdate bool) (*domain.QuestProgress, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	var row generated.QuestProgress
	if forUpdate {
		row, err = q.GetQuestProgressForUpdate(ctx, generated.GetQuestProgressForUpdateParams{UserID: id, QuestID: questID})
	} else {
		row, err = q.GetQuestProgress(ctx, generated.GetQuestProgressParams{UserID: id, QuestID: questID})
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestNotStarted
		}
		return nil, fmt.Errorf("failed to get quest progress: %w", err)
	}

	tasks, err := q.ListTaskProgressForQuest(ctx, generated.ListTaskProgressForQuestParams{UserID: id, QuestID: questID})
	if err != nil {
		return nil, fmt.Errorf("failed to query task progress: %w", err)
	}

	qp := mapQuestProgressRow(row)
	for _, t := range tasks {
		qp.Tasks = append(qp.Tasks, mapTaskProgressRow(t))
	}
	return &qp, nil
}

// StartQuest creates the progress row. Starting twice fails with ErrQuestAlreadyStarted.
func (r *QuestRepository) StartQuest(ctx context.Context, userID, questID string, totalTasks int, at time.Time) (*domain.QuestProgress, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	row, err := r.q.StartQuest(ctx, generated.StartQuestParams{
		UserID:     id,
		QuestID:    questID,
		Status:     domain.QuestStatusInProgress,
		StartedAt:  timestamptz(at),
		TotalTasks: int32(totalTasks),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrQuestAlreadyStarted
		}
		return nil, fmt.Errorf("failed to start quest: %w", mapUserFK(err))
	}
	qp := mapQuestProgressRow(row)
	return &qp, nil
}

func (r *QuestRepository) GetQuestProgress(ctx context.Context, userID, questID string) (*domain.QuestProgress, error) {
	return getQuestProgress(ctx, r.q, userID, questID, false)
}

func (r *QuestRepository) ListQuestProgress(ctx context.Context, userID string) ([]domain.QuestProgress, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.ListQuestProgress(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list quest progress: %w", err)
	}
	taskRows, err := r.q.ListTaskProgressForUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query task progress: %w", err)
	}

	byQuest := make(map[string][]domain.TaskProgress)
	for _, t := range taskRows {
		byQuest[t.QuestID] = append(byQuest[t.QuestID], mapTaskProgressRow(t))
	}

	list := make([]domain.QuestProgress, len(rows))
	for i, row := range rows {
		list[i] = mapQuestProgressRow(row)
		if tasks, ok := byQuest[row.QuestID]; ok {
			list[i].Tasks = tasks
		}
	}
	return list, nil
}

func (r *QuestRepository) GetQuestStats(ctx context.Context, userID string) (*domain.QuestStats, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	row, err := r.q.GetQuestStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get quest stats: %w", err)
	}
	return &domain.QuestStats{
		QuestsStarted:   int(row.QuestsStarted),
		QuestsCompleted: int(row.QuestsCompleted),
		TasksCompleted:  int(row.TasksCompleted),
		QuestXP:         row.QuestXp,
	}, nil
}

func (r *QuestRepository) BeginTx(ctx context.Context) (repository.QuestTx, error) {
	tx, err := begin(ctx, r.db)
	if err != nil {
		return nil, err
	}
	return &questTx{pgTx: pgTx{tx: tx}, q: r.q.WithTx(tx)}, nil
}

type questTx struct {
	pgTx
	q *generated.Queries
}

func (t *questTx) GetQuestProgressForUpdate(ctx context.Context, userID, questID string) (*domain.QuestProgress, error) {
	return getQuestProgress(ctx, t.q, userID, questID, true)
}

// RecordTaskCompletion fails with ErrTaskAlreadyCompleted on a repeat
func (t *questTx) RecordTaskCompletion(ctx context.Context, userID, questID string, task domain.TaskProgress) error {
	id, err := parseUserUUID(userID)
	if err != nil {
		return err
	}
	err = t.q.InsertTaskProgress(ctx, generated.InsertTaskProgressParams{
		UserID:      id,
		QuestID:     questID,
		TaskID:      task.TaskID,
		XpEarned:    task.XPEarned,
		CompletedAt: timestamptz(task.CompletedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTaskAlreadyCompleted
		}
		return fmt.Errorf("failed to record task completion: %w", err)
	}
	return nil
}

func (t *questTx) UpdateQuestProgress(ctx context.Context, p *domain.QuestProgress) error {
	id, err := uuid.Parse(p.UserID)
	if err != nil {
		return domain.ErrQuestNotStarted
	}
	n, err := t.q.UpdateQuestProgress(ctx, generated.UpdateQuestProgressParams{
		UserID:         id,
		QuestID:        p.QuestID,
		Status:         p.Status,
		CompletedAt:    timestamptzPtr(p.CompletedAt),
		XpEarned:       p.XPEarned,
		TasksCompleted: int32(p.TasksCompleted),
	})
	if err != nil {
		return fmt.Errorf("failed to update quest progress: %w", err)
	}
	if n == 0 {
		return domain.ErrQuestNotStarted
	}
	return nil
}
