package submission

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rishav-026/Gamified-Coding-platform/internal/catalog"
	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// Service defines the submission business logic.
// Submissions are private: reads and evaluation by another user report ErrSubmissionNotFound.
type Service interface {
	Create(ctx context.Context, userID, taskID, questID, code, language string) (*domain.Submission, error)
	Get(ctx context.Context, userID, submissionID string) (*domain.Submission, error)
	ListForUser(ctx context.Context, userID, taskID string, limit int) ([]domain.Submission, error)
	Evaluate(ctx context.Context, userID, submissionID string) (*domain.SubmissionEvaluation, error)
}

type service struct {
	repo        repository.Submission
	catalog     *catalog.Catalog
	runner      Runner
	progression gamification.Service
	clock       clock.Clock
}

// NewService creates a new submission service. A nil runner means the static checker.
func NewService(repo repository.Submission, cat *catalog.Catalog, runner Runner, progression gamification.Service, clk clock.Clock) Service {
	if runner == nil {
		runner = NewStaticChecker()
	}
	return &service{
		repo:        repo,
		catalog:     cat,
		runner:      runner,
		progression: progression,
		clock:       clk,
	}
}

func (s *service) Create(ctx context.Context, userID, taskID, questID, code, language string) (*domain.Submission, error) {
	task, ok := s.catalog.Task(taskID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	if questID == "" {
		questID = task.QuestID
	} else if questID != task.QuestID {
		return nil, fmt.Errorf("%w: task %s does not belong to quest %s", domain.ErrInvalidInput, taskID, questID)
	}
	if strings.TrimSpace(language) == "" {
		return nil, fmt.Errorf("%w: language is required", domain.ErrInvalidInput)
	}
	if len(code) > MaxCodeBytes {
		return nil, fmt.Errorf("%w: code exceeds %d bytes", domain.ErrInvalidInput, MaxCodeBytes)
	}

	now := s.clock.Now()
	sub := &domain.Submission{
		ID:        uuid.NewString(),
		UserID:    userID,
		TaskID:    taskID,
		QuestID:   questID,
		Code:      code,
		Language:  strings.ToLower(language),
		Status:    domain.SubmissionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgSubmissionCreated, "user_id", userID, "submission_id", sub.ID, "task_id", taskID)
	return sub, nil
}

func (s *service) Get(ctx context.Context, userID, submissionID string) (*domain.Submission, error) {
	sub, err := s.repo.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, fmt.Errorf("%w: %s", domain.ErrSubmissionNotFound, submissionID)
	}
	return sub, nil
}

func (s *service) ListForUser(ctx context.Context, userID, taskID string, limit int) ([]domain.Submission, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.ListSubmissions(ctx, userID, taskID, limit)
}

// Evaluate runs the submission once. The runner works on an unlocked read;
// the pending status is re-checked under the row lock before the verdict is
// stored, so two concurrent evaluations award XP at most once.
func (s *service) Evaluate(ctx context.Context, userID, submissionID string) (*domain.SubmissionEvaluation, error) {
	log := logger.FromContext(ctx)

	sub, err := s.Get(ctx, userID, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != domain.SubmissionPending {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrSubmissionAlreadyEvaluated, submissionID, sub.Status)
	}

	results, err := s.runner.Run(ctx, sub.Code, sub.Language)
	if err != nil {
		return nil, fmt.Errorf("failed to run submission: %w", err)
	}

	status := domain.SubmissionFailed
	var xp int64
	if results.AllPassed {
		status = domain.SubmissionPassed
		xp = domain.SubmissionPassXP
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	locked, err := tx.GetSubmissionForUpdate(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if locked.Status != domain.SubmissionPending {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrSubmissionAlreadyEvaluated, submissionID, locked.Status)
	}

	locked.Status = status
	locked.TestResults = &results
	locked.Feedback = feedback(results)
	locked.XPAwarded = xp
	locked.UpdatedAt = s.clock.Now()

	if err := tx.UpdateSubmissionResult(ctx, locked); err != nil {
		return nil, err
	}

	award := domain.XPAward{
		Amount:   xp,
		Source:   domain.XPSourceSubmission,
		SourceID: submissionID,
	}
	var result *domain.ProgressionResult
	if xp > 0 {
		result, err = s.progression.StageXP(ctx, tx, userID, award, gamification.FreshOnMissing())
		if err != nil {
			log.Error(LogMsgSubmissionAwardFail, "user_id", userID, "submission_id", submissionID, "error", err)
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit evaluation: %w", err)
	}
	if result != nil {
		s.progression.Announce(ctx, award, result)
	}

	log.Info(LogMsgSubmissionEvaluated, "user_id", userID, "submission_id", submissionID, "status", status, "xp", xp)

	return &domain.SubmissionEvaluation{
		SubmissionID: submissionID,
		Status:       status,
		TestResults:  results,
		XPAwarded:    xp,
		Progression:  result,
	}, nil
}

func feedback(r domain.TestResults) string {
	if r.AllPassed {
		return fmt.Sprintf("All %d checks passed", r.Total)
	}
	var failed []string
	for _, c := range r.Cases {
		if c.Status != CheckPassed {
			failed = append(failed, c.Message)
		}
	}
	return fmt.Sprintf("%d of %d checks failed: %s", r.Failed, r.Total, strings.Join(failed, "; "))
}
