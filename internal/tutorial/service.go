package tutorial

import (
	"context"
	"fmt"

	"github.com/rishav-026/Gamified-Coding-platform/internal/catalog"
	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// Log messages
const (
	LogMsgTutorialAttempt   = "Tutorial attempt recorded"
	LogMsgTutorialAwardFail = "Tutorial progression failed; attempt rolled back"
)

// Service defines the tutorial business logic
type Service interface {
	List(ctx context.Context) []domain.Tutorial
	Get(ctx context.Context, tutorialID string) (*domain.Tutorial, error)
	// Next returns the tutorial after tutorialID, or nil after the last one
	Next(ctx context.Context, tutorialID string) (*domain.Tutorial, error)
	Complete(ctx context.Context, userID, tutorialID string, quizScore float64) (*domain.TutorialCompletion, error)
	Progress(ctx context.Context, userID string) ([]domain.TutorialProgress, error)
}

type service struct {
	repo        repository.Tutorial
	catalog     *catalog.Catalog
	progression gamification.Service
	clock       clock.Clock
}

// NewService creates a new tutorial service
func NewService(repo repository.Tutorial, cat *catalog.Catalog, progression gamification.Service, clk clock.Clock) Service {
	return &service{
		repo:        repo,
		catalog:     cat,
		progression: progression,
		clock:       clk,
	}
}

func (s *service) List(_ context.Context) []domain.Tutorial {
	return s.catalog.Tutorials()
}

func (s *service) Get(_ context.Context, tutorialID string) (*domain.Tutorial, error) {
	t, ok := s.catalog.Tutorial(tutorialID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTutorialNotFound, tutorialID)
	}
	return &t, nil
}

func (s *service) Next(ctx context.Context, tutorialID string) (*domain.Tutorial, error) {
	if _, err := s.Get(ctx, tutorialID); err != nil {
		return nil, err
	}
	next, ok := s.catalog.NextTutorial(tutorialID)
	if !ok {
		return nil, nil
	}
	return &next, nil
}

// Complete records a quiz attempt. The stored attempt keeps the best score,
// and the XP for a tutorial is capped at what its best score is worth: a
// better retry only tops up the difference. Every attempt is a qualifying
// activity for the streak, even when it earns nothing new.
func (s *service) Complete(ctx context.Context, userID, tutorialID string, quizScore float64) (*domain.TutorialCompletion, error) {
	log := logger.FromContext(ctx)

	t, err := s.Get(ctx, tutorialID)
	if err != nil {
		return nil, err
	}
	earned, err := gamification.TutorialXP(t.XPReward, quizScore)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	prev, err := tx.GetTutorialProgressForUpdate(ctx, userID, tutorialID)
	if err != nil {
		return nil, err
	}

	next := domain.TutorialProgress{
		UserID:      userID,
		TutorialID:  tutorialID,
		Completed:   quizScore >= domain.TutorialPassScore,
		QuizScore:   quizScore,
		XPEarned:    earned,
		Attempts:    1,
		CompletedAt: now,
	}
	topUp := earned
	if prev != nil {
		next.Attempts = prev.Attempts + 1
		next.Completed = next.Completed || prev.Completed
		if prev.QuizScore > next.QuizScore {
			next.QuizScore = prev.QuizScore
		}
		if prev.XPEarned >= earned {
			next.XPEarned = prev.XPEarned
			topUp = 0
		} else {
			topUp = earned - prev.XPEarned
		}
		if prev.Completed {
			next.CompletedAt = prev.CompletedAt
		}
	}

	if err := tx.UpsertTutorialProgress(ctx, next); err != nil {
		return nil, err
	}

	award := domain.XPAward{
		Amount:   topUp,
		Source:   domain.XPSourceTutorial,
		SourceID: tutorialID,
	}
	result, err := s.progression.StageXP(ctx, tx, userID, award, gamification.FreshOnMissing())
	if err != nil {
		log.Error(LogMsgTutorialAwardFail, "user_id", userID, "tutorial_id", tutorialID, "error", err)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit tutorial attempt: %w", err)
	}
	s.progression.Announce(ctx, award, result)

	log.Info(LogMsgTutorialAttempt,
		"user_id", userID,
		"tutorial_id", tutorialID,
		"score", quizScore,
		"attempt", next.Attempts,
		"xp", topUp)

	out := &domain.TutorialCompletion{
		TutorialID:  tutorialID,
		QuizScore:   quizScore,
		Passed:      quizScore >= domain.TutorialPassScore,
		XPEarned:    topUp,
		Progression: result,
	}
	if n, ok := s.catalog.NextTutorial(tutorialID); ok {
		out.NextID = n.ID
	}
	return out, nil
}

func (s *service) Progress(ctx context.Context, userID string) ([]domain.TutorialProgress, error) {
	return s.repo.ListTutorialProgress(ctx, userID)
}
