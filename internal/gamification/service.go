package gamification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/concurrency"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
	"github.com/rishav-026/Gamified-Coding-platform/internal/metrics"
	"github.com/rishav-026/Gamified-Coding-platform/internal/repository"
)

// EarnedBadge is a catalog badge together with its grant time
type EarnedBadge struct {
	BadgeRule
	EarnedAt time.Time `json:"earned_at"`
}

// AwardOption tunes a single AwardXP call
type AwardOption func(*awardOptions)

type awardOptions struct {
	freshOnMissing bool
}

// FreshOnMissing treats a user without a progress row as a brand new user
// instead of failing with ErrUserNotFound.
func FreshOnMissing() AwardOption {
	return func(o *awardOptions) { o.freshOnMissing = true }
}

// Service defines the progression business logic
type Service interface {
	// Progression events
	AwardXP(ctx context.Context, userID string, award domain.XPAward, opts ...AwardOption) (*domain.ProgressionResult, error)
	// StageXP applies the award inside tx, a transaction owned by the caller,
	// so the award commits or rolls back together with the caller's writes.
	// Nothing is published; call Announce after tx commits.
	StageXP(ctx context.Context, tx repository.Tx, userID string, award domain.XPAward, opts ...AwardOption) (*domain.ProgressionResult, error)
	// Announce logs and publishes a committed award
	Announce(ctx context.Context, award domain.XPAward, result *domain.ProgressionResult)
	RecordActivity(ctx context.Context, userID string, opts ...AwardOption) (*domain.ProgressionResult, error)

	// Read side
	GetProgress(ctx context.Context, userID string) (*domain.UserProgress, error)
	GetLevelInfo(ctx context.Context, userID string) (*domain.LevelInfo, error)
	GetStreak(ctx context.Context, userID string) (*domain.StreakInfo, error)
	GetEarnedBadges(ctx context.Context, userID string) ([]EarnedBadge, error)

	// Static configuration
	BadgeCatalog() []BadgeRule
	GetBadge(badgeID string) (*BadgeRule, error)
	LevelTable() []domain.LevelThreshold
	ResolveLevel(totalXP int64) (domain.LevelInfo, error)
}

type service struct {
	repo      repository.Progress
	engine    *Engine
	clock     clock.Clock
	publisher event.Publisher
	locks     *concurrency.LockManager
}

// NewService creates a new gamification service. publisher may be nil.
func NewService(repo repository.Progress, engine *Engine, clk clock.Clock, publisher event.Publisher, locks *concurrency.LockManager) Service {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &service{
		repo:      repo,
		engine:    engine,
		clock:     clk,
		publisher: publisher,
		locks:     locks,
	}
}

// AwardXP runs one progression event for the user and persists its delta atomically
func (s *service) AwardXP(ctx context.Context, userID string, award domain.XPAward, opts ...AwardOption) (*domain.ProgressionResult, error) {
	award, o, err := prepareAward(userID, award, opts)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	result, err := s.applyInTx(ctx, userID, award, o)
	if err != nil {
		s.recordFailure(ctx, userID, award, err)
		return nil, err
	}

	s.Announce(ctx, award, result)
	return result, nil
}

func (s *service) StageXP(ctx context.Context, owner repository.Tx, userID string, award domain.XPAward, opts ...AwardOption) (*domain.ProgressionResult, error) {
	award, o, err := prepareAward(userID, award, opts)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.JoinTx(owner)
	if err != nil {
		return nil, fmt.Errorf("failed to join transaction: %w", err)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	result, err := s.apply(ctx, tx, userID, award, o)
	if err != nil {
		s.recordFailure(ctx, userID, award, err)
		return nil, err
	}

	logger.FromContext(ctx).Debug(LogMsgXPStaged, "user_id", userID, "amount", award.Amount, "source", award.Source)
	return result, nil
}

func prepareAward(userID string, award domain.XPAward, opts []AwardOption) (domain.XPAward, awardOptions, error) {
	var o awardOptions
	if userID == "" {
		return award, o, fmt.Errorf("%w: missing user id", domain.ErrInvalidInput)
	}
	if award.Amount < 0 {
		metrics.ProgressionErrors.WithLabelValues("invalid_input").Inc()
		return award, o, fmt.Errorf("%w: xp amount %d is negative", domain.ErrInvalidInput, award.Amount)
	}
	if award.Source == "" {
		award.Source = domain.XPSourceActivity
	}
	for _, opt := range opts {
		opt(&o)
	}
	return award, o, nil
}

func (s *service) recordFailure(ctx context.Context, userID string, award domain.XPAward, err error) {
	metrics.ProgressionErrors.WithLabelValues(errorReason(err)).Inc()
	logger.FromContext(ctx).Warn(LogMsgProgressionFailed, "user_id", userID, "source", award.Source, "error", err)
}

func (s *service) applyInTx(ctx context.Context, userID string, award domain.XPAward, o awardOptions) (*domain.ProgressionResult, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	result, err := s.apply(ctx, tx, userID, award, o)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit progression: %w", err)
	}
	return result, nil
}

// apply is the read-modify-write cycle. The caller holds the user's lock and owns tx.
func (s *service) apply(ctx context.Context, tx repository.ProgressTx, userID string, award domain.XPAward, o awardOptions) (*domain.ProgressionResult, error) {
	snapshot, err := tx.LoadUserProgressForUpdate(ctx, userID)
	if err != nil {
		if !(o.freshOnMissing && errors.Is(err, domain.ErrUserNotFound)) {
			return nil, fmt.Errorf("failed to load progress: %w", err)
		}
		snapshot = &domain.UserProgress{UserID: userID}
	}

	completed, err := tx.CountCompletedQuests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed quests: %w", err)
	}
	contributions, err := tx.CountContributions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count contributions: %w", err)
	}

	result, err := s.engine.ApplyProgressEvent(snapshot, ProgressInput{
		XPDelta:         award.Amount,
		CompletedQuests: completed,
		Contributions:   contributions,
	}, s.clock.Now())
	if err != nil {
		return nil, err
	}
	result.UserID = userID

	if err := tx.ApplyProgressionDelta(ctx, result.Delta()); err != nil {
		return nil, fmt.Errorf("failed to apply progression delta: %w", err)
	}

	if award.Amount > 0 {
		if err := tx.RecordXPEvent(ctx, domain.XPEvent{
			UserID:     userID,
			Amount:     award.Amount,
			Source:     award.Source,
			SourceID:   award.SourceID,
			OccurredAt: result.OccurredAt,
		}); err != nil {
			return nil, fmt.Errorf("failed to record xp event: %w", err)
		}
	}
	return result, nil
}

func (s *service) Announce(ctx context.Context, award domain.XPAward, r *domain.ProgressionResult) {
	if r == nil {
		return
	}
	log := logger.FromContext(ctx)
	log.Info(LogMsgXPAwarded,
		"user_id", r.UserID,
		"amount", award.Amount,
		"source", award.Source,
		"total_xp", r.TotalXP,
		"level", r.LevelAfter,
		"streak", r.StreakAfter)
	if r.LeveledUp {
		log.Info(LogMsgLevelUp, "user_id", r.UserID, "from", r.LevelBefore, "to", r.LevelAfter)
	}
	if len(r.NewlyEarnedBadges) > 0 {
		log.Info(LogMsgBadgesEarned, "user_id", r.UserID, "badges", r.NewlyEarnedBadges)
	}

	if s.publisher == nil {
		return
	}

	s.publisher.PublishWithRetry(ctx, event.NewXPAwardedEvent(r.UserID, award, r.TotalXP, r.OccurredAt))

	if r.LeveledUp {
		s.publisher.PublishWithRetry(ctx, event.NewLevelUpEvent(r.UserID, r.LevelBefore, r.LevelAfter, r.LevelTitle, r.OccurredAt))
	}
	for _, id := range r.NewlyEarnedBadges {
		rule, _ := s.engine.Badges().Rule(id)
		s.publisher.PublishWithRetry(ctx, event.NewBadgeEarnedEvent(r.UserID, id, rule.Name, rule.Icon, r.OccurredAt))
	}
	if r.StreakChanged {
		s.publisher.PublishWithRetry(ctx, event.NewStreakExtendedEvent(r.UserID, r.StreakAfter, r.LongestStreakAfter, r.OccurredAt))
	}
}

// RecordActivity is a zero-XP event: it only moves the streak (and any streak badges)
func (s *service) RecordActivity(ctx context.Context, userID string, opts ...AwardOption) (*domain.ProgressionResult, error) {
	return s.AwardXP(ctx, userID, domain.XPAward{Source: domain.XPSourceActivity}, opts...)
}

func (s *service) GetProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	p, err := s.repo.GetUserProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return p, nil
}

func (s *service) GetLevelInfo(ctx context.Context, userID string) (*domain.LevelInfo, error) {
	p, err := s.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	info, err := s.engine.Levels().Resolve(p.TotalXP)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *service) GetStreak(ctx context.Context, userID string) (*domain.StreakInfo, error) {
	p, err := s.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := StreakStatus(StreakState{
		Current:      p.CurrentStreak,
		Longest:      p.LongestStreak,
		LastActivity: p.LastActivity,
	}, s.clock.Now())
	return &info, nil
}

// GetEarnedBadges returns grants in catalog order; grants of retired badges are skipped
func (s *service) GetEarnedBadges(ctx context.Context, userID string) ([]EarnedBadge, error) {
	grants, err := s.repo.GetEarnedBadges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get earned badges: %w", err)
	}

	at := make(map[string]time.Time, len(grants))
	for _, g := range grants {
		at[g.BadgeID] = g.EarnedAt
	}

	out := make([]EarnedBadge, 0, len(grants))
	for _, rule := range s.engine.Badges().Rules() {
		if t, ok := at[rule.ID]; ok {
			out = append(out, EarnedBadge{BadgeRule: rule, EarnedAt: t})
		}
	}
	return out, nil
}

func (s *service) BadgeCatalog() []BadgeRule {
	return s.engine.Badges().Rules()
}

func (s *service) GetBadge(badgeID string) (*BadgeRule, error) {
	rule, ok := s.engine.Badges().Rule(badgeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBadgeNotFound, badgeID)
	}
	return &rule, nil
}

func (s *service) LevelTable() []domain.LevelThreshold {
	return s.engine.Levels().Thresholds()
}

func (s *service) ResolveLevel(totalXP int64) (domain.LevelInfo, error) {
	return s.engine.Levels().Resolve(totalXP)
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	default:
		return "storage"
	}
}
