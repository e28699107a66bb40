package gamification

import (
	"fmt"
	"math"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// ProgressInput is one qualifying event plus the externally counted aggregates
type ProgressInput struct {
	XPDelta         int64
	CompletedQuests int
	Contributions   int
}

// Engine composes the level table, streak tracker and badge evaluator.
// It holds no per-user state and is safe for concurrent use.
type Engine struct {
	levels *LevelTable
	badges *BadgeEvaluator
}

// NewEngine creates an engine over validated tables
func NewEngine(levels *LevelTable, badges *BadgeEvaluator) *Engine {
	return &Engine{levels: levels, badges: badges}
}

// NewDefaultEngine uses the built-in level table and badge catalog
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultLevelTable(), DefaultBadgeEvaluator())
}

// Levels returns the engine's level table
func (e *Engine) Levels() *LevelTable { return e.levels }

// Badges returns the engine's badge evaluator
func (e *Engine) Badges() *BadgeEvaluator { return e.badges }

// ApplyProgressEvent computes every effect of one event on a snapshot.
// A nil snapshot is a fresh user. Nothing is written; the caller persists
// result.Delta() atomically before the next event for the same user.
func (e *Engine) ApplyProgressEvent(snapshot *domain.UserProgress, in ProgressInput, now time.Time) (*domain.ProgressionResult, error) {
	if in.XPDelta < 0 {
		return nil, fmt.Errorf("%w: xp delta %d is negative", domain.ErrInvalidInput, in.XPDelta)
	}
	if in.CompletedQuests < 0 || in.Contributions < 0 {
		return nil, fmt.Errorf("%w: negative activity counts", domain.ErrInvalidInput)
	}
	if now.IsZero() {
		return nil, fmt.Errorf("%w: event time is zero", domain.ErrInvalidInput)
	}
	now = now.UTC()

	var snap domain.UserProgress
	if snapshot != nil {
		snap = *snapshot
	}

	before, err := e.levels.Resolve(snap.TotalXP)
	if err != nil {
		return nil, err
	}
	if in.XPDelta > math.MaxInt64-snap.TotalXP {
		return nil, fmt.Errorf("%w: xp total overflows", domain.ErrInvalidInput)
	}
	totalAfter := snap.TotalXP + in.XPDelta
	after, err := e.levels.Resolve(totalAfter)
	if err != nil {
		return nil, err
	}

	streak, err := UpdateStreak(StreakState{
		Current:      snap.CurrentStreak,
		Longest:      snap.LongestStreak,
		LastActivity: snap.LastActivity,
	}, now)
	if err != nil {
		return nil, err
	}

	newly := e.badges.Evaluate(Stats{
		TotalXP:         totalAfter,
		Level:           after.Level,
		CompletedQuests: in.CompletedQuests,
		CurrentStreak:   streak.Current,
		Contributions:   in.Contributions,
	}, snap.EarnedBadges)

	lastActivity := now
	if snap.LastActivity != nil && snap.LastActivity.After(now) {
		lastActivity = snap.LastActivity.UTC()
	}

	return &domain.ProgressionResult{
		UserID:             snap.UserID,
		XPAwarded:          in.XPDelta,
		TotalXP:            totalAfter,
		LevelBefore:        before.Level,
		LevelAfter:         after.Level,
		LeveledUp:          after.Level > before.Level,
		LevelTitle:         after.Title,
		StreakAfter:        streak.Current,
		LongestStreakAfter: streak.Longest,
		StreakChanged:      streak.Changed,
		NewlyEarnedBadges:  newly,
		LastActivityAfter:  lastActivity,
		OccurredAt:         now,
	}, nil
}
