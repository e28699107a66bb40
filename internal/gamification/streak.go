package gamification

import (
	"fmt"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/clock"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// StreakState is the stored streak of a user
type StreakState struct {
	Current      int
	Longest      int
	LastActivity *time.Time
}

// StreakUpdate is the outcome of one qualifying activity
type StreakUpdate struct {
	Current int
	Longest int
	Changed bool
}

// UpdateStreak applies an activity at now. Days are UTC calendar days:
// same day (or an earlier day) is a no-op, the next day extends the streak,
// anything later restarts it at 1. Longest never decreases.
func UpdateStreak(state StreakState, now time.Time) (StreakUpdate, error) {
	if now.IsZero() {
		return StreakUpdate{}, fmt.Errorf("%w: activity time is zero", domain.ErrInvalidInput)
	}
	if state.Current < 0 || state.Longest < 0 {
		return StreakUpdate{}, fmt.Errorf("%w: negative streak counters (%d, %d)", domain.ErrInvalidInput, state.Current, state.Longest)
	}

	if state.LastActivity == nil {
		return StreakUpdate{Current: 1, Longest: max(state.Longest, 1), Changed: true}, nil
	}

	switch gap := clock.DaysBetween(*state.LastActivity, now); {
	case gap <= 0:
		return StreakUpdate{Current: state.Current, Longest: state.Longest}, nil
	case gap == 1:
		next := state.Current + 1
		return StreakUpdate{Current: next, Longest: max(state.Longest, next), Changed: true}, nil
	default:
		return StreakUpdate{Current: 1, Longest: max(state.Longest, state.Current, 1), Changed: true}, nil
	}
}

// StreakStatus reports the streak as seen at now without recording activity.
// A streak whose last day is two or more days back is already broken.
func StreakStatus(state StreakState, now time.Time) domain.StreakInfo {
	info := domain.StreakInfo{
		CurrentStreak: state.Current,
		LongestStreak: max(state.Longest, state.Current),
		LastActivity:  state.LastActivity,
	}
	if state.LastActivity == nil {
		info.CurrentStreak = 0
		return info
	}

	switch gap := clock.DaysBetween(*state.LastActivity, now); {
	case gap <= 0:
		info.ActiveToday = true
	case gap == 1:
		info.AtRisk = state.Current > 0
	default:
		info.CurrentStreak = 0
	}
	return info
}
