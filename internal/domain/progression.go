package domain

import "time"

// LevelThreshold maps a minimum cumulative XP to a level and title
type LevelThreshold struct {
	Level int    `json:"level"`
	MinXP int64  `json:"min_xp"`
	Title string `json:"title"`
}

// LevelInfo describes where a cumulative XP total sits in the level table.
// NextLevelMinXP and XPToNextLevel are nil at the maximum level.
type LevelInfo struct {
	Level              int     `json:"level"`
	Title              string  `json:"title"`
	TotalXP            int64   `json:"total_xp"`
	CurrentLevelMinXP  int64   `json:"current_level_min_xp"`
	NextLevelMinXP     *int64  `json:"next_level_min_xp"`
	XPIntoLevel        int64   `json:"xp_into_level"`
	XPToNextLevel      *int64  `json:"xp_to_next_level"`
	XPRemaining        *int64  `json:"xp_remaining"`
	ProgressPercentage float64 `json:"progress_percentage"`
	MaxLevel           bool    `json:"max_level"`
}

// StreakInfo is a user's streak state as of a given instant
type StreakInfo struct {
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastActivity  *time.Time `json:"last_activity,omitempty"`
	ActiveToday   bool       `json:"active_today"`
	AtRisk        bool       `json:"at_risk"`
}

// ProgressionResult describes every side effect of one progression event.
// It is computed without touching storage; Delta is what the caller persists.
type ProgressionResult struct {
	UserID             string    `json:"user_id"`
	XPAwarded          int64     `json:"xp_awarded"`
	TotalXP            int64     `json:"total_xp"`
	LevelBefore        int       `json:"level_before"`
	LevelAfter         int       `json:"level_after"`
	LeveledUp          bool      `json:"leveled_up"`
	LevelTitle         string    `json:"level_title"`
	StreakAfter        int       `json:"streak_after"`
	LongestStreakAfter int       `json:"longest_streak_after"`
	StreakChanged      bool      `json:"streak_changed"`
	NewlyEarnedBadges  []string  `json:"newly_earned_badges"`
	LastActivityAfter  time.Time `json:"last_activity_after"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// Delta returns the persistence write for this result
func (r *ProgressionResult) Delta() ProgressionDelta {
	badges := make([]string, len(r.NewlyEarnedBadges))
	copy(badges, r.NewlyEarnedBadges)
	return ProgressionDelta{
		UserID:        r.UserID,
		TotalXP:       r.TotalXP,
		Level:         r.LevelAfter,
		CurrentStreak: r.StreakAfter,
		LongestStreak: r.LongestStreakAfter,
		LastActivity:  r.LastActivityAfter,
		GrantBadges:   badges,
	}
}
