package domain

import "time"

// User is an account on the platform
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	GithubUsername string    `json:"github_username,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProfileUpdate holds the user-editable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	AvatarURL      *string `json:"avatar_url,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	GithubUsername *string `json:"github_username,omitempty"`
}

// UserProgress is the gamification slice of a user record.
// The progression engine receives it as a snapshot and never mutates it.
type UserProgress struct {
	UserID        string     `json:"user_id"`
	TotalXP       int64      `json:"total_xp"`
	Level         int        `json:"level"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastActivity  *time.Time `json:"last_activity,omitempty"`
	EarnedBadges  []string   `json:"earned_badges"`
}

// ProgressionDelta is the single atomic write produced by one progression event
type ProgressionDelta struct {
	UserID        string    `json:"user_id"`
	TotalXP       int64     `json:"total_xp"`
	Level         int       `json:"level"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	LastActivity  time.Time `json:"last_activity"`
	GrantBadges   []string  `json:"grant_badges"`
}

// ActivityCounts are the externally supplied aggregates used by badge rules
type ActivityCounts struct {
	CompletedQuests int `json:"completed_quests"`
	Contributions   int `json:"contributions"`
}

// EarnedBadge is a badge grant
type EarnedBadge struct {
	BadgeID  string    `json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`
}

// XP award sources
const (
	XPSourceTask         = "task"
	XPSourceTutorial     = "tutorial"
	XPSourceSubmission   = "submission"
	XPSourceContribution = "contribution"
	XPSourceAdmin        = "admin"
	XPSourceActivity     = "activity"
)

// XPAward describes one qualifying event that awards XP
type XPAward struct {
	Amount   int64  `json:"amount"`
	Source   string `json:"source"`
	SourceID string `json:"source_id,omitempty"`
}

// XPEvent is one row of the XP ledger
type XPEvent struct {
	UserID     string    `json:"user_id"`
	Amount     int64     `json:"amount"`
	Source     string    `json:"source"`
	SourceID   string    `json:"source_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
