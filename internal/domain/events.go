package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "progression.level_up")
const (
	// EventTypeXPAwarded is published after every committed progression event
	EventTypeXPAwarded = "progression.xp_awarded"

	// EventTypeLevelUp is published when a progression event crosses a level threshold
	EventTypeLevelUp = "progression.level_up"

	// EventTypeBadgeEarned is published once per newly granted badge
	EventTypeBadgeEarned = "progression.badge_earned"

	// EventTypeStreakExtended is published when the current streak grows
	EventTypeStreakExtended = "progression.streak_extended"

	// EventTypeQuestCompleted is published when the last task of a quest is completed
	EventTypeQuestCompleted = "quest.completed"

	// EventTypeStreakAtRisk is published by the reminder worker
	EventTypeStreakAtRisk = "streak.at_risk"
)

// XPAwardedPayload is the payload for progression.xp_awarded
type XPAwardedPayload struct {
	UserID    string `json:"user_id"`
	Amount    int64  `json:"amount"`
	Source    string `json:"source"`
	SourceID  string `json:"source_id,omitempty"`
	TotalXP   int64  `json:"total_xp"`
	Timestamp int64  `json:"timestamp"`
}

// LevelUpPayload is the payload for progression.level_up
type LevelUpPayload struct {
	UserID      string `json:"user_id"`
	LevelBefore int    `json:"level_before"`
	LevelAfter  int    `json:"level_after"`
	Title       string `json:"title"`
	Timestamp   int64  `json:"timestamp"`
}

// BadgeEarnedPayload is the payload for progression.badge_earned
type BadgeEarnedPayload struct {
	UserID    string `json:"user_id"`
	BadgeID   string `json:"badge_id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Timestamp int64  `json:"timestamp"`
}

// StreakExtendedPayload is the payload for progression.streak_extended
type StreakExtendedPayload struct {
	UserID        string `json:"user_id"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	Timestamp     int64  `json:"timestamp"`
}

// QuestCompletedPayload is the payload for quest.completed
type QuestCompletedPayload struct {
	UserID    string `json:"user_id"`
	QuestID   string `json:"quest_id"`
	Title     string `json:"title"`
	XPEarned  int64  `json:"xp_earned"`
	Timestamp int64  `json:"timestamp"`
}

// StreakAtRiskPayload is the payload for streak.at_risk
type StreakAtRiskPayload struct {
	UserID        string `json:"user_id"`
	CurrentStreak int    `json:"current_streak"`
	Timestamp     int64  `json:"timestamp"`
}
