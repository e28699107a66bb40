package domain

// AnalyticsSummary aggregates a user's learning activity
type AnalyticsSummary struct {
	QuestsCompleted    int   `json:"total_quests"`
	TasksCompleted     int   `json:"total_tasks"`
	TutorialsCompleted int   `json:"total_tutorials"`
	SubmissionsPassed  int   `json:"submissions_passed"`
	TotalXP            int64 `json:"total_xp"`
	Level              int   `json:"level"`
	CurrentStreak      int   `json:"current_streak"`
	LongestStreak      int   `json:"longest_streak"`
	BadgeCount         int   `json:"badge_count"`
	ActiveDays         int   `json:"active_days"`
}

// DailyProgress is one day of the XP ledger (UTC)
type DailyProgress struct {
	Date   string `json:"date"`
	XP     int64  `json:"xp"`
	Events int    `json:"events"`
}
