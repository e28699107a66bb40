package domain

import "time"

// Notification types
const (
	NotificationAchievement = "achievement"
	NotificationLevelUp     = "level_up"
	NotificationBadge       = "badge"
	NotificationReminder    = "reminder"
	NotificationSystem      = "system"
)

// Notification is a message for a single user
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ActionURL string    `json:"action_url,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
