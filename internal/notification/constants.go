package notification

// List limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Limits on stored text
const (
	MaxTitleLength   = 200
	MaxMessageLength = 2000
)

// Log messages
const (
	LogMsgNotificationCreated = "Notification created"
	LogMsgNotifyFailed        = "Failed to create notification from event"
)

// Links attached to generated notifications
const (
	ActionURLProfile   = "/profile"
	ActionURLBadges    = "/profile/badges"
	ActionURLQuests    = "/quests"
	ActionURLDashboard = "/dashboard"
)
