package handler

// Generic HTTP error messages for client responses.
// Both handlers and tests should reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query and path parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgMissingPathParam  = "Missing %s"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidOffset     = "Invalid offset parameter"
	ErrMsgInvalidDays       = "Invalid days parameter"
	ErrMsgInvalidUnreadOnly = "Invalid unread_only parameter"

	// Admin error messages
	ErrMsgAmountMustBePositive = "amount must be positive"
	ErrMsgAmountExceedsMax     = "amount exceeds maximum (10000)"
)

// Success messages for API responses
const (
	MsgNotificationRead     = "Notification marked as read"
	MsgAllNotificationsRead = "All notifications marked as read"
	MsgHistoryCleared       = "Conversation history cleared"
)

// Log messages
const (
	LogMsgEncodeFailed = "Failed to encode JSON response"
	LogMsgWriteFailed  = "Failed to write response buffer"
	LogMsgReadyFailed  = "Readiness check failed"
)

// Operation names used in logs
const (
	OpRegister          = "Register"
	OpLogin             = "Login"
	OpGetProfile        = "Get profile"
	OpUpdateProfile     = "Update profile"
	OpGetBadges         = "Get badges"
	OpGetLevel          = "Get level"
	OpGetStreak         = "Get streak"
	OpCheckIn           = "Check in"
	OpGetBadge          = "Get badge"
	OpGetQuest          = "Get quest"
	OpGetTask           = "Get task"
	OpStartQuest        = "Start quest"
	OpCompleteTask      = "Complete task"
	OpQuestProgress     = "Get quest progress"
	OpQuestStats        = "Get quest stats"
	OpGetTutorial       = "Get tutorial"
	OpNextTutorial      = "Get next tutorial"
	OpCompleteTutorial  = "Complete tutorial"
	OpTutorialProgress  = "Get tutorial progress"
	OpCreateSubmission  = "Create submission"
	OpGetSubmission     = "Get submission"
	OpListSubmissions   = "List submissions"
	OpEvaluate          = "Evaluate submission"
	OpLeaderboard       = "Get leaderboard"
	OpUserRank          = "Get user rank"
	OpListNotifications = "List notifications"
	OpMarkRead          = "Mark notification read"
	OpMarkAllRead       = "Mark all notifications read"
	OpAIChat            = "AI chat"
	OpAIExplain         = "AI explain code"
	OpAIHint            = "AI hint"
	OpAIDebug           = "AI debug code"
	OpAILearnConcept    = "AI learn concept"
	OpAnalyticsSummary  = "Get analytics summary"
	OpAnalyticsProgress = "Get daily progress"
	OpGithubProfile     = "Get GitHub profile"
	OpTrackCommits      = "Track commits"
	OpTrackPRs          = "Track pull requests"
	OpAdminAwardXP      = "Admin award XP"
)

// Admin limits
const (
	MaxAdminXPAward = 10000
)

// Pagination defaults
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)
