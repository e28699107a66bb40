package quest

// Log messages
const (
	LogMsgQuestStarted      = "Quest started"
	LogMsgTaskCompleted     = "Task completed"
	LogMsgQuestCompleted    = "Quest completed"
	LogMsgTaskXPAwardFailed = "Task XP award failed; completion rolled back"
)
