package submission

// Limits
const (
	MaxCodeBytes     = 64 * 1024
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Static check names
const (
	CheckNotEmpty          = "code is not empty"
	CheckSupportedLanguage = "language is supported"
	CheckBalancedBrackets  = "brackets are balanced"
	CheckSizeLimit         = "code is within the size limit"
)

// Check statuses
const (
	CheckPassed = "passed"
	CheckFailed = "failed"
)

// Log messages
const (
	LogMsgSubmissionCreated   = "Submission created"
	LogMsgSubmissionEvaluated = "Submission evaluated"
	LogMsgSubmissionAwardFail = "Submission XP award failed; evaluation rolled back"
)
