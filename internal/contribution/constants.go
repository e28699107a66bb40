package contribution

import "time"

// Tracking window for commits
const (
	DefaultCommitWindowDays = 7
	MaxCommitWindowDays     = 365
)

// GitHub API paging
const (
	PageSize       = 100
	MaxPages       = 10
	RequestTimeout = 15 * time.Second
)

// Pull request listing: open and closed, newest first
const (
	PullRequestStateAll      = "all"
	PullRequestSortCreated   = "created"
	PullRequestDirectionDesc = "desc"
)

// Log messages
const (
	LogMsgCredited           = "Contributions credited"
	LogMsgNothingNew         = "No new contributions to credit"
	LogMsgXPAwardFailed      = "Contribution XP award failed; nothing credited"
	LogMsgGitHubRequestError = "GitHub request failed"
)
