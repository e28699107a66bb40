package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// User errors
	ErrMsgUserNotFound       = "user not found"
	ErrMsgUsernameTaken      = "username already taken"
	ErrMsgEmailTaken         = "email already registered"
	ErrMsgInvalidCredentials = "invalid credentials"
	ErrMsgUnauthorized       = "unauthorized"

	// Quest errors
	ErrMsgQuestNotFound          = "quest not found"
	ErrMsgTaskNotFound           = "task not found"
	ErrMsgQuestNotStarted        = "quest not started"
	ErrMsgQuestAlreadyStarted    = "quest already started"
	ErrMsgTaskAlreadyCompleted   = "task already completed"
	ErrMsgTutorialNotFound       = "tutorial not found"
	ErrMsgBadgeNotFound          = "badge not found"
	ErrMsgNotificationNotFound   = "notification not found"
	ErrMsgSubmissionNotFound     = "submission not found"
	ErrMsgSubmissionAlreadyFinal = "submission already evaluated"

	// Collaborator errors
	ErrMsgAssistantUnavailable     = "assistant unavailable"
	ErrMsgContributionsUnavailable = "contribution tracking unavailable"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrInvalidInput marks a rejected input (negative XP delta, malformed timestamp, bad score).
	// It is always surfaced to the caller and never silently corrected.
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// User errors
	ErrUserNotFound       = errors.New(ErrMsgUserNotFound)
	ErrUsernameTaken      = errors.New(ErrMsgUsernameTaken)
	ErrEmailTaken         = errors.New(ErrMsgEmailTaken)
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrUnauthorized       = errors.New(ErrMsgUnauthorized)

	// Learning content errors
	ErrQuestNotFound              = errors.New(ErrMsgQuestNotFound)
	ErrTaskNotFound               = errors.New(ErrMsgTaskNotFound)
	ErrQuestNotStarted            = errors.New(ErrMsgQuestNotStarted)
	ErrQuestAlreadyStarted        = errors.New(ErrMsgQuestAlreadyStarted)
	ErrTaskAlreadyCompleted       = errors.New(ErrMsgTaskAlreadyCompleted)
	ErrTutorialNotFound           = errors.New(ErrMsgTutorialNotFound)
	ErrBadgeNotFound              = errors.New(ErrMsgBadgeNotFound)
	ErrNotificationNotFound       = errors.New(ErrMsgNotificationNotFound)
	ErrSubmissionNotFound         = errors.New(ErrMsgSubmissionNotFound)
	ErrSubmissionAlreadyEvaluated = errors.New(ErrMsgSubmissionAlreadyFinal)

	// Collaborator errors
	ErrAssistantUnavailable     = errors.New(ErrMsgAssistantUnavailable)
	ErrContributionsUnavailable = errors.New(ErrMsgContributionsUnavailable)

	// Database errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
	ErrTxClosed      = errors.New(ErrMsgTxClosed)
)
