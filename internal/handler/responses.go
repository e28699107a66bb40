package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// headers are already sent
		slog.Error(LogMsgEncodeFailed, "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped status and message.
// Client errors are logged at warn level, everything else at error level.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err, "status", status)
	} else {
		log.Warn(op+" rejected", "error", err, "status", status)
	}
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication required. Please log in again."
	ErrMsgBadCredentialsError = "Incorrect username, email or password"
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."

	// Account messages
	ErrMsgUserNotFoundError  = "User not found"
	ErrMsgUsernameTakenError = "Username is already taken"
	ErrMsgEmailTakenError    = "Email is already registered"

	// Learning content messages
	ErrMsgQuestNotFoundError       = "Quest not found"
	ErrMsgTaskNotFoundError        = "Task not found"
	ErrMsgTutorialNotFoundError    = "Tutorial not found"
	ErrMsgBadgeNotFoundError       = "Badge not found"
	ErrMsgQuestNotStartedError     = "Start the quest before completing its tasks"
	ErrMsgQuestAlreadyStartedError = "Quest already started"
	ErrMsgTaskAlreadyDoneError     = "Task already completed"

	// Submission and notification messages
	ErrMsgSubmissionNotFoundError   = "Submission not found"
	ErrMsgSubmissionEvaluatedError  = "Submission has already been evaluated"
	ErrMsgNotificationNotFoundError = "Notification not found"

	// Collaborator messages
	ErrMsgAssistantUnavailableError = "The AI assistant is unavailable right now"
	ErrMsgGithubUnavailableError    = "GitHub tracking is unavailable right now"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and user-facing messages
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrMsgBadCredentialsError
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgAuthFailedError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, ErrMsgUsernameTakenError
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, ErrMsgEmailTakenError
	case errors.Is(err, domain.ErrQuestNotFound):
		return http.StatusNotFound, ErrMsgQuestNotFoundError
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, ErrMsgTaskNotFoundError
	case errors.Is(err, domain.ErrTutorialNotFound):
		return http.StatusNotFound, ErrMsgTutorialNotFoundError
	case errors.Is(err, domain.ErrBadgeNotFound):
		return http.StatusNotFound, ErrMsgBadgeNotFoundError
	case errors.Is(err, domain.ErrQuestNotStarted):
		return http.StatusConflict, ErrMsgQuestNotStartedError
	case errors.Is(err, domain.ErrQuestAlreadyStarted):
		return http.StatusConflict, ErrMsgQuestAlreadyStartedError
	case errors.Is(err, domain.ErrTaskAlreadyCompleted):
		return http.StatusConflict, ErrMsgTaskAlreadyDoneError
	case errors.Is(err, domain.ErrSubmissionNotFound):
		return http.StatusNotFound, ErrMsgSubmissionNotFoundError
	case errors.Is(err, domain.ErrSubmissionAlreadyEvaluated):
		return http.StatusConflict, ErrMsgSubmissionEvaluatedError
	case errors.Is(err, domain.ErrNotificationNotFound):
		return http.StatusNotFound, ErrMsgNotificationNotFoundError
	case errors.Is(err, domain.ErrAssistantUnavailable):
		return http.StatusServiceUnavailable, ErrMsgAssistantUnavailableError
	case errors.Is(err, domain.ErrContributionsUnavailable):
		return http.StatusServiceUnavailable, ErrMsgGithubUnavailableError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
