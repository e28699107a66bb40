package handler

import (
	"net/http"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/submission"
)

// CreateSubmissionRequest is the body of POST /submissions
type CreateSubmissionRequest struct {
	TaskID   string `json:"task_id" validate:"required,max=100"`
	QuestID  string `json:"quest_id" validate:"omitempty,max=100"`
	Code     string `json:"code" validate:"required,max=50000"`
	Language string `json:"language" validate:"required,max=30"`
}

// SubmissionHandler serves code submissions
type SubmissionHandler struct {
	service submission.Service
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(service submission.Service) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// HandleCreate stores a pending submission
// @Summary Submit code
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSubmissionRequest true "Submission"
// @Success 201 {object} domain.Submission
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/submissions [post]
func (h *SubmissionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateSubmissionRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpCreateSubmission); err != nil {
		return
	}

	sub, err := h.service.Create(r.Context(), userID, req.TaskID, req.QuestID, req.Code, req.Language)
	if err != nil {
		respondServiceError(w, r, OpCreateSubmission, err)
		return
	}
	respondJSON(w, http.StatusCreated, sub)
}

// HandleGet returns one of the user's submissions
// @Summary Get submission
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission id"
// @Success 200 {object} domain.Submission
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/submissions/{id} [get]
func (h *SubmissionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	submissionID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	sub, err := h.service.Get(r.Context(), userID, submissionID)
	if err != nil {
		respondServiceError(w, r, OpGetSubmission, err)
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// HandleList returns the user's submissions, newest first
// @Summary List submissions
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param task_id query string false "Filter by task"
// @Param limit query int false "Page size" default(20)
// @Success 200 {array} domain.Submission
// @Router /api/v1/submissions [get]
func (h *SubmissionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	limit, ok := GetIntQueryParam(r, w, "limit", DefaultPageLimit, ErrMsgInvalidLimit)
	if !ok {
		return
	}

	subs, err := h.service.ListForUser(r.Context(), userID, GetOptionalQueryParam(r, "task_id", ""), clampLimit(limit))
	if err != nil {
		respondServiceError(w, r, OpListSubmissions, err)
		return
	}
	if subs == nil {
		subs = []domain.Submission{}
	}
	respondJSON(w, http.StatusOK, subs)
}

// HandleEvaluate runs the checks for a pending submission and awards XP on a pass
// @Summary Evaluate submission
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission id"
// @Success 200 {object} domain.SubmissionEvaluation
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/submissions/{id}/evaluate [post]
func (h *SubmissionHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	submissionID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	eval, err := h.service.Evaluate(r.Context(), userID, submissionID)
	if err != nil {
		respondServiceError(w, r, OpEvaluate, err)
		return
	}
	respondJSON(w, http.StatusOK, eval)
}
