package handler

import (
	"net/http"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/tutorial"
)

// CompleteTutorialRequest carries the quiz score in percent
type CompleteTutorialRequest struct {
	QuizScore *float64 `json:"quiz_score" validate:"required,gte=0,lte=100"`
}

// TutorialHandler serves tutorials and quiz completion
type TutorialHandler struct {
	service tutorial.Service
}

// NewTutorialHandler creates a new TutorialHandler
func NewTutorialHandler(service tutorial.Service) *TutorialHandler {
	return &TutorialHandler{service: service}
}

// HandleListTutorials returns every tutorial in display order
// @Summary List tutorials
// @Tags tutorials
// @Produce json
// @Success 200 {array} domain.Tutorial
// @Router /api/v1/tutorials [get]
func (h *TutorialHandler) HandleListTutorials(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.List(r.Context()))
}

// HandleGetTutorial returns one tutorial with its quiz
// @Summary Get tutorial
// @Tags tutorials
// @Produce json
// @Param id path string true "Tutorial id"
// @Success 200 {object} domain.Tutorial
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tutorials/{id} [get]
func (h *TutorialHandler) HandleGetTutorial(w http.ResponseWriter, r *http.Request) {
	tutorialID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	t, err := h.service.Get(r.Context(), tutorialID)
	if err != nil {
		respondServiceError(w, r, OpGetTutorial, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// HandleGetNextTutorial returns the tutorial that follows id in display order.
// After the last tutorial it answers 204.
// @Summary Next tutorial
// @Tags tutorials
// @Produce json
// @Param id path string true "Tutorial id"
// @Success 200 {object} domain.Tutorial
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tutorials/{id}/next [get]
func (h *TutorialHandler) HandleGetNextTutorial(w http.ResponseWriter, r *http.Request) {
	tutorialID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	next, err := h.service.Next(r.Context(), tutorialID)
	if err != nil {
		respondServiceError(w, r, OpNextTutorial, err)
		return
	}
	if next == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, next)
}

// HandleCompleteTutorial records a quiz attempt and awards XP on the first pass
// @Summary Complete tutorial
// @Tags tutorials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tutorial id"
// @Param request body CompleteTutorialRequest true "Quiz score"
// @Success 200 {object} domain.TutorialCompletion
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tutorials/{id}/complete [post]
func (h *TutorialHandler) HandleCompleteTutorial(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	tutorialID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	var req CompleteTutorialRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpCompleteTutorial); err != nil {
		return
	}

	completion, err := h.service.Complete(r.Context(), userID, tutorialID, *req.QuizScore)
	if err != nil {
		respondServiceError(w, r, OpCompleteTutorial, err)
		return
	}
	respondJSON(w, http.StatusOK, completion)
}

// HandleGetProgress returns the user's best attempt per tutorial
// @Summary Tutorial progress
// @Tags tutorials
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.TutorialProgress
// @Router /api/v1/tutorials/progress [get]
func (h *TutorialHandler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	progress, err := h.service.Progress(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpTutorialProgress, err)
		return
	}
	if progress == nil {
		progress = []domain.TutorialProgress{}
	}
	respondJSON(w, http.StatusOK, progress)
}
