package handler

import (
	"net/http"

	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
)

// ProgressionHandler serves the static level table and badge catalog
type ProgressionHandler struct {
	progression gamification.Service
}

// NewProgressionHandler creates a new ProgressionHandler
func NewProgressionHandler(progression gamification.Service) *ProgressionHandler {
	return &ProgressionHandler{progression: progression}
}

// HandleGetLevels returns the level table
// @Summary Level table
// @Tags progression
// @Produce json
// @Success 200 {array} domain.LevelThreshold
// @Router /api/v1/levels [get]
func (h *ProgressionHandler) HandleGetLevels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.progression.LevelTable())
}

// HandleGetBadges returns every badge definition
// @Summary Badge catalog
// @Tags progression
// @Produce json
// @Success 200 {array} gamification.BadgeRule
// @Router /api/v1/badges [get]
func (h *ProgressionHandler) HandleGetBadges(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.progression.BadgeCatalog())
}

// HandleGetBadge returns one badge definition
// @Summary Badge
// @Tags progression
// @Produce json
// @Param id path string true "Badge id"
// @Success 200 {object} gamification.BadgeRule
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/badges/{id} [get]
func (h *ProgressionHandler) HandleGetBadge(w http.ResponseWriter, r *http.Request) {
	badgeID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	badge, err := h.progression.GetBadge(badgeID)
	if err != nil {
		respondServiceError(w, r, OpGetBadge, err)
		return
	}
	respondJSON(w, http.StatusOK, badge)
}
