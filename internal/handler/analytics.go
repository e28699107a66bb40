package handler

import (
	"net/http"

	"github.com/rishav-026/Gamified-Coding-platform/internal/analytics"
	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// DailyProgressResponse is the user's XP series
type DailyProgressResponse struct {
	Days  int                    `json:"days"`
	Daily []domain.DailyProgress `json:"daily_progress"`
}

// AnalyticsHandler serves learning analytics for the authenticated user
type AnalyticsHandler struct {
	service analytics.Service
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(service analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// HandleGetSummary returns the aggregated learning summary
// @Summary Analytics summary
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.AnalyticsSummary
// @Router /api/v1/analytics/me [get]
func (h *AnalyticsHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpAnalyticsSummary, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// HandleGetDailyProgress returns one entry per UTC day ending today
// @Summary Daily XP
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days (1-90)" default(7)
// @Success 200 {object} DailyProgressResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/analytics/me/progress [get]
func (h *AnalyticsHandler) HandleGetDailyProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	days, ok := GetIntQueryParam(r, w, "days", analytics.DefaultDays, ErrMsgInvalidDays)
	if !ok {
		return
	}

	series, err := h.service.DailyProgress(r.Context(), userID, days)
	if err != nil {
		respondServiceError(w, r, OpAnalyticsProgress, err)
		return
	}
	respondJSON(w, http.StatusOK, DailyProgressResponse{Days: len(series), Daily: series})
}
