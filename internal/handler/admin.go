package handler

import (
	"net/http"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/leaderboard"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
	"github.com/rishav-026/Gamified-Coding-platform/internal/user"
)

// AdminAwardXPRequest is the body of POST /admin/progression/award-xp
type AdminAwardXPRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	Amount int64  `json:"amount"`
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

// CacheStatsResponse groups the read-side cache counters
type CacheStatsResponse struct {
	Profiles    user.CacheStats        `json:"profiles"`
	Leaderboard leaderboard.CacheStats `json:"leaderboard"`
}

// AdminHandler serves operator endpoints behind the API key
type AdminHandler struct {
	progression gamification.Service
	users       user.Service
	leaderboard leaderboard.Service
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(progression gamification.Service, users user.Service, lb leaderboard.Service) *AdminHandler {
	return &AdminHandler{progression: progression, users: users, leaderboard: lb}
}

// HandleAwardXP grants XP through the regular progression path
// @Summary Award XP (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body AdminAwardXPRequest true "Award"
// @Success 200 {object} domain.ProgressionResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/progression/award-xp [post]
func (h *AdminHandler) HandleAwardXP(w http.ResponseWriter, r *http.Request) {
	var req AdminAwardXPRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpAdminAwardXP); err != nil {
		return
	}

	if req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, ErrMsgAmountMustBePositive)
		return
	}
	if req.Amount > MaxAdminXPAward {
		respondError(w, http.StatusBadRequest, ErrMsgAmountExceedsMax)
		return
	}

	result, err := h.progression.AwardXP(r.Context(), req.UserID, domain.XPAward{
		Amount:   req.Amount,
		Source:   domain.XPSourceAdmin,
		SourceID: req.Reason,
	})
	if err != nil {
		respondServiceError(w, r, OpAdminAwardXP, err)
		return
	}

	logger.FromContext(r.Context()).Info("Admin XP awarded",
		"user_id", req.UserID,
		"amount", req.Amount,
		"reason", req.Reason,
		"level_after", result.LevelAfter)
	respondJSON(w, http.StatusOK, result)
}

// HandleGetCacheStats returns profile and leaderboard cache statistics
// @Summary Cache stats (admin)
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} CacheStatsResponse
// @Router /api/v1/admin/cache/stats [get]
func (h *AdminHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, CacheStatsResponse{
		Profiles:    h.users.GetCacheStats(),
		Leaderboard: h.leaderboard.CacheStats(),
	})
}
