package handler

import (
	"net/http"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/leaderboard"
)

// LeaderboardResponse is a page of the XP ranking
type LeaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
	Limit   int                       `json:"limit"`
	Offset  int                       `json:"offset"`
}

// LeaderboardHandler serves the XP leaderboard
type LeaderboardHandler struct {
	service leaderboard.Service
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(service leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// HandleGetLeaderboard returns a page of the ranking ordered by total XP
// @Summary Leaderboard
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} LeaderboardResponse
// @Router /api/v1/leaderboard [get]
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := GetIntQueryParam(r, w, "limit", DefaultPageLimit, ErrMsgInvalidLimit)
	if !ok {
		return
	}
	offset, ok := GetIntQueryParam(r, w, "offset", 0, ErrMsgInvalidOffset)
	if !ok {
		return
	}
	if offset < 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidOffset)
		return
	}
	limit = clampLimit(limit)

	entries, err := h.service.Top(r.Context(), limit, offset)
	if err != nil {
		respondServiceError(w, r, OpLeaderboard, err)
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	respondJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries, Limit: limit, Offset: offset})
}

// HandleGetUserRank returns one user's rank
// @Summary User rank
// @Tags leaderboard
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} domain.UserRank
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/leaderboard/user/{id} [get]
func (h *LeaderboardHandler) HandleGetUserRank(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	rank, err := h.service.UserRank(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpUserRank, err)
		return
	}
	respondJSON(w, http.StatusOK, rank)
}
