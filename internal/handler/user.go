package handler

import (
	"net/http"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/gamification"
	"github.com/rishav-026/Gamified-Coding-platform/internal/user"
)

// UpdateProfileRequest is the body of PUT /users/me. Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	AvatarURL      *string `json:"avatar_url" validate:"omitempty,url,max=500"`
	Bio            *string `json:"bio" validate:"omitempty,max=500"`
	GithubUsername *string `json:"github_username" validate:"omitempty,ghname"`
}

// UserHandler serves the authenticated user's profile and progression
type UserHandler struct {
	users       user.Service
	progression gamification.Service
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users user.Service, progression gamification.Service) *UserHandler {
	return &UserHandler{users: users, progression: progression}
}

// HandleGetMe returns the profile with level, streak and badges
// @Summary Current profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} user.Profile
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/users/me [get]
func (h *UserHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpGetProfile, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// HandleUpdateMe updates bio, avatar and GitHub username
// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} domain.User
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/users/me [put]
func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpUpdateProfile); err != nil {
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), userID, domain.ProfileUpdate{
		AvatarURL:      req.AvatarURL,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
	})
	if err != nil {
		respondServiceError(w, r, OpUpdateProfile, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// HandleGetMyBadges lists earned badges with their definitions
// @Summary Earned badges
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} gamification.EarnedBadge
// @Router /api/v1/users/me/badges [get]
func (h *UserHandler) HandleGetMyBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	badges, err := h.progression.GetEarnedBadges(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpGetBadges, err)
		return
	}
	if badges == nil {
		badges = []gamification.EarnedBadge{}
	}
	respondJSON(w, http.StatusOK, badges)
}

// HandleGetMyLevel returns level info for the user's total XP
// @Summary Level info
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.LevelInfo
// @Router /api/v1/users/me/level [get]
func (h *UserHandler) HandleGetMyLevel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	info, err := h.progression.GetLevelInfo(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpGetLevel, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// HandleGetMyStreak returns the streak as of now
// @Summary Streak info
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.StreakInfo
// @Router /api/v1/users/me/streak [get]
func (h *UserHandler) HandleGetMyStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	streak, err := h.progression.GetStreak(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpGetStreak, err)
		return
	}
	respondJSON(w, http.StatusOK, streak)
}

// HandleCheckIn records a zero-XP activity for today. It keeps the streak
// alive on days without quest or tutorial work.
// @Summary Daily check-in
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.ProgressionResult
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/users/me/check-in [post]
func (h *UserHandler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	result, err := h.progression.RecordActivity(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpCheckIn, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
