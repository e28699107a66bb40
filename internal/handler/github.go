package handler

import (
	"net/http"

	"github.com/rishav-026/Gamified-Coding-platform/internal/contribution"
)

// TrackCommitsRequest is the body of POST /github/commits
type TrackCommitsRequest struct {
	Owner string `json:"owner" validate:"required,ghname"`
	Repo  string `json:"repo" validate:"required,ghname"`
	Days  int    `json:"days" validate:"omitempty,min=1,max=365"`
}

// TrackPullRequestsRequest is the body of POST /github/pull-requests
type TrackPullRequestsRequest struct {
	Owner string `json:"owner" validate:"required,ghname"`
	Repo  string `json:"repo" validate:"required,ghname"`
}

// GithubHandler serves contribution tracking
type GithubHandler struct {
	service contribution.Service
}

// NewGithubHandler creates a new GithubHandler
func NewGithubHandler(service contribution.Service) *GithubHandler {
	return &GithubHandler{service: service}
}

// HandleGetProfile returns a public GitHub profile
// @Summary GitHub profile
// @Tags github
// @Produce json
// @Security BearerAuth
// @Param username path string true "GitHub login"
// @Success 200 {object} domain.GithubProfile
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/github/profile/{username} [get]
func (h *GithubHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	username, ok := GetPathParam(r, w, "username")
	if !ok {
		return
	}

	profile, err := h.service.Profile(r.Context(), username)
	if err != nil {
		respondServiceError(w, r, OpGithubProfile, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// HandleTrackCommits credits the user's new commits to a repository
// @Summary Track commits
// @Tags github
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TrackCommitsRequest true "Repository"
// @Success 200 {object} domain.ContributionCredit
// @Failure 400 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/github/commits [post]
func (h *GithubHandler) HandleTrackCommits(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req TrackCommitsRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpTrackCommits); err != nil {
		return
	}

	credit, err := h.service.TrackCommits(r.Context(), userID, req.Owner, req.Repo, req.Days)
	if err != nil {
		respondServiceError(w, r, OpTrackCommits, err)
		return
	}
	respondJSON(w, http.StatusOK, credit)
}

// HandleTrackPullRequests credits the user's new pull requests to a repository
// @Summary Track pull requests
// @Tags github
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TrackPullRequestsRequest true "Repository"
// @Success 200 {object} domain.ContributionCredit
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/github/pull-requests [post]
func (h *GithubHandler) HandleTrackPullRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req TrackPullRequestsRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpTrackPRs); err != nil {
		return
	}

	credit, err := h.service.TrackPullRequests(r.Context(), userID, req.Owner, req.Repo)
	if err != nil {
		respondServiceError(w, r, OpTrackPRs, err)
		return
	}
	respondJSON(w, http.StatusOK, credit)
}
