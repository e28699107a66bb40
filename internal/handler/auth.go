package handler

import (
	"net/http"

	"github.com/rishav-026/Gamified-Coding-platform/internal/auth"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
)

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,excludesall=\x00\n\r\t "`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the body of POST /auth/login. Identifier is a username or an email.
type LoginRequest struct {
	Identifier string `json:"username" validate:"required,max=255"`
	Password   string `json:"password" validate:"required,max=128"`
}

// AuthHandler serves account registration and login
type AuthHandler struct {
	service auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// HandleRegister creates an account and returns a bearer token
// @Summary Register
// @Description Creates an account with an empty progress record and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} auth.Result
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpRegister); err != nil {
		return
	}

	result, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, OpRegister, err)
		return
	}

	logger.FromContext(r.Context()).Info("User registered", "user_id", result.User.ID, "username", result.User.Username)
	respondJSON(w, http.StatusCreated, result)
}

// HandleLogin checks credentials and returns a bearer token
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} auth.Result
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpLogin); err != nil {
		return
	}

	result, err := h.service.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		respondServiceError(w, r, OpLogin, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
