package handler

import (
	"net/http"

	"github.com/rishav-026/Gamified-Coding-platform/internal/assistant"
)

// ChatRequest is the body of POST /ai/chat
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
	Context string `json:"context" validate:"omitempty,max=4000"`
}

// ExplainCodeRequest is the body of POST /ai/explain-code
type ExplainCodeRequest struct {
	Code     string `json:"code" validate:"required,max=20000"`
	Language string `json:"language" validate:"omitempty,max=30"`
}

// HintRequest is the body of POST /ai/hint
type HintRequest struct {
	Title       string `json:"challenge_title" validate:"required,max=200"`
	Description string `json:"challenge_description" validate:"required,max=4000"`
	Difficulty  string `json:"difficulty" validate:"difficulty"`
}

// DebugCodeRequest is the body of POST /ai/debug-code
type DebugCodeRequest struct {
	Code         string `json:"code" validate:"required,max=20000"`
	ErrorMessage string `json:"error_message" validate:"required,max=4000"`
	Language     string `json:"language" validate:"omitempty,max=30"`
}

// LearnConceptRequest is the body of POST /ai/learn-concept
type LearnConceptRequest struct {
	Concept string `json:"concept" validate:"required,max=200"`
	Level   string `json:"level" validate:"difficulty"`
}

// AssistantHandler proxies learner questions to the AI assistant
type AssistantHandler struct {
	service assistant.Service
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(service assistant.Service) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// HandleChat continues the user's conversation
// @Summary Chat with the assistant
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChatRequest true "Message"
// @Success 200 {object} domain.ChatReply
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/ai/chat [post]
func (h *AssistantHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req ChatRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpAIChat); err != nil {
		return
	}

	reply, err := h.service.Chat(r.Context(), userID, req.Message, req.Context)
	if err != nil {
		respondServiceError(w, r, OpAIChat, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

// HandleExplainCode explains a code snippet
// @Summary Explain code
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExplainCodeRequest true "Code"
// @Success 200 {object} domain.ChatReply
// @Router /api/v1/ai/explain-code [post]
func (h *AssistantHandler) HandleExplainCode(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	var req ExplainCodeRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpAIExplain); err != nil {
		return
	}

	reply, err := h.service.ExplainCode(r.Context(), req.Code, req.Language)
	if err != nil {
		respondServiceError(w, r, OpAIExplain, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

// HandleHint gives a hint for a challenge without revealing the solution
// @Summary Challenge hint
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body HintRequest true "Challenge"
// @Success 200 {object} domain.ChatReply
// @Router /api/v1/ai/hint [post]
func (h *AssistantHandler) HandleHint(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	var req HintRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpAIHint); err != nil {
		return
	}

	reply, err := h.service.Hint(r.Context(), req.Title, req.Description, req.Difficulty)
	if err != nil {
		respondServiceError(w, r, OpAIHint, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

// HandleDebugCode helps find the cause of an error
// @Summary Debug code
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DebugCodeRequest true "Code and error"
// @Success 200 {object} domain.ChatReply
// @Router /api/v1/ai/debug-code [post]
func (h *AssistantHandler) HandleDebugCode(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	var req DebugCodeRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpAIDebug); err != nil {
		return
	}

	reply, err := h.service.Debug(r.Context(), req.Code, req.ErrorMessage, req.Language)
	if err != nil {
		respondServiceError(w, r, OpAIDebug, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

// HandleLearnConcept explains a programming concept at the requested level
// @Summary Learn a concept
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LearnConceptRequest true "Concept"
// @Success 200 {object} domain.ChatReply
// @Router /api/v1/ai/learn-concept [post]
func (h *AssistantHandler) HandleLearnConcept(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	var req LearnConceptRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpAILearnConcept); err != nil {
		return
	}

	reply, err := h.service.LearnConcept(r.Context(), req.Concept, req.Level)
	if err != nil {
		respondServiceError(w, r, OpAILearnConcept, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

// HandleClearHistory drops the user's conversation
// @Summary Clear chat history
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Router /api/v1/ai/clear-history [post]
func (h *AssistantHandler) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	h.service.ClearHistory(r.Context(), userID)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgHistoryCleared})
}
