package handler

import (
	"net/http"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
	"github.com/rishav-026/Gamified-Coding-platform/internal/quest"
)

// QuestHandler serves the quest catalog and per-user quest progress
type QuestHandler struct {
	service quest.Service
}

// NewQuestHandler creates a new QuestHandler
func NewQuestHandler(service quest.Service) *QuestHandler {
	return &QuestHandler{service: service}
}

// HandleListQuests returns the quest catalog in display order
// @Summary List quests
// @Tags quests
// @Produce json
// @Success 200 {array} domain.Quest
// @Router /api/v1/quests [get]
func (h *QuestHandler) HandleListQuests(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.ListQuests(r.Context()))
}

// HandleListByCategory returns the quests of one category
// @Summary List quests by category
// @Tags quests
// @Produce json
// @Param category path string true "Category"
// @Success 200 {array} domain.Quest
// @Router /api/v1/quests/category/{category} [get]
func (h *QuestHandler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := GetPathParam(r, w, "category")
	if !ok {
		return
	}
	quests := h.service.ListByCategory(r.Context(), category)
	if quests == nil {
		quests = []domain.Quest{}
	}
	respondJSON(w, http.StatusOK, quests)
}

// HandleGetQuest returns one quest with its tasks
// @Summary Get quest
// @Tags quests
// @Produce json
// @Param id path string true "Quest id"
// @Success 200 {object} domain.Quest
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/quests/{id} [get]
func (h *QuestHandler) HandleGetQuest(w http.ResponseWriter, r *http.Request) {
	questID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	q, err := h.service.GetQuest(r.Context(), questID)
	if err != nil {
		respondServiceError(w, r, OpGetQuest, err)
		return
	}
	respondJSON(w, http.StatusOK, q)
}

// HandleGetTask returns one task
// @Summary Get task
// @Tags quests
// @Produce json
// @Param id path string true "Task id"
// @Success 200 {object} domain.Task
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/tasks/{id} [get]
func (h *QuestHandler) HandleGetTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	task, err := h.service.GetTask(r.Context(), taskID)
	if err != nil {
		respondServiceError(w, r, OpGetTask, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// HandleStartQuest starts a quest for the authenticated user
// @Summary Start quest
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quest id"
// @Success 201 {object} domain.QuestProgress
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/quests/{id}/start [post]
func (h *QuestHandler) HandleStartQuest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	questID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	progress, err := h.service.StartQuest(r.Context(), userID, questID)
	if err != nil {
		respondServiceError(w, r, OpStartQuest, err)
		return
	}

	logger.FromContext(r.Context()).Info("Quest started", "user_id", userID, "quest_id", questID)
	respondJSON(w, http.StatusCreated, progress)
}

// HandleCompleteTask completes one task of a started quest and awards its XP
// @Summary Complete task
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quest id"
// @Param taskID path string true "Task id"
// @Success 200 {object} domain.TaskCompletion
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/quests/{id}/tasks/{taskID}/complete [post]
func (h *QuestHandler) HandleCompleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	questID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	taskID, ok := GetPathParam(r, w, "taskID")
	if !ok {
		return
	}

	completion, err := h.service.CompleteTask(r.Context(), userID, questID, taskID)
	if err != nil {
		respondServiceError(w, r, OpCompleteTask, err)
		return
	}
	respondJSON(w, http.StatusOK, completion)
}

// HandleGetQuestProgress returns the user's progress on one quest
// @Summary Quest progress
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quest id"
// @Success 200 {object} domain.QuestProgress
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/quests/{id}/progress [get]
func (h *QuestHandler) HandleGetQuestProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	questID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	progress, err := h.service.GetProgress(r.Context(), userID, questID)
	if err != nil {
		respondServiceError(w, r, OpQuestProgress, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// HandleListProgress returns the user's progress on every started quest
// @Summary All quest progress
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.QuestProgress
// @Router /api/v1/quests/progress [get]
func (h *QuestHandler) HandleListProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	progress, err := h.service.ListProgress(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpQuestProgress, err)
		return
	}
	if progress == nil {
		progress = []domain.QuestProgress{}
	}
	respondJSON(w, http.StatusOK, progress)
}

// HandleGetStats summarises the user's quest activity
// @Summary Quest stats
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.QuestStats
// @Router /api/v1/quests/stats [get]
func (h *QuestHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpQuestStats, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
