package handler

import (
	"net/http"
	"strconv"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/notification"
)

// NotificationListResponse is the user's notification feed
type NotificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

// MarkAllReadResponse reports how many notifications changed state
type MarkAllReadResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}

// NotificationHandler serves the notification feed
type NotificationHandler struct {
	service notification.Service
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service notification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// HandleList returns the newest notifications and the unread count
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread_only query bool false "Only unread"
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} NotificationListResponse
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	limit, ok := GetIntQueryParam(r, w, "limit", DefaultPageLimit, ErrMsgInvalidLimit)
	if !ok {
		return
	}
	unreadOnly, err := strconv.ParseBool(GetOptionalQueryParam(r, "unread_only", "false"))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidUnreadOnly)
		return
	}

	items, err := h.service.List(r.Context(), userID, unreadOnly, clampLimit(limit))
	if err != nil {
		respondServiceError(w, r, OpListNotifications, err)
		return
	}
	unread, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpListNotifications, err)
		return
	}
	if items == nil {
		items = []domain.Notification{}
	}
	respondJSON(w, http.StatusOK, NotificationListResponse{Notifications: items, UnreadCount: unread})
}

// HandleMarkRead marks one notification as read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/notifications/{id}/read [put]
func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	notificationID, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}

	if err := h.service.MarkRead(r.Context(), userID, notificationID); err != nil {
		respondServiceError(w, r, OpMarkRead, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNotificationRead})
}

// HandleMarkAllRead marks every unread notification as read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MarkAllReadResponse
// @Router /api/v1/notifications/read-all [post]
func (h *NotificationHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	updated, err := h.service.MarkAllRead(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpMarkAllRead, err)
		return
	}
	respondJSON(w, http.StatusOK, MarkAllReadResponse{Message: MsgAllNotificationsRead, Updated: updated})
}
