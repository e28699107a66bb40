package leaderboard

import (
	"context"

	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
)

// EventHandler keeps the leaderboard cache in step with XP changes
type EventHandler struct {
	service Service
}

// NewEventHandler creates a new leaderboard event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to XP events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.XPAwarded, h.HandleXPAwarded)
}

// HandleXPAwarded drops the cached pages. It fires for streak-only events too,
// since entries carry the current streak and badge count.
func (h *EventHandler) HandleXPAwarded(ctx context.Context, _ event.Event) error {
	h.service.Invalidate()
	logger.FromContext(ctx).Debug(LogMsgCacheInvalidated)
	return nil
}
