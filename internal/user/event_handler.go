package user

import (
	"context"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
)

// EventHandler drops cached profiles when progression changes
type EventHandler struct {
	service Service
}

// NewEventHandler creates a new user event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to progression events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.XPAwarded, h.HandleProgression)
	bus.Subscribe(event.StreakExtended, h.HandleProgression)
	bus.Subscribe(event.BadgeEarned, h.HandleProgression)
}

// HandleProgression invalidates the profile of the event's user
func (h *EventHandler) HandleProgression(_ context.Context, evt event.Event) error {
	if id := userIDOf(evt); id != "" {
		h.service.InvalidateProfile(id)
	}
	return nil
}

func userIDOf(evt event.Event) string {
	switch evt.Type {
	case event.XPAwarded:
		if p, err := event.DecodePayload[domain.XPAwardedPayload](evt.Payload); err == nil {
			return p.UserID
		}
	case event.StreakExtended:
		if p, err := event.DecodePayload[domain.StreakExtendedPayload](evt.Payload); err == nil {
			return p.UserID
		}
	case event.BadgeEarned:
		if p, err := event.DecodePayload[domain.BadgeEarnedPayload](evt.Payload); err == nil {
			return p.UserID
		}
	}
	return ""
}
