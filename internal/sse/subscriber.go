package sse

import (
	"context"
	"log/slog"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
)

// Subscriber bridges progression events on the internal bus to the SSE hub
type Subscriber struct {
	hub *Hub
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{hub: hub}
}

// Register subscribes to every event that is streamed to its user
func (s *Subscriber) Register(bus event.Bus) {
	bus.Subscribe(event.XPAwarded, s.handle)
	bus.Subscribe(event.LevelUp, s.handle)
	bus.Subscribe(event.BadgeEarned, s.handle)
	bus.Subscribe(event.StreakExtended, s.handle)
	bus.Subscribe(event.QuestCompleted, s.handle)
}

func (s *Subscriber) handle(_ context.Context, evt event.Event) error {
	userID, payload, ok := decode(evt)
	if !ok {
		slog.Warn(LogMsgBadPayload, "event_type", evt.Type)
		return nil
	}

	s.hub.Send(userID, string(evt.Type), payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "user_id", userID)
	return nil
}

func decode(evt event.Event) (string, interface{}, bool) {
	switch evt.Type {
	case event.XPAwarded:
		p, err := event.DecodePayload[domain.XPAwardedPayload](evt.Payload)
		return p.UserID, p, err == nil
	case event.LevelUp:
		p, err := event.DecodePayload[domain.LevelUpPayload](evt.Payload)
		return p.UserID, p, err == nil
	case event.BadgeEarned:
		p, err := event.DecodePayload[domain.BadgeEarnedPayload](evt.Payload)
		return p.UserID, p, err == nil
	case event.StreakExtended:
		p, err := event.DecodePayload[domain.StreakExtendedPayload](evt.Payload)
		return p.UserID, p, err == nil
	case event.QuestCompleted:
		p, err := event.DecodePayload[domain.QuestCompletedPayload](evt.Payload)
		return p.UserID, p, err == nil
	}
	return "", nil, false
}
