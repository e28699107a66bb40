package notification

import (
	"context"
	"fmt"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
)

// EventHandler turns progression events into stored notifications
type EventHandler struct {
	service Service
}

// NewEventHandler creates a new notification event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to relevant events
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.LevelUp, h.HandleLevelUp)
	bus.Subscribe(event.BadgeEarned, h.HandleBadgeEarned)
	bus.Subscribe(event.QuestCompleted, h.HandleQuestCompleted)
	bus.Subscribe(event.StreakAtRisk, h.HandleStreakAtRisk)
}

// HandleLevelUp creates a level_up notification
func (h *EventHandler) HandleLevelUp(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.LevelUpPayload](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode level up payload: %w", err)
	}
	return h.create(ctx, p.UserID, domain.NotificationLevelUp,
		fmt.Sprintf("Level %d reached!", p.LevelAfter),
		fmt.Sprintf("You are now a level %d %s. Keep going!", p.LevelAfter, p.Title),
		ActionURLProfile)
}

// HandleBadgeEarned creates a badge notification
func (h *EventHandler) HandleBadgeEarned(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.BadgeEarnedPayload](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode badge payload: %w", err)
	}
	label := p.Name
	if p.Icon != "" {
		label = p.Icon + " " + p.Name
	}
	return h.create(ctx, p.UserID, domain.NotificationBadge,
		"New badge earned",
		fmt.Sprintf("You earned the %s badge.", label),
		ActionURLBadges)
}

// HandleQuestCompleted creates an achievement notification
func (h *EventHandler) HandleQuestCompleted(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.QuestCompletedPayload](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode quest payload: %w", err)
	}
	return h.create(ctx, p.UserID, domain.NotificationAchievement,
		"Quest completed",
		fmt.Sprintf("You completed %q and earned %d XP.", p.Title, p.XPEarned),
		ActionURLQuests)
}

// HandleStreakAtRisk creates a reminder notification
func (h *EventHandler) HandleStreakAtRisk(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.StreakAtRiskPayload](evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode streak payload: %w", err)
	}
	return h.create(ctx, p.UserID, domain.NotificationReminder,
		"Your streak is at risk",
		fmt.Sprintf("Complete a task today to keep your %d-day streak alive.", p.CurrentStreak),
		ActionURLDashboard)
}

func (h *EventHandler) create(ctx context.Context, userID, kind, title, message, actionURL string) error {
	if _, err := h.service.Create(ctx, userID, kind, title, message, actionURL); err != nil {
		logger.FromContext(ctx).Warn(LogMsgNotifyFailed, "user_id", userID, "type", kind, "error", err)
		return err
	}
	return nil
}
