package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from map metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Progression event types
const (
	XPAwarded      Type = Type(domain.EventTypeXPAwarded)
	LevelUp        Type = Type(domain.EventTypeLevelUp)
	BadgeEarned    Type = Type(domain.EventTypeBadgeEarned)
	StreakExtended Type = Type(domain.EventTypeStreakExtended)
	QuestCompleted Type = Type(domain.EventTypeQuestCompleted)
	StreakAtRisk   Type = Type(domain.EventTypeStreakAtRisk)
)

// NewXPAwardedEvent creates an xp_awarded event
func NewXPAwardedEvent(userID string, award domain.XPAward, totalXP int64, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    XPAwarded,
		Payload: domain.XPAwardedPayload{
			UserID:    userID,
			Amount:    award.Amount,
			Source:    award.Source,
			SourceID:  award.SourceID,
			TotalXP:   totalXP,
			Timestamp: at.Unix(),
		},
		Metadata: map[string]interface{}{"source": award.Source},
	}
}

// NewLevelUpEvent creates a level_up event
func NewLevelUpEvent(userID string, before, after int, title string, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: domain.LevelUpPayload{
			UserID:      userID,
			LevelBefore: before,
			LevelAfter:  after,
			Title:       title,
			Timestamp:   at.Unix(),
		},
	}
}

// NewBadgeEarnedEvent creates a badge_earned event
func NewBadgeEarnedEvent(userID, badgeID, name, icon string, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BadgeEarned,
		Payload: domain.BadgeEarnedPayload{
			UserID:    userID,
			BadgeID:   badgeID,
			Name:      name,
			Icon:      icon,
			Timestamp: at.Unix(),
		},
	}
}

// NewStreakExtendedEvent creates a streak_extended event
func NewStreakExtendedEvent(userID string, current, longest int, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StreakExtended,
		Payload: domain.StreakExtendedPayload{
			UserID:        userID,
			CurrentStreak: current,
			LongestStreak: longest,
			Timestamp:     at.Unix(),
		},
	}
}

// NewQuestCompletedEvent creates a quest.completed event
func NewQuestCompletedEvent(userID, questID, title string, xp int64, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    QuestCompleted,
		Payload: domain.QuestCompletedPayload{
			UserID:    userID,
			QuestID:   questID,
			Title:     title,
			XPEarned:  xp,
			Timestamp: at.Unix(),
		},
	}
}

// NewStreakAtRiskEvent creates a streak.at_risk event
func NewStreakAtRiskEvent(userID string, current int, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StreakAtRisk,
		Payload: domain.StreakAtRiskPayload{
			UserID:        userID,
			CurrentStreak: current,
			Timestamp:     at.Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side used by services
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
