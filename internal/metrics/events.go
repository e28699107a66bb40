package metrics

import (
	"context"
	"strconv"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
)

// EventMetricsCollector subscribes to progression events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every event type the collector understands
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, t := range []event.Type{
		event.XPAwarded,
		event.LevelUp,
		event.BadgeEarned,
		event.StreakExtended,
		event.QuestCompleted,
		event.StreakAtRisk,
	} {
		bus.Subscribe(t, e.HandleEvent)
	}
}

// HandleEvent updates counters for one event. Decode failures are logged, not returned.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.XPAwarded:
		var p domain.XPAwardedPayload
		if p, err = event.DecodePayload[domain.XPAwardedPayload](evt.Payload); err == nil {
			XPAwarded.WithLabelValues(p.Source).Add(float64(p.Amount))
		}
	case event.LevelUp:
		var p domain.LevelUpPayload
		if p, err = event.DecodePayload[domain.LevelUpPayload](evt.Payload); err == nil {
			LevelUps.WithLabelValues(strconv.Itoa(p.LevelAfter)).Inc()
		}
	case event.BadgeEarned:
		var p domain.BadgeEarnedPayload
		if p, err = event.DecodePayload[domain.BadgeEarnedPayload](evt.Payload); err == nil {
			BadgesEarned.WithLabelValues(p.BadgeID).Inc()
		}
	case event.StreakExtended:
		StreaksExtended.Inc()
	case event.QuestCompleted:
		var p domain.QuestCompletedPayload
		if p, err = event.DecodePayload[domain.QuestCompletedPayload](evt.Payload); err == nil {
			QuestsCompleted.WithLabelValues(p.QuestID).Inc()
		}
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		logger.FromContext(ctx).Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
	}
	return nil
}
