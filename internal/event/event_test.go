package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got []Event

	bus.Subscribe(LevelUp, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, bus.Publish(context.Background(), NewLevelUpEvent("u-1", 4, 5, "Apprentice", at)))
	require.NoError(t, bus.Publish(context.Background(), NewBadgeEarnedEvent("u-1", "level_five", "Level 5 Achiever", "⭐", at)))

	require.Len(t, got, 1)
	payload, err := DecodePayload[domain.LevelUpPayload](got[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, domain.LevelUpPayload{UserID: "u-1", LevelBefore: 4, LevelAfter: 5, Title: "Apprentice", Timestamp: at.Unix()}, payload)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(context.Context, Event) error {
		count++
		return nil
	}

	bus.Subscribe(XPAwarded, handler)
	bus.Subscribe(XPAwarded, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: XPAwarded}))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishJoinsHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	called := 0
	bus.Subscribe(StreakExtended, func(context.Context, Event) error { return errors.New("boom") })
	bus.Subscribe(StreakExtended, func(context.Context, Event) error {
		called++
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: StreakExtended})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encountered 1 errors")
	assert.Equal(t, 1, called, "later handlers still run")
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	raw := map[string]interface{}{"user_id": "u-2", "badge_id": "first_quest", "name": "Quest Starter", "icon": "🎯", "timestamp": float64(10)}

	payload, err := DecodePayload[domain.BadgeEarnedPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, "first_quest", payload.BadgeID)
	assert.Equal(t, int64(10), payload.Timestamp)
}

func TestEvent_GetMetadataValue(t *testing.T) {
	e := NewXPAwardedEvent("u-1", domain.XPAward{Amount: 50, Source: domain.XPSourceTask}, 50, time.Now())
	assert.Equal(t, domain.XPSourceTask, e.GetMetadataValue("source"))
	assert.Nil(t, e.GetMetadataValue("missing"))
	assert.Nil(t, Event{}.GetMetadataValue("source"))
}
