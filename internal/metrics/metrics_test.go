package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
	"github.com/rishav-026/Gamified-Coding-platform/internal/event"
)

func TestEventMetricsCollector_RecordsProgression(t *testing.T) {
	c := NewEventMetricsCollector()
	bus := event.NewMemoryBus()
	c.Register(bus)
	now := time.Now()
	ctx := context.Background()

	xpBefore := testutil.ToFloat64(XPAwarded.WithLabelValues(domain.XPSourceTutorial))
	lvlBefore := testutil.ToFloat64(LevelUps.WithLabelValues("5"))
	badgeBefore := testutil.ToFloat64(BadgesEarned.WithLabelValues("level_five"))

	assert.NoError(t, bus.Publish(ctx, event.NewXPAwardedEvent("u-1", domain.XPAward{Amount: 75, Source: domain.XPSourceTutorial}, 1075, now)))
	assert.NoError(t, bus.Publish(ctx, event.NewLevelUpEvent("u-1", 4, 5, "Apprentice", now)))
	assert.NoError(t, bus.Publish(ctx, event.NewBadgeEarnedEvent("u-1", "level_five", "Level 5 Achiever", "⭐", now)))

	assert.Equal(t, xpBefore+75, testutil.ToFloat64(XPAwarded.WithLabelValues(domain.XPSourceTutorial)))
	assert.Equal(t, lvlBefore+1, testutil.ToFloat64(LevelUps.WithLabelValues("5")))
	assert.Equal(t, badgeBefore+1, testutil.ToFloat64(BadgesEarned.WithLabelValues("level_five")))
}

func TestEventMetricsCollector_BadPayloadCountsError(t *testing.T) {
	c := NewEventMetricsCollector()
	before := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.LevelUp)))

	err := c.HandleEvent(context.Background(), event.Event{Type: event.LevelUp, Payload: func() {}})

	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.LevelUp))))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/quests/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/quests/{id}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quests/quest_1_github_explorer", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/quests/{id}", "418")))
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	var _ http.Flusher = rw
	rw.Flush()
	assert.True(t, rec.Flushed)
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheLookups.WithLabelValues("leaderboard", ResultHit))
	RecordCacheLookup("leaderboard", true)
	assert.Equal(t, hits+1, testutil.ToFloat64(CacheLookups.WithLabelValues("leaderboard", ResultHit)))
}
