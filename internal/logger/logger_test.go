package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogging(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLoggerWithWriter(NewConfig("info", "json", "test-service", "1.0.0", "test", false), &buf)

	Info("test message", "key", "value", "number", 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, float64(42), entry["number"])
}

func TestLevelFiltering(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLoggerWithWriter(NewConfig("warn", "text", "svc", "dev", "test", false), &buf)

	Info("hidden")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFromContext_AddsRequestAndUser(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLoggerWithWriter(NewConfig("info", "json", "svc", "dev", "test", false), &buf)

	ctx := WithUserID(WithRequestID(context.Background(), "req-123"), "user-9")
	FromContext(ctx).Info("scoped")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry[AttrKeyRequestID])
	assert.Equal(t, "user-9", entry[AttrKeyUserID])
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestConfigPresets(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantJSON  bool
		wantLevel slog.Level
	}{
		{"production", ProductionConfig(), true, slog.LevelInfo},
		{"development", DevelopmentConfig(), false, slog.LevelDebug},
		{"default", DefaultConfig(), false, slog.LevelInfo},
		{"unknown level falls back to info", NewConfig("loud", "TEXT", "s", "v", "e", false), false, slog.LevelInfo},
		{"warning alias", NewConfig("WARNING", "JSON", "s", "v", "e", false), true, slog.LevelWarn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantJSON, tt.cfg.IsJSON())
			assert.Equal(t, tt.wantLevel, tt.cfg.LogLevel())
			assert.NotEmpty(t, tt.cfg.ServiceName)
		})
	}
}
