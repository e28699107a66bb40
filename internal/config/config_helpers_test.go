package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  int
	}{
		{"unset uses default", nil, 42},
		{"valid", strPtr("100"), 100},
		{"negative", strPtr("-10"), -10},
		{"zero", strPtr("0"), 0},
		{"not a number", strPtr("twenty"), 42},
		{"float", strPtr("42.5"), 42},
		{"empty", strPtr(""), 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setOrUnset(t, "TEST_INT_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  time.Duration
	}{
		{"unset uses default", nil, 5 * time.Minute},
		{"minutes", strPtr("10m"), 10 * time.Minute},
		{"seconds", strPtr("30s"), 30 * time.Second},
		{"hours", strPtr("2h"), 2 * time.Hour},
		{"milliseconds", strPtr("500ms"), 500 * time.Millisecond},
		{"bare number", strPtr("30"), 5 * time.Minute},
		{"garbage", strPtr("soon"), 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setOrUnset(t, "TEST_DURATION_VAR", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION_VAR", 5*time.Minute))
		})
	}
}

func strPtr(s string) *string { return &s }

// setOrUnset sets key for the test, or removes it when value is nil
func setOrUnset(t *testing.T, key string, value *string) {
	t.Helper()
	if value == nil {
		t.Setenv(key, "")
		os.Unsetenv(key)
		return
	}
	t.Setenv(key, *value)
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT_VAR", "0.25")
	assert.Equal(t, 0.25, getEnvAsFloat("TEST_FLOAT_VAR", 0.7))

	t.Setenv("TEST_FLOAT_VAR", "warm")
	assert.Equal(t, 0.7, getEnvAsFloat("TEST_FLOAT_VAR", 0.7))
}

func TestGetEnvAsList(t *testing.T) {
	t.Run("uses default when unset", func(t *testing.T) {
		setOrUnset(t, "TEST_LIST_VAR", nil)
		assert.Equal(t, []string{"a", "b"}, getEnvAsList("TEST_LIST_VAR", "a,b"))
	})

	t.Run("trims and drops empty entries", func(t *testing.T) {
		t.Setenv("TEST_LIST_VAR", " https://a.dev , ,https://b.dev,")
		assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, getEnvAsList("TEST_LIST_VAR", "x"))
	})

	t.Run("empty value yields nil", func(t *testing.T) {
		t.Setenv("TEST_LIST_VAR", "")
		assert.Nil(t, getEnvAsList("TEST_LIST_VAR", "x"))
	})
}

func TestLoad_DatabasePoolConfig(t *testing.T) {
	t.Run("loads default database pool configuration", func(t *testing.T) {
		clearEnvVars(t)
		setSecrets(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns, "Should use default max connections")
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime, "Should use default idle time")
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime, "Should use default lifetime")
	})

	t.Run("loads custom database pool configuration", func(t *testing.T) {
		clearEnvVars(t)
		setSecrets(t)
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "10m")
		t.Setenv("DB_MAX_CONN_LIFETIME", "1h")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 50, cfg.DBMaxConns, "Should use custom max connections")
		assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime, "Should use custom idle time")
		assert.Equal(t, 1*time.Hour, cfg.DBMaxConnLifetime, "Should use custom lifetime")
	})

	t.Run("uses defaults for invalid pool config values", func(t *testing.T) {
		clearEnvVars(t)
		setSecrets(t)
		t.Setenv("DB_MAX_CONNS", "not-a-number")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "invalid")
		t.Setenv("DB_MAX_CONN_LIFETIME", "bad-duration")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns, "Should fallback to default for invalid max conns")
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime, "Should fallback to default for invalid idle time")
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime, "Should fallback to default for invalid lifetime")
	})

	t.Run("production-like pool configuration", func(t *testing.T) {
		clearEnvVars(t)
		setSecrets(t)
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("DB_MAX_CONNS", "100")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "15m")
		t.Setenv("DB_MAX_CONN_LIFETIME", "2h")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 100, cfg.DBMaxConns, "Production should support more connections")
		assert.Equal(t, 15*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 2*time.Hour, cfg.DBMaxConnLifetime)
	})
}
