package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	for _, envVar := range RequiredEnvVars {
		t.Setenv(envVar, "test_value")
	}
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION mismatch")
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_API_KEY", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required environment variables")
	assert.Contains(t, err.Error(), "JWT_SECRET, ADMIN_API_KEY")
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PASSWORD", ExampleDBPassword)
	t.Setenv("JWT_SECRET", ExampleJWTSecret)
	t.Setenv("ADMIN_API_KEY", ExampleAdminAPIKey)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GITHUB_TOKEN", "token")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err, "Should not error even with warnings")
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "DB_PASSWORD")
	assert.Contains(t, warnings[1], "JWT_SECRET")
	assert.Contains(t, warnings[2], "ADMIN_API_KEY")
}

func TestValidateEnvWithWarnings_OptionalIntegrations(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", strings.Repeat("s", MinJWTSecretLength))
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GITHUB_TOKEN", "")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "GEMINI_API_KEY")
	assert.Contains(t, warnings[1], "GITHUB_TOKEN")
}

func TestValidateEnvWithWarnings_ShortSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GITHUB_TOKEN", "token")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "shorter than")
}
