package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists all environment variables that must be set
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"JWT_SECRET",
	"ADMIN_API_KEY",
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version matches expectations
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	var missing []string
	for _, envVar := range RequiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv("DB_PASSWORD") == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == ExampleJWTSecret {
		warnings = append(warnings, "JWT_SECRET appears to be using the example value - generate one with: openssl rand -hex 32")
	} else if len(secret) < MinJWTSecretLength {
		warnings = append(warnings, fmt.Sprintf("JWT_SECRET is shorter than %d characters", MinJWTSecretLength))
	}

	if os.Getenv("ADMIN_API_KEY") == ExampleAdminAPIKey {
		warnings = append(warnings, "ADMIN_API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if os.Getenv("GEMINI_API_KEY") == "" {
		warnings = append(warnings, "GEMINI_API_KEY is not set - the AI assistant will be unavailable")
	}
	if os.Getenv("GITHUB_TOKEN") == "" {
		warnings = append(warnings, "GITHUB_TOKEN is not set - GitHub requests will be heavily rate limited")
	}

	return warnings, nil
}
