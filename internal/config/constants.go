package config

import "time"

// Defaults
const (
	DefaultPort              = "8080"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultLogDir            = "logs"
	DefaultEnvironment       = "dev"
	DefaultServiceName       = "codequest"
	DefaultVersion           = "dev"
	DefaultDBName            = "codequest"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultJWTTTL            = 24 * time.Hour
	DefaultCatalogDir        = "configs"
	DefaultCORSOrigins       = "http://localhost:3000,http://localhost:5173"
	DefaultGeminiMaxTokens   = 1000
	DefaultGeminiTemperature = 0.7
	DefaultAIHistoryLimit    = 20
	DefaultLeaderboardTTL    = 30 * time.Second
	DefaultEventMaxRetries   = 5
	DefaultEventRetryDelay   = 2 * time.Second
	DefaultDeadLetterPath    = "logs/event_deadletter.jsonl"
	DefaultStreakReminderUTC = 18
)

// MinJWTSecretLength is the shortest secret accepted without a warning
const MinJWTSecretLength = 32

// Example values shipped in .env.example
const (
	ExampleDBPassword  = "change_this_secure_password"
	ExampleJWTSecret   = "generate_with_openssl_rand_hex_32"
	ExampleAdminAPIKey = "generate_with_openssl_rand_hex_32"
)
