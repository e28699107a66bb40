package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	JWTSecret   string
	JWTTTL      time.Duration
	AdminAPIKey string // X-API-Key for admin routes
	CORSOrigins []string

	CatalogDir string

	GeminiAPIKey      string
	GeminiModel       string
	GeminiMaxTokens   int
	GeminiTemperature float64
	AIHistoryLimit    int

	GithubToken string

	DiscordBotToken          string
	DiscordAnnounceChannelID string

	LeaderboardCacheTTL time.Duration

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	StreakReminderHourUTC int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTTTL:      getEnvAsDuration("JWT_TTL", DefaultJWTTTL),
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", DefaultCORSOrigins),

		CatalogDir: getEnv("CATALOG_DIR", DefaultCatalogDir),

		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", ""),
		GeminiMaxTokens:   getEnvAsInt("GEMINI_MAX_TOKENS", DefaultGeminiMaxTokens),
		GeminiTemperature: getEnvAsFloat("GEMINI_TEMPERATURE", DefaultGeminiTemperature),
		AIHistoryLimit:    getEnvAsInt("AI_HISTORY_LIMIT", DefaultAIHistoryLimit),

		GithubToken: getEnv("GITHUB_TOKEN", ""),

		DiscordBotToken:          getEnv("DISCORD_BOT_TOKEN", ""),
		DiscordAnnounceChannelID: getEnv("DISCORD_ANNOUNCE_CHANNEL_ID", ""),

		LeaderboardCacheTTL: getEnvAsDuration("LEADERBOARD_CACHE_TTL", DefaultLeaderboardTTL),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultDeadLetterPath),

		StreakReminderHourUTC: getEnvAsInt("STREAK_REMINDER_HOUR_UTC", DefaultStreakReminderUTC),
	}

	port, err := strconv.Atoi(getEnv("PORT", DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.StreakReminderHourUTC < 0 || cfg.StreakReminderHourUTC > 23 {
		return nil, fmt.Errorf("STREAK_REMINDER_HOUR_UTC must be 0-23, got %d", cfg.StreakReminderHourUTC)
	}

	// Secrets have no usable default
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set for security")
	}
	if cfg.AdminAPIKey == "" {
		return nil, fmt.Errorf("ADMIN_API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping empty entries
func getEnvAsList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsProduction reports whether the service runs in a production environment
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Environment) {
	case "prod", "production":
		return true
	}
	return false
}
