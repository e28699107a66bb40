package main

import (
	"github.com/rishav-026/Gamified-Coding-platform/internal/config"
	"github.com/rishav-026/Gamified-Coding-platform/internal/logger"
)

// initLogger installs a stdout-only logger, used when LOG_DIR is empty
func initLogger(cfg *config.Config) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	)

	logger.InitLogger(loggerConfig)
}
