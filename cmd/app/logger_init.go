package main

import (
	"github.com/jynba/worldline/internal/config"
	"github.com/jynba/worldline/internal/handler"
	"github.com/jynba/worldline/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		"worldline",
		handler.Version,
		cfg.Environment,
		addSource,
	)

	logger.InitLogger(loggerConfig)
}
