// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/college-order-service/config"
	"github.com/guttosm/college-order-service/internal/logger"
	"github.com/guttosm/college-order-service/internal/middleware"
	"github.com/guttosm/college-order-service/internal/service"
)

// InitializeLogger initializes the JSON console logger.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}

// InitializeRequestLogStore starts the buffered writer that persists
// request logs. It returns the matching stop func; with no logging
// service it does nothing.
func InitializeRequestLogStore(ls service.LoggingService) func() {
	if ls == nil {
		return func() {}
	}
	middleware.InitAsyncLogger(ls, middleware.DefaultAsyncLoggerConfig())
	return middleware.StopAsyncLogger
}
