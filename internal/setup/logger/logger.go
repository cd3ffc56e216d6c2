// Package logger builds the application's zap loggers.
package logger

import (
	"fmt"

	"github.com/mindhaven/sentinel/internal/setup/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the main application logger from debug configuration.
func New(cfg *config.Debug) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.PrettyLogs {
		zapCfg = zap.NewDevelopmentConfig()
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}
