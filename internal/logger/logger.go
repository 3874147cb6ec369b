package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger creates a zap logger with the default production configuration,
// falling back to a no-op logger when construction fails.
func NewLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// NewProductionLogger creates a zap logger configured for production use.
func NewProductionLogger() (*zap.Logger, error) {
	logger, err := zap.NewProductionConfig().Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build production logger: %w", err)
	}
	return logger, nil
}

// NewDevelopmentLogger creates a zap logger with human-readable output for
// local runs.
func NewDevelopmentLogger() (*zap.Logger, error) {
	logger, err := zap.NewDevelopmentConfig().Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build development logger: %w", err)
	}
	return logger, nil
}
