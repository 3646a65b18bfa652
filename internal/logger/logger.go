// Package logger provides structured logging configuration and initialization.
package logger

import (
	"log/slog"

	"github.com/pdfdock/pdfdock/pkg/logging"
)

// System provides access to the configured logger instance.
type System interface {
	Logger() *slog.Logger
}

type logger struct {
	logger *slog.Logger
}

// New creates a logger system with the specified configuration.
func New(cfg *logging.Config) System {
	return &logger{
		logger: logging.New(cfg),
	}
}

// Logger returns the configured slog.Logger instance.
func (l *logger) Logger() *slog.Logger {
	return l.logger
}
