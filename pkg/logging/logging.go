// Package logging builds the service's slog logger from configuration.
// Every subsystem logger in the service derives from the one returned by
// New, carrying a "system" or "handler" attribute.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Level names a logging severity in configuration.
type Level string

// Format names a log output encoding in configuration.
type Format string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"

	FormatText Format = "text"
	FormatJSON Format = "json"
)

var slogLevels = map[Level]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// Env names the environment variables that override logging configuration.
type Env struct {
	Level  string
	Format string
}

// Config holds the logging section of the service configuration.
type Config struct {
	Level  Level  `toml:"level"`
	Format Format `toml:"format"`
}

// Finalize fills defaults, applies environment overrides, and validates.
func (c *Config) Finalize(env *Env) error {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}

	if env != nil {
		if v := os.Getenv(env.Level); v != "" {
			c.Level = Level(v)
		}
		if v := os.Getenv(env.Format); v != "" {
			c.Format = Format(v)
		}
	}

	if _, ok := slogLevels[c.Level]; !ok {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Format)
	}
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
}

// Handler builds the slog handler for the configured level and format,
// writing to w. Unknown levels fall back to info.
func (c *Config) Handler(w io.Writer) slog.Handler {
	level, ok := slogLevels[c.Level]
	if !ok {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.Format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// New creates the root logger for the service, writing to stdout.
func New(cfg *Config) *slog.Logger {
	return slog.New(cfg.Handler(os.Stdout))
}
