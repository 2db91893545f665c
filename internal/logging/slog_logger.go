// Package logging provides concrete implementations of the briza.Logger interface.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// SlogLogger writes structured events to stderr through log/slog.
// Safe for concurrent use by multiple goroutines.
type SlogLogger struct {
	logger *slog.Logger
}

// NewConsoleLogger creates a SlogLogger writing to stderr. format selects
// "json" or "text" output; level is one of debug, info, warn, error
// (case-insensitive, defaults to info).
func NewConsoleLogger(level, format string) *SlogLogger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return &SlogLogger{logger: slog.New(handler)}
}

// Info logs informational events about normal operations.
func (l *SlogLogger) Info(event string, fields ...any) {
	l.logger.Info(event, fields...)
}

// Warn logs recoverable anomalies.
func (l *SlogLogger) Warn(event string, fields ...any) {
	l.logger.Warn(event, fields...)
}

// Error logs failures.
func (l *SlogLogger) Error(event string, fields ...any) {
	l.logger.Error(event, fields...)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
