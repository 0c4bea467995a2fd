package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger interface defines the methods required for logging
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithField(key string, value any) Logger
	WithFields(fields map[string]any) Logger
}

// SlogLogger implements the Logger interface using slog
type SlogLogger struct {
	logger *slog.Logger
}

// New creates a new SlogLogger with the given level and output
func New(level slog.Level, output io.Writer) *SlogLogger {
	if output == nil {
		output = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(output, opts)

	return &SlogLogger{
		logger: slog.New(handler),
	}
}

// Default returns a new SlogLogger with default settings
func Default() *SlogLogger {
	return New(slog.LevelInfo, os.Stdout)
}

// Debug logs a debug message
func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info message
func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message
func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message
func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// WithField returns a new logger with the given field
func (l *SlogLogger) WithField(key string, value any) Logger {
	return &SlogLogger{logger: l.logger.With(key, value)}
}

// WithFields returns a new logger with the given fields
func (l *SlogLogger) WithFields(fields map[string]any) Logger {
	var attrs []any
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	return &SlogLogger{logger: l.logger.With(attrs...)}
}
