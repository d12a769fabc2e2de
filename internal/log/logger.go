// Package log provides structured logging for FrameQL, backed by slog.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the interface FrameQL components log through.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// logger wraps slog.Logger
type logger struct {
	slog *slog.Logger
}

var defaultLogger Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	defaultLogger = &logger{slog: slog.New(handler)}
}

// SetDefault sets the default logger.
func SetDefault(l Logger) {
	defaultLogger = l
}

// Default returns the default logger.
func Default() Logger {
	return defaultLogger
}

// New creates a new logger with the given handler.
func New(handler slog.Handler) Logger {
	return &logger{slog: slog.New(handler)}
}

// NewTextLogger creates a logger writing human-readable lines to stdout.
func NewTextLogger(level slog.Level) Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return &logger{slog: slog.New(handler)}
}

// NewJSONLogger creates a logger writing JSON lines to stdout.
func NewJSONLogger(level slog.Level) Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return &logger{slog: slog.New(handler)}
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() Logger {
	return &logger{slog: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

func (l *logger) With(args ...any) Logger {
	return &logger{slog: l.slog.With(args...)}
}

// Package-level convenience functions

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
