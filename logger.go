package inplace

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with inplace-specific context.
// Vectors log only failed operations; successful calls stay silent.
type Logger struct {
	*slog.Logger
}

var noopLogger = NoopLogger()

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithCapacity adds a capacity field to the logger.
func (l *Logger) WithCapacity(capacity int) *Logger {
	return &Logger{
		Logger: l.Logger.With("capacity", capacity),
	}
}

// LogCapacityExceeded logs an operation rejected for lack of free slots.
func (l *Logger) LogCapacityExceeded(ctx context.Context, op string, size, requested int) {
	l.WarnContext(ctx, "capacity exceeded",
		"op", op,
		"size", size,
		"requested", requested,
	)
}

// LogElementFailure logs an operation aborted by a failing element copy,
// move or constructor.
func (l *Logger) LogElementFailure(ctx context.Context, op string, size int, err error) {
	l.ErrorContext(ctx, "element operation failed",
		"op", op,
		"size", size,
		"error", err,
	)
}

// LogTeardown logs a vector that was emptied because its parked elements
// could not be moved back.
func (l *Logger) LogTeardown(ctx context.Context, op string, destroyed int, err error) {
	l.ErrorContext(ctx, "vector torn down",
		"op", op,
		"destroyed", destroyed,
		"error", err,
	)
}
