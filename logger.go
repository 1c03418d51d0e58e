package sindexes

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with sindexes-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithComponent adds a component field to the logger.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", name),
	}
}

// LogIntersect logs a pairwise intersection.
func (l *Logger) LogIntersect(ctx context.Context, left, right uint64, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "intersect failed",
			"left_cardinality", left,
			"right_cardinality", right,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "intersect completed",
			"left_cardinality", left,
			"right_cardinality", right,
			"results", results,
		)
	}
}

// LogBatch logs a batch intersection.
func (l *Logger) LogBatch(ctx context.Context, pairs, workers int, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch intersect aborted",
			"pairs", pairs,
			"workers", workers,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "batch intersect completed",
			"pairs", pairs,
			"workers", workers,
		)
	}
}

// LogDecode logs decoding a serialized set.
func (l *Logger) LogDecode(ctx context.Context, size int, chunks int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "decode failed",
			"bytes", size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "decode completed",
			"bytes", size,
			"chunks", chunks,
		)
	}
}
