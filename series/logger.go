package series

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with engine-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON records to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable records to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithGeneration tags records with a configuration generation.
func (l *Logger) WithGeneration(gen uint64) *Logger {
	return &Logger{Logger: l.Logger.With("generation", gen)}
}

// LogBatch logs the outcome of one merge cycle.
func (l *Logger) LogBatch(ctx context.Context, rows, series int, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch rejected",
			"rows", rows,
			"error", err,
		)

		return
	}

	l.DebugContext(ctx, "batch merged",
		"rows", rows,
		"series", series,
	)
}

// LogReset logs a state reset.
func (l *Logger) LogReset(ctx context.Context, reason string) {
	l.InfoContext(ctx, "state reset", "reason", reason)
}
