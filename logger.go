package cmpnet

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/coregx/cmpnet/search"
)

// Logger wraps slog.Logger with search-specific fields.
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

// NewJSONLogger creates a Logger that writes JSON records to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that writes human-readable records to
// stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithRunID tags records with a search run ID.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithWires tags records with the wire count.
func (l *Logger) WithWires(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("wires", n),
	}
}

// LogSearch logs the outcome of a search.
func (l *Logger) LogSearch(ctx context.Context, found bool, length int, stats search.Stats, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"nodes", stats.Nodes,
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	if !found {
		l.InfoContext(ctx, "no network within budget",
			"nodes", stats.Nodes,
			"passes", stats.Passes,
			"elapsed", elapsed,
		)
		return
	}
	l.InfoContext(ctx, "network found",
		"length", length,
		"nodes", stats.Nodes,
		"entries", stats.Table.Entries,
		"hit_rate", stats.Table.HitRate(),
		"elapsed", elapsed,
	)
}

// LogProgress logs a progress sample.
func (l *Logger) LogProgress(ctx context.Context, p search.Progress) {
	l.InfoContext(ctx, "search progress",
		"fraction", p.Fraction,
		"nodes", p.Nodes,
		"entries", p.Entries,
		"depth", p.Depth,
		"ceiling", p.Ceiling,
		"path", p.Path.String(),
	)
}
