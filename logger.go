package symnmf

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with symnmf-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithK adds the cluster count to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a point count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithGoal adds the requested matrix goal to the logger.
func (l *Logger) WithGoal(goal Goal) *Logger {
	return &Logger{
		Logger: l.Logger.With("goal", goal.String()),
	}
}

// WithDataset adds the dataset name to the logger.
func (l *Logger) WithDataset(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("dataset", name),
	}
}

// LogLoad logs a dataset load.
func (l *Logger) LogLoad(ctx context.Context, name string, n, dim int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset load failed",
			"dataset", name,
			"kind", ErrorKind(err),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "dataset loaded",
			"dataset", name,
			"points", n,
			"dimension", dim,
		)
	}
}

// LogFactorize logs a SymNMF run.
func (l *Logger) LogFactorize(ctx context.Context, iterations int, converged bool, delta float64, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "factorization failed",
			"kind", ErrorKind(err),
			"error", err,
		)
		return
	}
	if !converged {
		l.WarnContext(ctx, "factorization hit iteration cap",
			"iterations", iterations,
			"delta", delta,
			"elapsed", elapsed,
		)
		return
	}
	l.DebugContext(ctx, "factorization converged",
		"iterations", iterations,
		"delta", delta,
		"elapsed", elapsed,
	)
}

// LogKMeans logs a K-means run.
func (l *Logger) LogKMeans(ctx context.Context, iterations int, converged bool, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "kmeans failed",
			"kind", ErrorKind(err),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "kmeans completed",
			"iterations", iterations,
			"converged", converged,
			"elapsed", elapsed,
		)
	}
}

// LogScore logs a silhouette score.
func (l *Logger) LogScore(ctx context.Context, algorithm string, score float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "silhouette failed",
			"algorithm", algorithm,
			"kind", ErrorKind(err),
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "silhouette computed",
			"algorithm", algorithm,
			"score", score,
		)
	}
}
