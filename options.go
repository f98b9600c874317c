package symnmf

import (
	"log/slog"

	"github.com/hupe1980/symnmf/kmeans"
	"github.com/hupe1980/symnmf/nmf"
	"github.com/hupe1980/symnmf/resource"
)

type options struct {
	engine           Engine
	logger           *Logger
	metricsCollector MetricsCollector
	nmfConfig        nmf.Config
	kmeansConfig     kmeans.Config
	rc               *resource.Controller
	concurrent       bool
	workers          int
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		nmfConfig:        nmf.DefaultConfig(),
		kmeansConfig:     kmeans.DefaultConfig(),
		workers:          1,
	}
}

// Option configures an Analyzer.
type Option func(*options)

// WithEngine replaces the SymNMF engine, e.g. with a test double.
// If nil is passed, NativeEngine is used.
func WithEngine(e Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := symnmf.NewJSONLogger(slog.LevelInfo)
//	a := symnmf.New(symnmf.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &symnmf.BasicMetricsCollector{}
//	a := symnmf.New(symnmf.WithMetricsCollector(metrics))
//	// ... run comparisons ...
//	stats := metrics.GetStats()
//	fmt.Printf("runs: %d, avg iterations: %d\n", stats.FactorizeCount, stats.FactorizeAvgIters)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithNMFConfig sets the factorization parameters.
func WithNMFConfig(cfg nmf.Config) Option {
	return func(o *options) {
		o.nmfConfig = cfg
	}
}

// WithKMeansConfig sets the K-means parameters used by Compare.
// Its Workers field is overridden by WithWorkers when that is set.
func WithKMeansConfig(cfg kmeans.Config) Option {
	return func(o *options) {
		o.kmeansConfig = cfg
	}
}

// WithResourceController charges matrix memory and pipeline slots to rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithConcurrentPipelines runs the SymNMF and K-means pipelines of Compare
// in parallel. Results are identical to the sequential run.
func WithConcurrentPipelines(enabled bool) Option {
	return func(o *options) {
		o.concurrent = enabled
	}
}

// WithWorkers sets the goroutine budget for similarity rows and K-means
// assignment passes. Values <= 1 compute sequentially.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
