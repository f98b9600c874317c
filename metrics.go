package symnmf

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/hupe1980/symnmf/report"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see
// PrometheusCollector for a ready-made Prometheus integration.
type MetricsCollector interface {
	// RecordLoad is called after a dataset is loaded.
	// n is the number of points read, err is nil if successful.
	RecordLoad(n int, duration time.Duration, err error)

	// RecordFactorize is called after each SymNMF run.
	RecordFactorize(iterations int, duration time.Duration, err error)

	// RecordKMeans is called after each K-means run.
	RecordKMeans(iterations int, duration time.Duration, err error)

	// RecordScore is called after each silhouette evaluation.
	// algorithm is report.AlgorithmNMF or report.AlgorithmKMeans.
	RecordScore(algorithm string, score float64, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordFactorize(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordKMeans(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordScore(string, float64, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount           atomic.Int64
	LoadErrors          atomic.Int64
	PointsLoaded        atomic.Int64
	FactorizeCount      atomic.Int64
	FactorizeErrors     atomic.Int64
	FactorizeIterations atomic.Int64
	FactorizeTotalNanos atomic.Int64
	KMeansCount         atomic.Int64
	KMeansErrors        atomic.Int64
	KMeansIterations    atomic.Int64
	KMeansTotalNanos    atomic.Int64
	ScoreCount          atomic.Int64
	ScoreErrors         atomic.Int64

	lastNMFScore    atomic.Uint64
	lastKMeansScore atomic.Uint64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(n int, _ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.PointsLoaded.Add(int64(n))
}

// RecordFactorize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFactorize(iterations int, duration time.Duration, err error) {
	b.FactorizeCount.Add(1)
	b.FactorizeIterations.Add(int64(iterations))
	b.FactorizeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FactorizeErrors.Add(1)
	}
}

// RecordKMeans implements MetricsCollector.
func (b *BasicMetricsCollector) RecordKMeans(iterations int, duration time.Duration, err error) {
	b.KMeansCount.Add(1)
	b.KMeansIterations.Add(int64(iterations))
	b.KMeansTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.KMeansErrors.Add(1)
	}
}

// RecordScore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScore(algorithm string, score float64, err error) {
	b.ScoreCount.Add(1)
	if err != nil {
		b.ScoreErrors.Add(1)
		return
	}
	switch algorithm {
	case report.AlgorithmNMF:
		b.lastNMFScore.Store(math.Float64bits(score))
	case report.AlgorithmKMeans:
		b.lastKMeansScore.Store(math.Float64bits(score))
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:         b.LoadCount.Load(),
		LoadErrors:        b.LoadErrors.Load(),
		PointsLoaded:      b.PointsLoaded.Load(),
		FactorizeCount:    b.FactorizeCount.Load(),
		FactorizeErrors:   b.FactorizeErrors.Load(),
		FactorizeAvgIters: avg(b.FactorizeIterations.Load(), b.FactorizeCount.Load()),
		FactorizeAvgNanos: avg(b.FactorizeTotalNanos.Load(), b.FactorizeCount.Load()),
		KMeansCount:       b.KMeansCount.Load(),
		KMeansErrors:      b.KMeansErrors.Load(),
		KMeansAvgIters:    avg(b.KMeansIterations.Load(), b.KMeansCount.Load()),
		KMeansAvgNanos:    avg(b.KMeansTotalNanos.Load(), b.KMeansCount.Load()),
		ScoreCount:        b.ScoreCount.Load(),
		ScoreErrors:       b.ScoreErrors.Load(),
		LastNMFScore:      math.Float64frombits(b.lastNMFScore.Load()),
		LastKMeansScore:   math.Float64frombits(b.lastKMeansScore.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount         int64
	LoadErrors        int64
	PointsLoaded      int64
	FactorizeCount    int64
	FactorizeErrors   int64
	FactorizeAvgIters int64
	FactorizeAvgNanos int64
	KMeansCount       int64
	KMeansErrors      int64
	KMeansAvgIters    int64
	KMeansAvgNanos    int64
	ScoreCount        int64
	ScoreErrors       int64
	LastNMFScore      float64
	LastKMeansScore   float64
}
