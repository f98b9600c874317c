package symnmf

import (
	"time"

	"github.com/hupe1980/symnmf/report"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector exports run metrics through a dedicated registry.
type PrometheusCollector struct {
	registry *prometheus.Registry

	loads       *prometheus.CounterVec
	points      prometheus.Counter
	runs        *prometheus.CounterVec
	iterations  *prometheus.HistogramVec
	durations   *prometheus.HistogramVec
	scores      *prometheus.GaugeVec
	scoreErrors *prometheus.CounterVec
}

// NewPrometheusCollector creates a collector with its own registry.
func NewPrometheusCollector() *PrometheusCollector {
	reg := prometheus.NewRegistry()
	p := &PrometheusCollector{registry: reg}

	p.loads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "symnmf_dataset_loads_total",
		Help: "Dataset loads by outcome.",
	}, []string{"status"})
	p.points = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "symnmf_dataset_points_total",
		Help: "Points read from datasets.",
	})
	p.runs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "symnmf_runs_total",
		Help: "Clustering runs by algorithm and outcome.",
	}, []string{"algorithm", "status"})
	p.iterations = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "symnmf_iterations",
		Help:    "Iterations performed per clustering run.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 300, 500, 1000},
	}, []string{"algorithm"})
	p.durations = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "symnmf_run_duration_seconds",
		Help:    "Clustering run latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"algorithm"})
	p.scores = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "symnmf_silhouette_score",
		Help: "Most recent silhouette score per algorithm.",
	}, []string{"algorithm"})
	p.scoreErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "symnmf_silhouette_errors_total",
		Help: "Silhouette evaluations that failed.",
	}, []string{"algorithm"})

	reg.MustRegister(p.loads, p.points, p.runs, p.iterations, p.durations, p.scores, p.scoreErrors)
	return p
}

// Registry returns the registry holding the collector's metrics.
func (p *PrometheusCollector) Registry() *prometheus.Registry {
	return p.registry
}

// WriteToTextfile writes the current metrics in the node_exporter textfile
// format.
func (p *PrometheusCollector) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.registry)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordLoad implements MetricsCollector.
func (p *PrometheusCollector) RecordLoad(n int, _ time.Duration, err error) {
	p.loads.WithLabelValues(status(err)).Inc()
	if err == nil {
		p.points.Add(float64(n))
	}
}

// RecordFactorize implements MetricsCollector.
func (p *PrometheusCollector) RecordFactorize(iterations int, duration time.Duration, err error) {
	p.recordRun(report.AlgorithmNMF, iterations, duration, err)
}

// RecordKMeans implements MetricsCollector.
func (p *PrometheusCollector) RecordKMeans(iterations int, duration time.Duration, err error) {
	p.recordRun(report.AlgorithmKMeans, iterations, duration, err)
}

func (p *PrometheusCollector) recordRun(algorithm string, iterations int, duration time.Duration, err error) {
	p.runs.WithLabelValues(algorithm, status(err)).Inc()
	p.durations.WithLabelValues(algorithm).Observe(duration.Seconds())
	if err == nil {
		p.iterations.WithLabelValues(algorithm).Observe(float64(iterations))
	}
}

// RecordScore implements MetricsCollector.
func (p *PrometheusCollector) RecordScore(algorithm string, score float64, err error) {
	if err != nil {
		p.scoreErrors.WithLabelValues(algorithm).Inc()
		return
	}
	p.scores.WithLabelValues(algorithm).Set(score)
}
