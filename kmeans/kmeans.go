package kmeans

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/symnmf/distance"
	"github.com/hupe1980/symnmf/errs"
	"golang.org/x/sync/errgroup"
)

// Defaults used by DefaultConfig.
const (
	DefaultMaxIter = 300
	DefaultEpsilon = 1e-4

	// MaxIterLimit is the exclusive upper bound on the iteration cap.
	MaxIterLimit = 1000
)

// Config controls training.
type Config struct {
	// MaxIter caps the number of iterations; must satisfy 1 < MaxIter < 1000.
	MaxIter int
	// Epsilon is the convergence threshold on the largest centroid shift.
	Epsilon float64
	// Workers bounds how many goroutines share an assignment pass.
	// Values <= 1 assign sequentially.
	Workers int
	// Metric picks the assignment distance. The zero value is MetricL2.
	// Centroid shift is always measured in L2.
	Metric distance.Metric
}

// DefaultConfig returns 300 iterations and ε = 1e-4.
func DefaultConfig() Config {
	return Config{
		MaxIter: DefaultMaxIter,
		Epsilon: DefaultEpsilon,
		Workers: 1,
	}
}

// Result is the outcome of training.
type Result struct {
	// Centroids holds the k final centroids.
	Centroids [][]float64
	// Iterations is the number of assignment/update rounds performed.
	Iterations int
	// Converged is true if the last round moved no centroid by Epsilon or more.
	Converged bool
	// Shift is the largest centroid movement of the last round.
	Shift float64
}

// ParseArg parses a numeric command-line argument such as "3" or "3.0".
func ParseArg(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errs.Invalid("kmeans.ParseArg", "%q is not a number", s)
	}
	return v, nil
}

// Validate checks k and the iteration cap against the dataset size n.
// Both must be integer-valued with 1 < k < n and 1 < itr < 1000.
func Validate(k, itr float64, n int) error {
	if !isInteger(k) || !(1 < k && k < float64(n)) {
		return errs.Invalid("kmeans", "invalid number of clusters: %v", k)
	}
	if !isInteger(itr) || !(1 < itr && itr < MaxIterLimit) {
		return errs.Invalid("kmeans", "invalid maximum iteration: %v", itr)
	}
	return nil
}

func isInteger(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v == math.Trunc(v)
}

// Train clusters data into k groups using Lloyd's algorithm.
func Train(ctx context.Context, data [][]float64, k int, cfg Config) (*Result, error) {
	n := len(data)
	if err := Validate(float64(k), float64(cfg.MaxIter), n); err != nil {
		return nil, err
	}
	if !(cfg.Epsilon > 0) {
		return nil, errs.Invalid("kmeans", "epsilon must be positive, got %g", cfg.Epsilon)
	}
	dist, err := metricFunc(cfg.Metric)
	if err != nil {
		return nil, err
	}
	dim, err := checkData(data)
	if err != nil {
		return nil, err
	}

	centroids := make([][]float64, k)
	for i := range centroids {
		centroids[i] = append([]float64(nil), data[i]...)
	}

	labels := make([]int, n)
	counts := make([]int, k)
	sums := make([][]float64, k)
	for i := range sums {
		sums[i] = make([]float64, dim)
	}

	res := &Result{}
	for remaining := cfg.MaxIter; !res.Converged && remaining > 0; remaining-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Assignment step; the update below waits for the whole pass.
		if err := assignInto(ctx, labels, centroids, data, dist, cfg.Workers); err != nil {
			return nil, err
		}

		// Update step
		for c := range sums {
			clear(sums[c])
			counts[c] = 0
		}
		for i, p := range data {
			c := labels[i]
			for d, v := range p {
				sums[c][d] += v
			}
			counts[c]++
		}

		maxShift := 0.0
		for c := range centroids {
			if counts[c] == 0 {
				return nil, errs.Numerical("kmeans.Train", "cluster %d is empty after iteration %d", c, res.Iterations+1)
			}
			scale := 1 / float64(counts[c])
			next := make([]float64, dim)
			for d := range next {
				next[d] = sums[c][d] * scale
			}
			maxShift = math.Max(maxShift, distance.L2(centroids[c], next))
			centroids[c] = next
		}

		res.Iterations++
		res.Shift = maxShift
		res.Converged = maxShift < cfg.Epsilon
	}

	res.Centroids = centroids
	return res, nil
}

// Assign labels every point with the index of its nearest centroid under m.
// On exact ties the lowest centroid index wins.
func Assign(centroids, points [][]float64, m distance.Metric) ([]int, error) {
	dist, err := metricFunc(m)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(points))
	for i, p := range points {
		labels[i] = nearest(p, centroids, dist)
	}
	return labels, nil
}

func metricFunc(m distance.Metric) (distance.Func, error) {
	dist, err := distance.Provider(m)
	if err != nil {
		return nil, errs.Wrap(errs.ErrInvalidArgument, "kmeans", err)
	}
	return dist, nil
}

// nearest scans centroids left to right with a strict comparison, so the
// first of several equidistant centroids is chosen.
func nearest(p []float64, centroids [][]float64, dist distance.Func) int {
	best := 0
	minDist := math.Inf(1)
	for j, c := range centroids {
		if d := dist(p, c); d < minDist {
			minDist = d
			best = j
		}
	}
	return best
}

// assignBlock is the number of points one goroutine labels at a time.
const assignBlock = 256

func assignInto(ctx context.Context, labels []int, centroids, points [][]float64, dist distance.Func, workers int) error {
	if workers <= 1 || len(points) <= assignBlock {
		for i, p := range points {
			labels[i] = nearest(p, centroids, dist)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(points); start += assignBlock {
		end := min(start+assignBlock, len(points))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				labels[i] = nearest(points[i], centroids, dist)
			}
			return nil
		})
	}
	return g.Wait()
}

func checkData(data [][]float64) (int, error) {
	dim := len(data[0])
	if dim == 0 {
		return 0, errs.Invalid("kmeans", "zero-dimensional points")
	}
	for i, p := range data {
		if len(p) != dim {
			return 0, errs.Invalid("kmeans", "point %d has dimension %d, want %d", i, len(p), dim)
		}
		for _, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, errs.Numerical("kmeans", "non-finite coordinate in point %d", i)
			}
		}
	}
	return dim, nil
}
