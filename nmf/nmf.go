package nmf

import (
	"context"
	"math"
	"math/rand"

	"github.com/hupe1980/symnmf/errs"
	"gonum.org/v1/gonum/mat"
)

// Defaults used by DefaultConfig.
const (
	DefaultSeed    = 1234
	DefaultBeta    = 0.5
	DefaultEpsilon = 1e-4
	DefaultMaxIter = 300
	DefaultFloor   = 1e-12
)

// Config controls initialization and convergence.
type Config struct {
	// Seed for the uniform initialization of H.
	Seed int64
	// Beta is the damping factor of the multiplicative update, in (0, 1].
	Beta float64
	// Epsilon is the convergence threshold on ||H_new - H_old||²_F.
	Epsilon float64
	// MaxIter caps the number of updates.
	MaxIter int
	// Floor replaces denominators at or below it.
	Floor float64
}

// DefaultConfig returns the reference configuration
// (seed 1234, β = 0.5, ε = 1e-4, 300 iterations).
func DefaultConfig() Config {
	return Config{
		Seed:    DefaultSeed,
		Beta:    DefaultBeta,
		Epsilon: DefaultEpsilon,
		MaxIter: DefaultMaxIter,
		Floor:   DefaultFloor,
	}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	switch {
	case !(c.Beta > 0 && c.Beta <= 1):
		return errs.Invalid("nmf.Config", "beta must be in (0, 1], got %g", c.Beta)
	case !(c.Epsilon > 0):
		return errs.Invalid("nmf.Config", "epsilon must be positive, got %g", c.Epsilon)
	case c.MaxIter < 1:
		return errs.Invalid("nmf.Config", "max iterations must be >= 1, got %d", c.MaxIter)
	case !(c.Floor > 0):
		return errs.Invalid("nmf.Config", "floor must be positive, got %g", c.Floor)
	}
	return nil
}

// Result is the outcome of a factorization.
type Result struct {
	// H is the final n×k factor.
	H *mat.Dense
	// Iterations is the number of updates performed.
	Iterations int
	// Converged is true if the change fell below Epsilon before MaxIter.
	Converged bool
	// Delta is the squared Frobenius norm of the last change.
	Delta float64
}

// CheckK validates the cluster count against the number of points.
func CheckK(k, n int) error {
	if k < 2 || k >= n {
		return errs.Invalid("nmf", "k must satisfy 1 < k < n, got k=%d n=%d", k, n)
	}
	return nil
}

// Init returns the seeded initial factor for w.
//
// Every entry is drawn i.i.d. from U[0, 2·sqrt(m/k)) where m is the mean of
// all entries of w.
func Init(w mat.Symmetric, k int, cfg Config) (*mat.Dense, error) {
	if w == nil {
		return nil, errs.Invalid("nmf.Init", "nil matrix")
	}
	n, _ := w.Dims()
	if err := CheckK(k, n); err != nil {
		return nil, err
	}

	m := mat.Sum(w) / float64(n*n)
	if m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return nil, errs.Numerical("nmf.Init", "mean of W is %g", m)
	}
	upper := 2 * math.Sqrt(m/float64(k))

	rng := rand.New(rand.NewSource(cfg.Seed))
	data := make([]float64, n*k)
	for i := range data {
		data[i] = rng.Float64() * upper
	}
	return mat.NewDense(n, k, data), nil
}

// Factorize initializes H from cfg.Seed and iterates to convergence.
func Factorize(ctx context.Context, w mat.Symmetric, k int, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h0, err := Init(w, k, cfg)
	if err != nil {
		return nil, err
	}
	return iterate(ctx, w, h0, cfg)
}

// Iterate runs the multiplicative update from a caller-supplied H.
// h0 is copied, never modified.
func Iterate(ctx context.Context, w mat.Symmetric, h0 mat.Matrix, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if w == nil || h0 == nil {
		return nil, errs.Invalid("nmf.Iterate", "nil matrix")
	}
	n, _ := w.Dims()
	r, k := h0.Dims()
	if r != n {
		return nil, errs.Invalid("nmf.Iterate", "H has %d rows, W is %dx%d", r, n, n)
	}
	if err := CheckK(k, n); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := w.At(i, j)
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errs.Invalid("nmf.Iterate", "W(%d,%d) = %g is not a finite non-negative value", i, j, v)
			}
		}
		for j := 0; j < k; j++ {
			v := h0.At(i, j)
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errs.Invalid("nmf.Iterate", "H(%d,%d) = %g is not a finite non-negative value", i, j, v)
			}
		}
	}
	return iterate(ctx, w, mat.DenseCopyOf(h0), cfg)
}

func iterate(ctx context.Context, w mat.Symmetric, h *mat.Dense, cfg Config) (*Result, error) {
	n, k := h.Dims()
	next := mat.NewDense(n, k, nil)
	u := &updater{
		wh:   mat.NewDense(n, k, nil),
		hth:  mat.NewDense(k, k, nil),
		hhth: mat.NewDense(n, k, nil),
		cfg:  cfg,
	}

	res := &Result{}
	for iter := 1; iter <= cfg.MaxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		delta, err := u.step(w, h, next)
		if err != nil {
			return nil, err
		}
		h, next = next, h

		res.Iterations = iter
		res.Delta = delta
		if delta < cfg.Epsilon {
			res.Converged = true
			break
		}
	}
	res.H = h
	return res, nil
}

// updater holds the scratch products reused across iterations.
type updater struct {
	wh   *mat.Dense // W·H, n×k
	hth  *mat.Dense // Hᵀ·H, k×k
	hhth *mat.Dense // H·(Hᵀ·H) = H·Hᵀ·H, n×k
	cfg  Config
}

// step writes the updated factor into next and returns ||next - h||²_F.
func (u *updater) step(w mat.Symmetric, h, next *mat.Dense) (float64, error) {
	u.wh.Mul(w, h)
	u.hth.Mul(h.T(), h)
	u.hhth.Mul(h, u.hth)

	beta := u.cfg.Beta
	n, _ := h.Dims()

	var delta float64
	for i := 0; i < n; i++ {
		hRow := h.RawRowView(i)
		whRow := u.wh.RawRowView(i)
		denRow := u.hhth.RawRowView(i)
		outRow := next.RawRowView(i)
		for j, hij := range hRow {
			den := denRow[j]
			if den <= u.cfg.Floor {
				den = u.cfg.Floor
			}
			v := hij * ((1 - beta) + beta*whRow[j]/den)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, errs.Numerical("nmf.Factorize", "non-finite H(%d,%d)", i, j)
			}
			outRow[j] = v
			d := v - hij
			delta += d * d
		}
	}
	return delta, nil
}

// Labels assigns each row of h to the column holding its largest value.
// Ties go to the lowest column index.
func Labels(h mat.Matrix) []int {
	n, k := h.Dims()
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		best := 0
		bestVal := h.At(i, 0)
		for j := 1; j < k; j++ {
			if v := h.At(i, j); v > bestVal {
				best = j
				bestVal = v
			}
		}
		labels[i] = best
	}
	return labels
}
