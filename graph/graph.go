package graph

import (
	"context"
	"math"

	"github.com/hupe1980/symnmf/distance"
	"github.com/hupe1980/symnmf/errs"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

type options struct {
	workers int
}

// Option configures graph construction.
type Option func(*options)

// WithWorkers sets how many rows of the similarity matrix are computed
// concurrently. Values <= 1 build the matrix sequentially.
// The result is identical regardless of the worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Graph bundles the three matrices of the similarity graph.
type Graph struct {
	W    *mat.SymDense
	D    *mat.DiagDense
	Norm *mat.SymDense
}

// Build computes W, D and Wnorm for data.
func Build(ctx context.Context, data [][]float64, opts ...Option) (*Graph, error) {
	w, err := Similarity(ctx, data, opts...)
	if err != nil {
		return nil, err
	}
	d, err := Degree(w)
	if err != nil {
		return nil, err
	}
	norm, err := Normalize(w, d)
	if err != nil {
		return nil, err
	}
	return &Graph{W: w, D: d, Norm: norm}, nil
}

// Similarity builds the Gaussian-kernel similarity matrix of data.
//
// For i != j, Wij = exp(-||xi-xj||²/2); the diagonal is zero.
// Cost is O(n²·d) time and O(n²) space.
func Similarity(ctx context.Context, data [][]float64, opts ...Option) (*mat.SymDense, error) {
	o := options{workers: 1}
	for _, fn := range opts {
		fn(&o)
	}

	n, err := validate(data)
	if err != nil {
		return nil, err
	}

	w := mat.NewSymDense(n, nil)

	// Row i fills the strict upper triangle (i, j>i); rows never share cells.
	row := func(i int) error {
		xi := data[i]
		for j := i + 1; j < n; j++ {
			v := math.Exp(-distance.SquaredL2(xi, data[j]) / 2)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errs.Numerical("graph.Similarity", "non-finite similarity at (%d,%d)", i, j)
			}
			w.SetSym(i, j, v)
		}
		return nil
	}

	if o.workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := row(i); err != nil {
				return nil, err
			}
		}
		return w, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return row(i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return w, nil
}

// Degree returns the diagonal degree matrix of w: Dii is the sum of row i.
func Degree(w mat.Symmetric) (*mat.DiagDense, error) {
	if w == nil {
		return nil, errs.Invalid("graph.Degree", "nil similarity matrix")
	}
	n, _ := w.Dims()

	deg := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += w.At(i, j)
		}
		deg[i] = sum
	}
	return mat.NewDiagDense(n, deg), nil
}

// Normalize returns D^(-1/2)·W·D^(-1/2), i.e. Wij / sqrt(Dii·Djj).
//
// A zero (or negative, or non-finite) degree fails with errs.ErrNumerical:
// the point is isolated in the similarity graph and has no normalization.
func Normalize(w mat.Symmetric, d mat.Diagonal) (*mat.SymDense, error) {
	if w == nil || d == nil {
		return nil, errs.Invalid("graph.Normalize", "nil matrix")
	}
	n, _ := w.Dims()
	if dr, dc := d.Dims(); dr != n || dc != n {
		return nil, errs.Invalid("graph.Normalize", "degree matrix is %dx%d, similarity is %dx%d", dr, dc, n, n)
	}

	inv := make([]float64, n)
	for i := 0; i < n; i++ {
		dii := d.At(i, i)
		if dii <= 0 || math.IsNaN(dii) || math.IsInf(dii, 0) {
			return nil, errs.Numerical("graph.Normalize", "degree of point %d is %g", i, dii)
		}
		inv[i] = 1 / math.Sqrt(dii)
	}

	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, w.At(i, j)*inv[i]*inv[j])
		}
	}
	return out, nil
}

// validate checks that data is a non-empty, rectangular, finite point set.
func validate(data [][]float64) (int, error) {
	n := len(data)
	if n == 0 {
		return 0, errs.Invalid("graph.Similarity", "empty dataset")
	}
	d := len(data[0])
	if d == 0 {
		return 0, errs.Invalid("graph.Similarity", "zero-dimensional points")
	}
	for i, x := range data {
		if len(x) != d {
			return 0, errs.Invalid("graph.Similarity", "point %d has dimension %d, want %d", i, len(x), d)
		}
		for _, v := range x {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, errs.Numerical("graph.Similarity", "non-finite coordinate in point %d", i)
			}
		}
	}
	return n, nil
}
