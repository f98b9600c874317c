package symnmf

import (
	"context"

	"github.com/hupe1980/symnmf/graph"
	"github.com/hupe1980/symnmf/nmf"
	"gonum.org/v1/gonum/mat"
)

// Engine computes the SymNMF pipeline stages.
type Engine interface {
	// Similarity returns the Gaussian similarity matrix of data.
	Similarity(ctx context.Context, data [][]float64) (*mat.SymDense, error)
	// Degree returns the diagonal degree matrix of w.
	Degree(w *mat.SymDense) (*mat.DiagDense, error)
	// Normalize returns D^-1/2 W D^-1/2.
	Normalize(w *mat.SymDense, d *mat.DiagDense) (*mat.SymDense, error)
	// Factorize runs the multiplicative updates on the normalized matrix.
	Factorize(ctx context.Context, w *mat.SymDense, k int, cfg nmf.Config) (*nmf.Result, error)
}

// NativeEngine is the in-process Engine built on the graph and nmf packages.
type NativeEngine struct {
	// Workers bounds the goroutines building the similarity matrix.
	Workers int
}

var _ Engine = NativeEngine{}

// Similarity implements Engine.
func (e NativeEngine) Similarity(ctx context.Context, data [][]float64) (*mat.SymDense, error) {
	return graph.Similarity(ctx, data, graph.WithWorkers(e.Workers))
}

// Degree implements Engine.
func (NativeEngine) Degree(w *mat.SymDense) (*mat.DiagDense, error) {
	return graph.Degree(w)
}

// Normalize implements Engine.
func (NativeEngine) Normalize(w *mat.SymDense, d *mat.DiagDense) (*mat.SymDense, error) {
	return graph.Normalize(w, d)
}

// Factorize implements Engine.
func (NativeEngine) Factorize(ctx context.Context, w *mat.SymDense, k int, cfg nmf.Config) (*nmf.Result, error) {
	return nmf.Factorize(ctx, w, k, cfg)
}
