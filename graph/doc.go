// Package graph builds the similarity graph used by symmetric NMF.
//
// Three matrices are derived from a dataset of n points:
//
//	W     = Similarity(data)  Gaussian kernel, Wij = exp(-||xi-xj||²/2), Wii = 0
//	D     = Degree(W)         diagonal, Dii = Σj Wij
//	Wnorm = Normalize(W, D)   D^(-1/2) · W · D^(-1/2)
//
// W and Wnorm are returned as *mat.SymDense and D as *mat.DiagDense
// (gonum.org/v1/gonum/mat). Normalize refuses isolated points (Dii = 0)
// with errs.ErrNumerical instead of emitting NaN.
package graph
