// Package nmf implements symmetric non-negative matrix factorization.
//
// Given a normalized similarity matrix W (n×n) and a cluster count k, it
// finds H (n×k, H ≥ 0) with W ≈ H·Hᵀ using the damped multiplicative update
//
//	H ← H ∘ ((1-β) + β · (W·H) ⊘ (H·Hᵀ·H))
//
// starting from a seeded uniform initialization. Iteration stops once the
// squared Frobenius norm of the change in H drops below Config.Epsilon or
// after Config.MaxIter updates. Labels derives hard cluster assignments by
// row-wise argmax.
package nmf
