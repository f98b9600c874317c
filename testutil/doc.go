// Package testutil provides testing utilities for symnmf.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating reproducible point sets and
// writing them in the dataset text format.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformPoints(100, 3)      // uniform [0, 1)
//	blobs := rng.Blobs(100, 3, 4, 0.5)    // 4 Gaussian blobs
//
// # Dataset Text
//
//	text := testutil.CSV(blobs)
package testutil
