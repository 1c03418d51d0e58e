// Package testutil provides testing utilities for the sliced set encoding.
//
// This package is intended for use in tests and benchmarks only.
// It provides a deterministic RNG, generators that produce key sets shaped
// to hit every block and chunk representation, and a naive merge
// intersection used as ground truth.
//
// # Key Generation
//
//	rng := testutil.NewRNG(seed)
//	keys := rng.ChunkKeys(7, 3000)                  // sparse chunk 7
//	keys = testutil.Merge(keys, rng.ChunkKeys(9, 65536)) // plus full chunk 9
//
// # Ground Truth
//
//	want := testutil.Intersect(a, b)
package testutil
