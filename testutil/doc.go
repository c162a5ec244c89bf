// Package testutil provides testing utilities for ordex.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random number generator for reproducible key
// sequences.
//
// # Deterministic Key Generation
//
//	rng := testutil.NewRNG(seed)
//	keys := rng.Keys(10000) // distinct int64 keys, shuffled
package testutil
