// Package testutil provides testing utilities for gridmem.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random source for generating
// reproducible byte patterns and row data.
//
// # Random Byte Generation
//
//	rng := testutil.NewRNG(seed)
//	buf := rng.Bytes(48)          // reproducible random buffer
//	rows := rng.ByteMatrix(3, 16) // row views over one backing array
package testutil
