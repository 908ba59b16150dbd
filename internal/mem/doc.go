// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides 64-byte aligned, zero-initialized allocation so grid buffers can
// be handed to SIMD kernels (AVX-512 friendly) without copies.
package mem
