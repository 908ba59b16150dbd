package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// FillBytes fills dst with pseudo-random bytes.
// Locks only once per call (preferred over calling Intn in a loop).
func (r *RNG) FillBytes(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = byte(r.rand.Intn(256))
	}
}

// Bytes returns a pseudo-random buffer of length n.
func (r *RNG) Bytes(n int) []byte {
	buf := make([]byte, n)
	r.FillBytes(buf)
	return buf
}

// ByteMatrix generates rows random byte rows of cols bytes each.
// Uses a single backing array for efficiency.
func (r *RNG) ByteMatrix(rows, cols int) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]byte, rows*cols)
	for i := range data {
		data[i] = byte(r.rand.Intn(256))
	}

	out := make([][]byte, rows)
	for i := 0; i < rows; i++ {
		out[i] = data[i*cols : (i+1)*cols]
	}

	return out
}
