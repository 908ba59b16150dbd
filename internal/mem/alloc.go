package mem

import (
	"unsafe"
)

// Alignment is the byte alignment required for AVX-512 (64 bytes).
const Alignment = 64

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is zero-initialized and guaranteed to start at a memory
// address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure
// alignment. The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	// Allocate size + alignment to ensure we can find an aligned offset
	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	// Calculate the offset to the first aligned byte
	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size)]
}

// Grow returns an aligned buffer of the given size holding old's content.
//
// When size exceeds len(old) the surviving prefix is copied and the tail is
// zero (fresh allocations are zero-initialized). When size is smaller the
// content is truncated. Grow always allocates; the returned slice never
// aliases old.
func Grow(old []byte, size int) []byte {
	buf := AllocAligned(size)
	copy(buf, old)
	return buf
}

// Fill writes v into every byte of buf.
func Fill(buf []byte, v byte) {
	for i := range buf {
		buf[i] = v
	}
}
