package snapshot

import "errors"

const (
	// MagicNumber identifies gridmem snapshot files (ASCII: "GRD0")
	MagicNumber = 0x47524430
	// Version is the current file format version (v1.0.0)
	Version = 0x00010000
)

// Compression codecs.
const (
	CompressionNone uint8 = iota
	CompressionZstd
	CompressionLZ4
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrUnknownCompression = errors.New("unknown compression codec")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
)

// FileHeader is the 48-byte header at the start of every snapshot file.
// Layout is fixed little-endian for cross-platform dumps.
type FileHeader struct {
	Magic       uint32 // 0x47524430 ("GRD0")
	Version     uint32 // File format version
	Compression uint8  // 0=None, 1=Zstd, 2=LZ4
	Padding1    [7]byte
	Rows        uint64 // Row count
	Cols        uint64 // Column count
	ElemSize    uint64 // Element size in bytes
	Checksum    uint32 // CRC32 (IEEE) of the uncompressed data buffer
	Padding2    [4]byte
}
