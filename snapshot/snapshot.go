// Package snapshot serializes grids to a compact binary format.
//
// A snapshot is a fixed little-endian file header (magic, version, shape,
// CRC32 of the raw data) followed by the data buffer, optionally compressed
// with zstd or lz4. Numeric dumps compress well; zstd is the default.
package snapshot

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/gridmem"
	"github.com/hupe1980/gridmem/internal/conv"
)

type options struct {
	compression uint8
}

// Option configures snapshot encoding.
type Option func(*options)

// WithCompression selects the payload codec (CompressionNone,
// CompressionZstd or CompressionLZ4).
func WithCompression(codec uint8) Option {
	return func(o *options) {
		o.compression = codec
	}
}

// Write writes g's shape and data buffer to w.
func Write(w io.Writer, g *gridmem.Grid, optFns ...Option) error {
	o := options{compression: CompressionZstd}
	for _, fn := range optFns {
		fn(&o)
	}

	header := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: o.compression,
		Rows:        uint64(g.Rows()),     //nolint:gosec // grid shape is non-negative
		Cols:        uint64(g.Cols()),     //nolint:gosec // grid shape is non-negative
		ElemSize:    uint64(g.ElemSize()), //nolint:gosec // grid shape is non-negative
		Checksum:    crc32.ChecksumIEEE(g.Bytes()),
	}

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("snapshot: failed to write header: %w", err)
	}

	switch o.compression {
	case CompressionNone:
		if _, err := w.Write(g.Bytes()); err != nil {
			return fmt.Errorf("snapshot: failed to write data: %w", err)
		}
		return nil

	case CompressionZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("snapshot: failed to create zstd writer: %w", err)
		}
		if _, err := enc.Write(g.Bytes()); err != nil {
			_ = enc.Close()
			return fmt.Errorf("snapshot: failed to write data: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("snapshot: failed to flush zstd stream: %w", err)
		}
		return nil

	case CompressionLZ4:
		lw := lz4.NewWriter(w)
		if _, err := lw.Write(g.Bytes()); err != nil {
			_ = lw.Close()
			return fmt.Errorf("snapshot: failed to write data: %w", err)
		}
		if err := lw.Close(); err != nil {
			return fmt.Errorf("snapshot: failed to flush lz4 stream: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("snapshot: %w: %d", ErrUnknownCompression, o.compression)
	}
}

// Read reads a snapshot from r and allocates a grid holding its content.
// Grid options (logger, metrics, memory budget) apply to the new grid.
func Read(r io.Reader, gridOpts ...gridmem.Option) (*gridmem.Grid, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("snapshot: failed to read header: %w", err)
	}

	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("snapshot: %w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("snapshot: %w: got 0x%08x", ErrInvalidVersion, header.Version)
	}

	rows, err := conv.Uint64ToInt(header.Rows)
	if err != nil {
		return nil, fmt.Errorf("snapshot: invalid row count: %w", err)
	}
	cols, err := conv.Uint64ToInt(header.Cols)
	if err != nil {
		return nil, fmt.Errorf("snapshot: invalid column count: %w", err)
	}
	elemSize, err := conv.Uint64ToInt(header.ElemSize)
	if err != nil {
		return nil, fmt.Errorf("snapshot: invalid element size: %w", err)
	}

	g, err := gridmem.Alloc(rows, cols, elemSize, gridOpts...)
	if err != nil {
		return nil, fmt.Errorf("snapshot: failed to allocate grid: %w", err)
	}

	payload := r
	switch header.Compression {
	case CompressionNone:
	case CompressionZstd:
		dec, decErr := zstd.NewReader(r)
		if decErr != nil {
			g.Free()
			return nil, fmt.Errorf("snapshot: failed to create zstd reader: %w", decErr)
		}
		defer dec.Close()
		payload = dec.IOReadCloser()
	case CompressionLZ4:
		payload = lz4.NewReader(r)
	default:
		g.Free()
		return nil, fmt.Errorf("snapshot: %w: %d", ErrUnknownCompression, header.Compression)
	}

	if _, err := io.ReadFull(payload, g.Bytes()); err != nil {
		g.Free()
		return nil, fmt.Errorf("snapshot: failed to read data: %w", err)
	}

	if sum := crc32.ChecksumIEEE(g.Bytes()); sum != header.Checksum {
		g.Free()
		return nil, fmt.Errorf("snapshot: %w: got 0x%08x, want 0x%08x", ErrChecksumMismatch, sum, header.Checksum)
	}

	return g, nil
}

// Save writes g to the file at path.
func Save(path string, g *gridmem.Grid, optFns ...Option) (err error) {
	f, err := os.Create(path) //nolint:gosec // G304: Path is caller-controlled by design
	if err != nil {
		return fmt.Errorf("snapshot: failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("snapshot: failed to close %s: %w", path, closeErr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Write(bw, g, optFns...); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("snapshot: failed to flush %s: %w", path, err)
	}

	return nil
}

// Load reads a grid from the file at path.
func Load(path string, gridOpts ...gridmem.Option) (*gridmem.Grid, error) {
	f, err := os.Open(path) //nolint:gosec // G304: Path is caller-controlled by design
	if err != nil {
		return nil, fmt.Errorf("snapshot: failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(bufio.NewReader(f), gridOpts...)
}
