package gridmem

import (
	"fmt"
	"os"
	"time"
	"unsafe"

	"github.com/hupe1980/gridmem/internal/conv"
	"github.com/hupe1980/gridmem/internal/mem"
)

// ptrSize mirrors the per-row pointer cost of the classic row-pointer-table
// layout. SizeEstimate keeps charging for it so budgets computed against the
// original layout stay stable even though row views are derived here.
const ptrSize = uint64(unsafe.Sizeof(uintptr(0)))

// osExit is the unrecoverable-misuse exit seam.
var osExit = os.Exit

// Grid is a row-major 2D array of fixed-size elements backed by one
// contiguous, zero-initialized buffer. The shape metadata lives on the
// handle; row views are derived slices into the backing buffer, so every
// row i starts exactly cols*elemSize bytes after row i-1.
//
// A Grid exclusively owns its buffer. It is not safe for concurrent use.
type Grid struct {
	shape    Shape
	data     []byte
	logger   *Logger
	metrics  MetricsCollector
	acquirer MemoryAcquirer
	reserved int64
}

// SizeEstimate returns the total bytes a grid of the given shape would
// consume: rows pointer slots plus rows*cols*elemSize data bytes. The fixed
// header of the original layout is not included.
//
// Arguments must be non-negative; this is the caller's responsibility.
func SizeEstimate(rows, cols, elemSize int) uint64 {
	r, c, e := uint64(rows), uint64(cols), uint64(elemSize) //nolint:gosec // non-negative by contract
	return r*ptrSize + r*c*e
}

// dataSize computes rows*cols*elemSize with overflow checking.
func dataSize(rows, cols, elemSize int) (int, error) {
	r, err := conv.IntToUint64(rows)
	if err != nil {
		return 0, err
	}
	c, err := conv.IntToUint64(cols)
	if err != nil {
		return 0, err
	}
	e, err := conv.IntToUint64(elemSize)
	if err != nil {
		return 0, err
	}

	size, err := conv.MulUint64N(r, c, e)
	if err != nil {
		return 0, err
	}

	return conv.Uint64ToInt(size)
}

// Alloc creates a grid with rows*cols elements of elemSize bytes apiece,
// zero-initialized. rows == 0 is permitted as a degenerate grid.
//
// On failure (budget denied, or a size that cannot be represented) the error
// wraps ErrOutOfMemory and no allocation is retained.
func Alloc(rows, cols, elemSize int, optFns ...Option) (*Grid, error) {
	start := time.Now()

	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	shape := Shape{Rows: rows, Cols: cols, ElemSize: elemSize}

	size, err := dataSize(rows, cols, elemSize)
	if err != nil {
		err = fmt.Errorf("gridmem: alloc %s: %v: %w", shape, err, ErrOutOfMemory)
		o.logger.LogAlloc(shape, 0, err)
		o.metrics.RecordAlloc(0, time.Since(start), err)
		return nil, err
	}

	var reserved int64
	if o.acquirer != nil && size > 0 {
		if acqErr := o.acquirer.AcquireMemory(int64(size)); acqErr != nil {
			err = fmt.Errorf("gridmem: alloc %s: %v: %w", shape, acqErr, ErrOutOfMemory)
			o.logger.LogAlloc(shape, uint64(size), err)
			o.metrics.RecordAlloc(uint64(size), time.Since(start), err)
			return nil, err
		}
		reserved = int64(size)
	}

	g := &Grid{
		shape:    shape,
		data:     mem.AllocAligned(size),
		logger:   o.logger,
		metrics:  o.metrics,
		acquirer: o.acquirer,
		reserved: reserved,
	}

	g.logger.LogAlloc(shape, uint64(size), nil)
	g.metrics.RecordAlloc(uint64(size), time.Since(start), nil)

	return g, nil
}

// Resize grows or shrinks the grid to rows rows, preserving surviving
// content and zero-filling newly added rows. The buffer may move; row views
// obtained before Resize are invalid afterwards.
//
// cols and elemSize MUST equal the grid's current column count and element
// size. Changing either is an unsupported reshape and terminates the
// process. rows == 0 is a recoverable error wrapping ErrOutOfMemory.
func (g *Grid) Resize(rows, cols, elemSize int) error {
	start := time.Now()

	if cols != g.shape.Cols || elemSize != g.shape.ElemSize {
		g.logger.Error("resize: "+ErrUnsupportedReshape.Error(),
			"grid", g.shape.String(),
			"requested", Shape{Rows: rows, Cols: cols, ElemSize: elemSize}.String(),
		)
		osExit(1)
	}

	if rows == 0 {
		err := fmt.Errorf("gridmem: resize %s to 0 rows: %w", g.shape, ErrOutOfMemory)
		g.logger.LogResize(g.shape.Rows, rows, 0, err)
		g.metrics.RecordResize(0, time.Since(start), err)
		return err
	}

	size, err := dataSize(rows, cols, elemSize)
	if err != nil {
		err = fmt.Errorf("gridmem: resize %s to %d rows: %v: %w", g.shape, rows, err, ErrOutOfMemory)
		g.logger.LogResize(g.shape.Rows, rows, 0, err)
		g.metrics.RecordResize(0, time.Since(start), err)
		return err
	}

	delta := int64(size) - int64(len(g.data))
	if g.acquirer != nil {
		if delta > 0 {
			if acqErr := g.acquirer.AcquireMemory(delta); acqErr != nil {
				err = fmt.Errorf("gridmem: resize %s to %d rows: %v: %w", g.shape, rows, acqErr, ErrOutOfMemory)
				g.logger.LogResize(g.shape.Rows, rows, uint64(size), err)
				g.metrics.RecordResize(uint64(size), time.Since(start), err)
				return err
			}
		} else if delta < 0 {
			g.acquirer.ReleaseMemory(-delta)
		}
		g.reserved += delta
	}

	oldRows := g.shape.Rows
	g.data = mem.Grow(g.data, size)
	g.shape.Rows = rows

	g.logger.LogResize(oldRows, rows, uint64(size), nil)
	g.metrics.RecordResize(uint64(size), time.Since(start), nil)

	return nil
}

// Fill writes v into every byte of the data buffer.
func (g *Grid) Fill(v byte) {
	mem.Fill(g.data, v)
}

// CopyFrom copies src's data buffer into g.
//
// If shapes differ, a diagnostic is logged and ErrShapeMismatch is returned,
// but the copy still proceeds bounded by the destination's declared size.
// Callers that want mismatches to be hard errors check the return value;
// callers relying on the legacy proceed-anyway behavior may ignore it.
func (g *Grid) CopyFrom(src *Grid) error {
	start := time.Now()

	var err error
	if g.shape != src.shape {
		err = &ErrGridShape{Dst: g.shape, Src: src.shape}
	}

	copy(g.data, src.data)

	g.logger.LogCopy(g.shape, src.shape, err)
	g.metrics.RecordCopy(uint64(len(g.data)), time.Since(start), err)

	return err
}

// Free releases the data buffer and returns any reserved bytes to the
// attached memory budget. The grid must not be used afterwards; no
// use-after-free protection is provided.
func (g *Grid) Free() {
	if g.acquirer != nil && g.reserved > 0 {
		g.acquirer.ReleaseMemory(g.reserved)
		g.reserved = 0
	}

	bytes := uint64(len(g.data))
	g.data = nil

	g.logger.LogFree(g.shape, bytes)
	g.metrics.RecordFree(bytes)
}

// Row returns the derived view of row i. The view is valid until the next
// Resize or Free.
func (g *Grid) Row(i int) []byte {
	if i < 0 || i >= g.shape.Rows {
		panic(fmt.Sprintf("gridmem: row index %d out of range [0,%d)", i, g.shape.Rows))
	}
	rb := g.shape.Cols * g.shape.ElemSize
	off := i * rb
	return g.data[off : off+rb : off+rb]
}

// Rows returns the row count.
func (g *Grid) Rows() int { return g.shape.Rows }

// Cols returns the column count.
func (g *Grid) Cols() int { return g.shape.Cols }

// ElemSize returns the element size in bytes.
func (g *Grid) ElemSize() int { return g.shape.ElemSize }

// Shape returns the grid's shape.
func (g *Grid) Shape() Shape { return g.shape }

// Bytes returns the whole data buffer. The slice is valid until the next
// Resize or Free.
func (g *Grid) Bytes() []byte { return g.data }

// Size returns the data-buffer size in bytes.
func (g *Grid) Size() uint64 { return uint64(len(g.data)) }

func (g *Grid) String() string {
	return fmt.Sprintf("Grid{shape: %s, bytes: %d}", g.shape, len(g.data))
}
