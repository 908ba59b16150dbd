package gridmem

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory is returned when an allocation or resize cannot be
	// satisfied, either by the system allocator or by an attached memory
	// budget.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrUnsupportedReshape reports an attempt to change the column count or
	// element size of an existing grid. Resize treats this as fatal; the
	// sentinel exists so the condition has a stable identity in logs.
	ErrUnsupportedReshape = errors.New("changing column count or element size is unsupported")

	// ErrShapeMismatch is returned by CopyFrom when source and destination
	// shapes differ. The copy still proceeds using the destination's size.
	ErrShapeMismatch = errors.New("grid shapes differ")
)

// Shape describes the dimensions of a grid.
type Shape struct {
	Rows     int
	Cols     int
	ElemSize int
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Rows, s.Cols, s.ElemSize)
}

// ErrGridShape details a shape mismatch between two grids.
//
// It unwraps to ErrShapeMismatch so callers can match with errors.Is.
type ErrGridShape struct {
	Dst Shape
	Src Shape
}

func (e *ErrGridShape) Error() string {
	return fmt.Sprintf("grid shapes differ: %s != %s", e.Dst, e.Src)
}

func (e *ErrGridShape) Unwrap() error { return ErrShapeMismatch }
