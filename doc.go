// Package gridmem provides contiguous two-dimensional byte grids with
// out-of-band size metadata, plus admission helpers that estimate whether a
// requested allocation fits into currently available physical memory.
//
// A Grid is a row-major 2D array of fixed-size elements backed by a single
// contiguous, zero-initialized buffer. The shape (rows, cols, element size)
// lives on the handle rather than behind the returned pointer, and row views
// are derived slices into the backing buffer.
//
// # Quick Start
//
//	g, err := gridmem.Alloc(3, 4, 4) // 3 rows of 4 32-bit cells
//	if err != nil {
//	    return err
//	}
//	defer g.Free()
//
//	g.Fill(0xFF)
//	row := g.Row(2)           // derived view, no extra allocation
//	err = g.Resize(5, 4, 4)   // grows in place, new rows zero-filled
//
// # Admission
//
// Callers that want to avoid over-committing physical memory consult the
// sysmem package (or a resource.Controller) before allocating:
//
//	if !sysmem.Available(gridmem.SizeEstimate(n, m, 8), 0.5) {
//	    return gridmem.ErrOutOfMemory
//	}
//
// # Concurrency
//
// A Grid is not safe for concurrent use. Resize and Free invalidate row views
// that other goroutines may hold. Distinct grids are independent and may be
// used from different goroutines.
package gridmem
