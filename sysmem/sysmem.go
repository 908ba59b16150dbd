package sysmem

import (
	"log/slog"
	"os"
)

// Stats is a point-in-time view of the OS page size and the count of
// physical pages currently available for allocation.
type Stats struct {
	PageSize       uint64
	AvailablePages uint64
}

// osExit is the unrecoverable-failure exit seam.
var osExit = os.Exit

// Read returns current memory statistics from the operating system.
//
// A failing OS query is unrecoverable: no sensible boolean answer to an
// admission check exists without it, so the process terminates.
func Read() Stats {
	st, err := readStats()
	if err != nil {
		slog.Error("sysmem: memory statistics query failed", "error", err)
		osExit(1)
	}
	return st
}

// Available reports whether requested bytes fit within the given fraction of
// currently available physical memory.
func Available(requested uint64, fraction float64) bool {
	return AvailableIn(Read(), requested, fraction)
}

// AvailableIn is the pure admission check behind Available: it computes
// requested/PageSize pages (integer division) and compares the ratio of
// requested to available pages against fraction.
//
// A zero-page request always fits, regardless of system state.
func AvailableIn(st Stats, requested uint64, fraction float64) bool {
	if st.PageSize == 0 {
		return false
	}

	requestedPages := requested / st.PageSize
	if requestedPages == 0 {
		return true
	}
	if st.AvailablePages == 0 {
		return false
	}

	return float64(requestedPages)/float64(st.AvailablePages) <= fraction
}
