//go:build linux

package sysmem

import (
	"os"

	"golang.org/x/sys/unix"
)

// readStats reports free physical pages from sysinfo(2), the same counter
// get_avphys_pages(3) exposes.
func readStats() (Stats, error) {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return Stats{}, err
	}

	pageSize := uint64(os.Getpagesize()) //nolint:gosec // page size is positive
	freeBytes := uint64(si.Freeram) * uint64(si.Unit)

	return Stats{
		PageSize:       pageSize,
		AvailablePages: freeBytes / pageSize,
	}, nil
}
