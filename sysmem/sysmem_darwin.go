//go:build darwin

package sysmem

import (
	"os"

	"golang.org/x/sys/unix"
)

// readStats counts free plus speculative (reclaimable) pages, the sysctl
// analogue of the Mach vm statistics free_count + inactive_count.
func readStats() (Stats, error) {
	free, err := unix.SysctlUint32("vm.page_free_count")
	if err != nil {
		return Stats{}, err
	}

	speculative, err := unix.SysctlUint32("vm.page_speculative_count")
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		PageSize:       uint64(os.Getpagesize()), //nolint:gosec // page size is positive
		AvailablePages: uint64(free) + uint64(speculative),
	}, nil
}
