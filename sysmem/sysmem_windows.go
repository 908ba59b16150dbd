//go:build windows

package sysmem

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// readStats reports available physical bytes from GlobalMemoryStatusEx.
func readStats() (Stats, error) {
	var ms windows.MemoryStatusEx
	ms.Length = uint32(unsafe.Sizeof(ms))

	if err := windows.GlobalMemoryStatusEx(&ms); err != nil {
		return Stats{}, err
	}

	pageSize := uint64(os.Getpagesize()) //nolint:gosec // page size is positive

	return Stats{
		PageSize:       pageSize,
		AvailablePages: ms.AvailPhys / pageSize,
	}, nil
}
