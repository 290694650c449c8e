//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package mmfile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// mapRegion maps [base, base+capacity) of f read-only through mmap-go,
// which covers Windows file mappings and the remaining unix flavours.
func mapRegion(f *os.File, base int64, capacity int) ([]byte, func() error, error) {
	m, err := mmap.MapRegion(f, capacity, mmap.RDONLY, 0, base)
	if err != nil {
		return nil, nil, &Error{Op: "map region", Err: err}
	}
	unmap := func() error {
		if err := m.Unmap(); err != nil {
			return &Error{Op: "unmap", Err: err}
		}
		return nil
	}
	return []byte(m), unmap, nil
}
