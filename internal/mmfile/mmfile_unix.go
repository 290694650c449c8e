//go:build linux || darwin || freebsd || netbsd || openbsd

package mmfile

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// mapRegion maps [base, base+capacity) of f read-only.
func mapRegion(f *os.File, base int64, capacity int) ([]byte, func() error, error) {
	data, err := unix.Mmap(int(f.Fd()), base, capacity, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, &Error{Op: "mmap", Err: err}
	}
	// Scrolling reads mostly move forward; the hint is advisory.
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	unmap := func() error {
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		if err != nil {
			return &Error{Op: "munmap", Err: err}
		}
		return nil
	}
	return data, unmap, nil
}
