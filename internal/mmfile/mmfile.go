// Package mmfile provides read-only memory-mapped views over a file.
//
// A File is the mapping handle: it keeps the descriptor open and hands out
// Views, each covering [base, base+capacity) of the file. Views are mapped
// independently so a caller can bound how much of a large file is resident
// at once.
package mmfile

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
)

// Granularity is the alignment required for view base offsets. It matches
// the Windows allocation granularity, which is a multiple of every unix page
// size we run on.
const Granularity = 64 << 10

// Error represents a mapping error.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "mmfile: " + e.Op + ": " + e.Err.Error()
	}
	return "mmfile: " + e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Common errors
var (
	ErrInvalidSize  = &Error{Op: "invalid size"}
	ErrUnaligned    = &Error{Op: "base offset not aligned to granularity"}
	ErrInvalidRange = &Error{Op: "invalid range"}
	ErrClosed       = &Error{Op: "closed"}
	ErrFault        = &Error{Op: "memory access fault"}
)

// File is an open, read-only file that views are mapped from.
type File struct {
	f    *os.File
	path string
}

// Open opens path for reading. No bytes are mapped until View is called.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("mmfile: %s is a directory", path)
	}
	return &File{f: f, path: path}, nil
}

// Path returns the path the file was opened with.
func (m *File) Path() string {
	return m.path
}

// Size stats the path again rather than trusting the length seen at open,
// so growth is observed and deletion surfaces as an error.
func (m *File) Size() (int64, error) {
	if m.f == nil {
		return 0, ErrClosed
	}
	info, err := os.Stat(m.path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// View maps capacity bytes starting at base. A zero capacity yields an empty
// view without touching the OS.
func (m *File) View(base int64, capacity int) (*View, error) {
	if m.f == nil {
		return nil, ErrClosed
	}
	if base < 0 || base%Granularity != 0 {
		return nil, ErrUnaligned
	}
	if capacity < 0 {
		return nil, ErrInvalidSize
	}
	if capacity == 0 {
		return &View{base: base}, nil
	}
	data, unmap, err := mapRegion(m.f, base, capacity)
	if err != nil {
		return nil, err
	}
	return &View{base: base, data: data, unmap: unmap}, nil
}

// Close releases the descriptor. Views already handed out stay valid until
// they are closed themselves.
func (m *File) Close() error {
	if m.f == nil {
		return nil
	}
	err := m.f.Close()
	m.f = nil
	return err
}

// View is one mapped range of a File.
type View struct {
	base  int64
	data  []byte
	unmap func() error
}

// Base returns the file offset of the first mapped byte.
func (v *View) Base() int64 { return v.base }

// Cap returns the number of bytes covered by the view.
func (v *View) Cap() int { return len(v.data) }

// ReadAt copies len(p) bytes starting at the view-local offset off.
// A page fault while copying (the file shrank under the mapping) is
// reported as ErrFault rather than crashing the process.
func (v *View) ReadAt(p []byte, off int) error {
	if off < 0 || off > len(v.data) || len(p) > len(v.data)-off {
		return fmt.Errorf("%w: off=%d len=%d cap=%d", ErrInvalidRange, off, len(p), len(v.data))
	}
	return guardedCopy(p, v.data[off:off+len(p)])
}

// Close unmaps the view. Closing twice is a no-op.
func (v *View) Close() error {
	if v.unmap == nil {
		return nil
	}
	err := v.unmap()
	v.unmap = nil
	v.data = nil
	return err
}

// guardedCopy copies src into dst with panic-on-fault enabled so a SIGBUS
// on a truncated mapping turns into an error.
func guardedCopy(dst, src []byte) (err error) {
	old := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(old)

	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrFault, rerr)
			} else {
				err = fmt.Errorf("%w: %v", ErrFault, r)
			}
		}
	}()

	copy(dst, src)
	return nil
}

// IsFault reports whether err came from a faulting copy.
func IsFault(err error) bool {
	return errors.Is(err, ErrFault)
}
