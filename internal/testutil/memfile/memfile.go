// Package memfile is an in-memory stand-in for a mapped file. It simulates
// files of any size without allocating their contents and records every
// view the window reader creates and disposes.
package memfile

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/joshuapare/hexkit/window"
)

// ErrTruncated is returned when a view is read past the simulated end of file.
var ErrTruncated = errors.New("memfile: read past end of file")

// ByteAt returns the simulated content at off.
func ByteAt(off int64) byte {
	x := uint64(off)
	x ^= x >> 17
	x *= 0x9E3779B97F4A7C15
	return byte(x >> 56)
}

// Expected returns the simulated content of [start, start+n).
func Expected(start int64, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = ByteAt(start + int64(i))
	}
	return out
}

// Span is a view placement.
type Span struct {
	Base int64
	Cap  int
}

// File is a simulated file implementing window.Factory.
type File struct {
	size int64

	// SizeErr, when set, is returned by Size.
	SizeErr error
	// FailCreate, when set, is consulted before every view is created.
	FailCreate func(base int64, capacity int) error

	live     map[*View]struct{}
	Created  []Span
	Disposed []Span
	closed   bool
}

// New returns a simulated file of size bytes.
func New(size int64) *File {
	return &File{size: size, live: make(map[*View]struct{})}
}

// SetSize grows or shrinks the simulated file.
func (f *File) SetSize(size int64) { f.size = size }

// Opener returns a window.Opener that hands out f for any path.
func (f *File) Opener() window.Opener {
	return func(string) (window.Factory, error) {
		f.closed = false
		return f, nil
	}
}

// CreateView implements window.Factory.
func (f *File) CreateView(base int64, capacity int) (window.View, error) {
	if f.closed {
		return nil, os.ErrClosed
	}
	if f.FailCreate != nil {
		if err := f.FailCreate(base, capacity); err != nil {
			return nil, err
		}
	}
	if base < 0 || capacity < 0 {
		return nil, fmt.Errorf("memfile: bad view base=%d cap=%d", base, capacity)
	}
	v := &View{f: f, base: base, cap: capacity}
	f.live[v] = struct{}{}
	f.Created = append(f.Created, Span{Base: base, Cap: capacity})
	return v, nil
}

// Size implements window.Factory.
func (f *File) Size() (int64, error) {
	if f.SizeErr != nil {
		return 0, f.SizeErr
	}
	return f.size, nil
}

// Close implements window.Factory.
func (f *File) Close() error {
	f.closed = true
	return nil
}

// Closed reports whether the reader released the mapping.
func (f *File) Closed() bool { return f.closed }

// Live returns the views not yet disposed, ordered by base.
func (f *File) Live() []Span {
	out := make([]Span, 0, len(f.live))
	for v := range f.live {
		out = append(out, Span{Base: v.base, Cap: v.cap})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Base < out[j].Base })
	return out
}

// View is a simulated mapped window.
type View struct {
	f      *File
	base   int64
	cap    int
	closed bool
}

func (v *View) Base() int64 { return v.base }

func (v *View) Cap() int { return v.cap }

func (v *View) ReadAt(p []byte, off int) error {
	if v.closed {
		return os.ErrClosed
	}
	if off < 0 || off+len(p) > v.cap {
		return fmt.Errorf("memfile: read [%d,%d) outside view of %d bytes", off, off+len(p), v.cap)
	}
	abs := v.base + int64(off)
	if abs+int64(len(p)) > v.f.size {
		return ErrTruncated
	}
	for i := range p {
		p[i] = ByteAt(abs + int64(i))
	}
	return nil
}

func (v *View) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	delete(v.f.live, v)
	v.f.Disposed = append(v.f.Disposed, Span{Base: v.base, Cap: v.cap})
	return nil
}

// FS maps paths to simulated files.
type FS map[string]*File

// Open is a window.Opener over the map. Unknown paths fail with os.ErrNotExist.
func (fs FS) Open(path string) (window.Factory, error) {
	f, ok := fs[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	f.closed = false
	return f, nil
}
