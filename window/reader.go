package window

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/joshuapare/hexkit/pkg/types"
)

// Reader serves arbitrary byte ranges of a file through at most two mapped
// windows. It is not safe for concurrent use; open one Reader per goroutine.
type Reader struct {
	capacity  int64
	maxSlides int
	opener    Opener
	log       *slog.Logger

	path    string
	mapping Factory
	size    int64

	state     State
	lowest    int64
	primary   View
	secondary View

	// failed holds the I/O error that left the windows indeterminate.
	failed error
	stats  Stats
}

// New returns a Reader with no file open.
func New(opts Options) *Reader {
	r := &Reader{
		capacity:  DefaultCapacity,
		maxSlides: DefaultMaxSlides,
		opener:    OpenMapped,
		log:       slog.New(slog.DiscardHandler),
	}
	if opts.WindowCapacity > 0 {
		r.capacity = int64(opts.WindowCapacity)
	}
	if opts.MaxSlides > 0 {
		r.maxSlides = opts.MaxSlides
	}
	if opts.Opener != nil {
		r.opener = opts.Opener
	} else {
		r.capacity = alignCapacity(r.capacity)
	}
	if opts.Logger != nil {
		r.log = opts.Logger
	}
	return r
}

// Open releases any current windows and mapping, then opens path and
// returns its length. On failure the reader is left with no file open.
func (r *Reader) Open(path string) (int64, error) {
	releaseErr := r.release()
	r.path = ""
	r.size = 0
	r.failed = nil
	if releaseErr != nil {
		return 0, types.IOFailure("release previous file", releaseErr)
	}

	f, err := r.opener(path)
	if err != nil {
		return 0, types.FileAccess(path, err)
	}
	size, err := f.Size()
	if err != nil {
		_ = f.Close()
		return 0, types.FileAccess(path, err)
	}

	r.mapping = f
	r.path = path
	r.size = size
	r.log.Debug("file opened", "path", path, "size", size, "capacity", r.capacity)
	return size, nil
}

// Close releases the windows, then the mapping.
func (r *Reader) Close() error {
	err := r.release()
	r.path = ""
	r.size = 0
	return err
}

// release disposes secondary, primary, then the mapping, and resets the
// state to uninitialized.
func (r *Reader) release() error {
	err := r.dropWindows()
	if r.mapping != nil {
		if cerr := r.mapping.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		r.mapping = nil
	}
	return err
}

func (r *Reader) dropWindows() error {
	var err error
	if r.secondary != nil {
		err = errors.Join(err, r.dispose(r.secondary))
		r.secondary = nil
	}
	if r.primary != nil {
		err = errors.Join(err, r.dispose(r.primary))
		r.primary = nil
	}
	r.state = StateUninitialized
	r.lowest = 0
	return err
}

// ReadRange returns the bytes at [start, start+length), with length clamped
// to the current end of file. A start at or past the end yields an empty
// slice.
func (r *Reader) ReadRange(start int64, length int32) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("length=%d: %w", length, types.ErrNegativeLength)
	}
	n, err := r.prepare(start, int64(length))
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if err := r.fill(buf, start); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadRangeInto fills dst with the bytes at start, clamped to the end of
// file, and returns how many bytes were written. The tail of dst past the
// returned count is cleared.
func (r *Reader) ReadRangeInto(dst []byte, start int64) (int, error) {
	n, err := r.prepare(start, int64(len(dst)))
	if err != nil {
		return 0, err
	}
	clear(dst[n:])
	if n == 0 {
		return 0, nil
	}
	if err := r.fill(dst[:n], start); err != nil {
		return 0, err
	}
	return int(n), nil
}

// ReadAt implements io.ReaderAt on top of ReadRangeInto.
func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
	n, err := r.ReadRangeInto(p, off)
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// prepare validates a request and returns its length clamped against a
// freshly queried file size.
func (r *Reader) prepare(start, n int64) (int64, error) {
	if r.mapping == nil {
		return 0, types.ErrNotOpen
	}
	if start < 0 {
		return 0, fmt.Errorf("start=%d: %w", start, types.ErrNegativeOffset)
	}
	if n < 0 {
		return 0, fmt.Errorf("length=%d: %w", n, types.ErrNegativeLength)
	}
	if r.failed != nil {
		return 0, fmt.Errorf("%w: %w", types.ErrReaderFailed, r.failed)
	}
	size, err := r.mapping.Size()
	if err != nil {
		return 0, r.fail(types.IOFailure("query file size", err))
	}
	r.size = size
	return clampLength(start, n, size), nil
}

// fill serves buf in chunks of at most one window capacity, so every chunk
// fits the dual layout after at most one slide.
func (r *Reader) fill(buf []byte, start int64) error {
	r.stats.Reads++
	for off := 0; off < len(buf); {
		chunk := len(buf) - off
		if int64(chunk) > r.capacity {
			chunk = int(r.capacity)
		}
		if err := r.fillChunk(buf[off:off+chunk], start+int64(off)); err != nil {
			return err
		}
		off += chunk
	}
	return nil
}

func (r *Reader) fillChunk(buf []byte, start int64) error {
	if r.state == StateUninitialized {
		if err := r.setup(); err != nil {
			return err
		}
	}
	switch r.state {
	case StateSingle:
		return r.readSingle(buf, start)
	case StateDual:
		return r.readDual(buf, start)
	default:
		return fmt.Errorf("state %s: %w", r.state, types.ErrPrecondition)
	}
}

func (r *Reader) geometry() geometry {
	return geometry{capacity: r.capacity, size: r.size}
}

// setup creates the first window or windows for the open file.
func (r *Reader) setup() error {
	single, dual, isDual := r.geometry().initial()
	if !isDual {
		v, err := r.create(single)
		if err != nil {
			return r.fail(err)
		}
		r.primary = v
		r.state = StateSingle
		return nil
	}

	p, err := r.create(dual.primary)
	if err != nil {
		return r.fail(err)
	}
	s, err := r.create(dual.secondary)
	if err != nil {
		_ = r.dispose(p)
		return r.fail(err)
	}
	r.primary, r.secondary = p, s
	r.lowest = dual.lowest
	r.state = StateDual
	return nil
}

// readSingle copies from the window covering the whole file. A range past
// that window means the file grew after the window was created.
func (r *Reader) readSingle(buf []byte, start int64) error {
	local := start - r.primary.Base()
	if local < 0 || local+int64(len(buf)) > int64(r.primary.Cap()) {
		return r.fail(types.IOFailure("read single window",
			fmt.Errorf("range [%d,%d) outside window of %d bytes; file changed size",
				start, start+int64(len(buf)), r.primary.Cap())))
	}
	if err := r.primary.ReadAt(buf, int(local)); err != nil {
		return r.fail(types.IOFailure("read window", err))
	}
	return nil
}

func (r *Reader) readDual(buf []byte, start int64) error {
	n := int64(len(buf))
	g := r.geometry()
	for slides := 0; ; slides++ {
		cur := r.layout()
		act := g.classify(cur, start, n)
		if act == actionCopy {
			return r.copyDual(buf, g.split(cur, start, n))
		}
		if slides >= r.maxSlides {
			return fmt.Errorf("start=%d length=%d after %d slides: %w", start, n, slides, types.ErrSlideLoop)
		}

		var target pair
		if act == actionForward {
			target = g.forward(start, n)
			r.stats.ForwardSlides++
		} else {
			target = g.backward(start)
			r.stats.BackwardSlides++
		}
		r.log.Debug("window slide", "direction", act.String(),
			"from", cur.lowest, "to", target.lowest, "start", start, "length", n)
		if err := r.moveTo(target); err != nil {
			return err
		}
	}
}

func (r *Reader) copyDual(buf []byte, plan copyPlan) error {
	if plan.primaryLen > 0 {
		if err := r.primary.ReadAt(buf[:plan.primaryLen], int(plan.primaryOff)); err != nil {
			return r.fail(types.IOFailure("read primary window", err))
		}
	}
	if plan.secondaryLen > 0 {
		if plan.primaryLen > 0 {
			r.stats.SplitReads++
		}
		dst := buf[plan.primaryLen : plan.primaryLen+plan.secondaryLen]
		if err := r.secondary.ReadAt(dst, int(plan.secondaryOff)); err != nil {
			return r.fail(types.IOFailure("read secondary window", err))
		}
	}
	return nil
}

// layout describes the live dual windows as a pair.
func (r *Reader) layout() pair {
	return pair{
		lowest:    r.lowest,
		primary:   spanOf(r.primary),
		secondary: spanOf(r.secondary),
	}
}

// moveTo replaces the dual windows with target, keeping any current window
// whose span already matches a target slot. Discarded windows are disposed
// before their replacements are created.
func (r *Reader) moveTo(target pair) error {
	current := [2]View{r.primary, r.secondary}
	keep, dispose := reuse(
		[2]span{spanOf(r.primary), spanOf(r.secondary)},
		[2]span{target.primary, target.secondary},
		[2]bool{r.primary != nil, r.secondary != nil},
	)

	var next [2]View
	for slot, j := range keep {
		if j >= 0 {
			next[slot] = current[j]
		}
	}
	var err error
	for _, j := range dispose {
		err = errors.Join(err, r.dispose(current[j]))
	}
	r.primary, r.secondary = next[0], next[1]
	if err != nil {
		return r.fail(types.IOFailure("dispose window", err))
	}

	want := [2]span{target.primary, target.secondary}
	for slot := range next {
		if next[slot] != nil {
			continue
		}
		v, err := r.create(want[slot])
		if err != nil {
			return r.fail(err)
		}
		next[slot] = v
		r.primary, r.secondary = next[0], next[1]
	}
	r.lowest = target.lowest
	return nil
}

func (r *Reader) create(s span) (View, error) {
	if s.cap > math.MaxInt {
		return nil, types.IOFailure("create view", fmt.Errorf("capacity %d overflows int", s.cap))
	}
	v, err := r.mapping.CreateView(s.base, int(s.cap))
	if err != nil {
		return nil, types.IOFailure(fmt.Sprintf("create view [%d,%d)", s.base, s.end()), err)
	}
	r.stats.Creates++
	r.log.Debug("window created", "base", s.base, "cap", s.cap)
	return v, nil
}

func (r *Reader) dispose(v View) error {
	r.stats.Disposes++
	r.log.Debug("window disposed", "base", v.Base(), "cap", v.Cap())
	return v.Close()
}

// fail records err as the reason the reader is unusable, drops whatever
// windows remain, and returns err.
func (r *Reader) fail(err error) error {
	r.failed = err
	_ = r.dropWindows()
	return err
}

func spanOf(v View) span {
	if v == nil {
		return span{}
	}
	return span{base: v.Base(), cap: int64(v.Cap())}
}

// Path returns the open file's path, or "" when none is open.
func (r *Reader) Path() string { return r.path }

// Size returns the file length seen by the most recent Open or read.
func (r *Reader) Size() int64 { return r.size }

// Capacity returns the full window span.
func (r *Reader) Capacity() int64 { return r.capacity }

// State returns the current window state.
func (r *Reader) State() State { return r.state }

// Err returns the I/O failure that made the reader unusable, if any.
func (r *Reader) Err() error { return r.failed }

// Stats returns the window activity counters.
func (r *Reader) Stats() Stats { return r.stats }

// Snapshot returns the live window layout.
func (r *Reader) Snapshot() Snapshot {
	s := Snapshot{State: r.state, Lowest: r.lowest}
	if r.primary != nil {
		s.Windows = append(s.Windows, WindowInfo{Base: r.primary.Base(), Cap: r.primary.Cap()})
	}
	if r.secondary != nil {
		s.Windows = append(s.Windows, WindowInfo{Base: r.secondary.Base(), Cap: r.secondary.Cap()})
	}
	return s
}
