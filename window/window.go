package window

import (
	"fmt"
	"log/slog"
)

// DefaultCapacity is the span of every window except the last one in a file.
const DefaultCapacity = 16 << 20

// DefaultMaxSlides bounds the slide loop for a single chunk. A correct plan
// needs at most one slide per chunk; the slack catches regressions.
const DefaultMaxSlides = 8

// State is the reader's window state.
type State int

const (
	StateUninitialized State = iota // no windows, created lazily on first read
	StateSingle                     // one window spans the whole file
	StateDual                       // two adjacent windows slide over the file
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSingle:
		return "single"
	case StateDual:
		return "dual"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// View is a mapped window over [Base(), Base()+Cap()) of a file.
type View interface {
	Base() int64
	Cap() int
	// ReadAt fills p from the view-local offset off.
	ReadAt(p []byte, off int) error
	Close() error
}

// Factory is the mapping handle a Reader creates its views from.
type Factory interface {
	CreateView(base int64, capacity int) (View, error)
	// Size queries the current file length.
	Size() (int64, error)
	Close() error
}

// Opener opens the mapping handle for path.
type Opener func(path string) (Factory, error)

// Options configures a Reader. The zero value is usable.
type Options struct {
	// WindowCapacity is the span of a full window. Defaults to DefaultCapacity.
	// With the default opener it is rounded up to a multiple of
	// mmfile.Granularity.
	WindowCapacity int
	// Opener defaults to OpenMapped.
	Opener Opener
	// Logger receives debug events for window creation and slides.
	Logger *slog.Logger
	// MaxSlides defaults to DefaultMaxSlides.
	MaxSlides int
}

// WindowInfo describes one live window.
type WindowInfo struct {
	Base int64 `json:"base"`
	Cap  int   `json:"cap"`
}

// End returns the offset one past the window's last byte.
func (w WindowInfo) End() int64 { return w.Base + int64(w.Cap) }

// Snapshot captures the reader's window layout.
type Snapshot struct {
	State State `json:"-"`
	// Lowest is the block index of the primary window.
	Lowest int64 `json:"lowest"`
	// Windows holds the primary then, in dual state, the secondary.
	Windows []WindowInfo `json:"windows"`
}

// Contiguous reports whether the secondary starts where the primary ends.
// Layouts with fewer than two windows are trivially contiguous.
func (s Snapshot) Contiguous() bool {
	if len(s.Windows) < 2 {
		return true
	}
	return s.Windows[1].Base == s.Windows[0].End()
}

// Stats counts window activity since the reader was created.
type Stats struct {
	Creates        uint64 `json:"creates"`
	Disposes       uint64 `json:"disposes"`
	ForwardSlides  uint64 `json:"forward_slides"`
	BackwardSlides uint64 `json:"backward_slides"`
	Reads          uint64 `json:"reads"`
	SplitReads     uint64 `json:"split_reads"`
}
