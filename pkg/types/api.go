package types

import "errors"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFileAccess   ErrKind = iota // path missing, permission denied, exclusively locked
	ErrKindIO                          // mapping or view failure after a successful open
	ErrKindPrecondition                // caller misuse: negative offsets, read before open
)

// String returns the category name used in messages and JSON output.
func (k ErrKind) String() string {
	switch k {
	case ErrKindFileAccess:
		return "file access"
	case ErrKindIO:
		return "i/o failure"
	case ErrKindPrecondition:
		return "precondition violation"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the category sentinel for e's Kind, so
// errors.Is(err, ErrIOFailure) holds for every IO-kind error in a chain.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t == categoryOf(e.Kind)
}

// Category sentinels. Compare with errors.Is.
var (
	// ErrFileAccess indicates the file could not be opened for reading.
	ErrFileAccess = &Error{Kind: ErrKindFileAccess, Msg: "file access error"}
	// ErrIOFailure indicates a window or mapping operation failed after open.
	ErrIOFailure = &Error{Kind: ErrKindIO, Msg: "i/o failure"}
	// ErrPrecondition indicates the reader was used incorrectly.
	ErrPrecondition = &Error{Kind: ErrKindPrecondition, Msg: "precondition violation"}
)

// Specific sentinels returned by the window reader.
var (
	// ErrNotOpen is returned when reading before a successful Open.
	ErrNotOpen = &Error{Kind: ErrKindPrecondition, Msg: "no file is open"}
	// ErrNegativeOffset is returned for a start offset below zero.
	ErrNegativeOffset = &Error{Kind: ErrKindPrecondition, Msg: "negative start offset"}
	// ErrNegativeLength is returned for a requested length below zero.
	ErrNegativeLength = &Error{Kind: ErrKindPrecondition, Msg: "negative read length"}
	// ErrSlideLoop is returned when window sliding fails to converge.
	ErrSlideLoop = &Error{Kind: ErrKindPrecondition, Msg: "window slide did not converge"}
	// ErrReaderFailed is returned by every read after an I/O failure until the file is reopened.
	ErrReaderFailed = &Error{Kind: ErrKindIO, Msg: "reader unusable after i/o failure, reopen the file"}
)

func categoryOf(k ErrKind) *Error {
	switch k {
	case ErrKindFileAccess:
		return ErrFileAccess
	case ErrKindIO:
		return ErrIOFailure
	case ErrKindPrecondition:
		return ErrPrecondition
	default:
		return nil
	}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// FileAccess wraps err as a FileAccess error for path.
func FileAccess(path string, err error) error {
	return &Error{Kind: ErrKindFileAccess, Msg: "open " + path, Err: err}
}

// IOFailure wraps err as an IO error describing op.
func IOFailure(op string, err error) error {
	return &Error{Kind: ErrKindIO, Msg: op, Err: err}
}
