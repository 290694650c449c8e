// Package types defines the error taxonomy shared by the windowed reader,
// the command line tools, and the terminal viewer.
//
// Every failure the reader reports is a *Error carrying one of three kinds:
//   - FileAccess: the path is missing, unreadable, or exclusively locked.
//   - IO: a mapping or view operation failed after the file was opened,
//     typically because the file was truncated or deleted underneath us.
//   - Precondition: caller misuse such as negative offsets or reading before
//     any successful open.
//
// Callers branch with errors.Is against the category sentinels
// (ErrFileAccess, ErrIOFailure, ErrPrecondition) or the specific ones.
//
// This package has no dependencies beyond the standard library.
package types
