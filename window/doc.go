// Package window reads byte ranges of arbitrarily large files through two
// sliding memory-mapped windows.
//
// A Reader maps at most two adjacent windows of a fixed capacity (16 MiB by
// default), so resident mapped memory stays near twice the capacity no
// matter how large the file is. Windows are aligned on capacity-sized
// blocks; the last window in a file is clamped to the bytes that remain.
//
// On every read the Reader picks one of four paths:
//
//   - Uninitialized: create the windows. A file no larger than one window
//     gets a single window over the whole file and never slides.
//   - Forward slide: the range ends past the secondary window. The old
//     secondary becomes the primary and a new secondary is mapped after it.
//     Jumps further than one block rebuild both windows.
//   - Backward slide: the range starts before the primary window. The old
//     primary becomes the secondary and a new primary is mapped before it.
//   - Covered: copy from the primary, the secondary, or both, split at the
//     break point where the primary ends.
//
// Sequential scrolling therefore touches each block boundary once per
// traversal rather than once per read.
//
// Basic usage:
//
//	r := window.New(window.Options{})
//	defer r.Close()
//
//	size, err := r.Open("disk.img")
//	if err != nil {
//	    return err
//	}
//	page, err := r.ReadRange(size/2, 4096)
//
// Errors are *types.Error values: FileAccess from Open, IO when a view
// cannot be created or read (the reader is then unusable until reopened),
// and Precondition for negative arguments or reads before Open.
//
// A Reader is single-threaded. It performs no locking; use one Reader per
// goroutine.
package window
