// Package scroll maps a scrollbar index onto file offsets.
//
// A file is shown as rows of BytesPerLine bytes. Scrollbar indices are
// int32, so files with more rows than math.MaxInt32 are scrolled several
// rows per index.
package scroll

import "math"

// Geometry describes the file and the viewport.
type Geometry struct {
	FileLength   int64
	BytesPerLine int
	VisibleLines int
}

// Scroll is the computed scrollbar range for a Geometry.
type Scroll struct {
	Geometry

	// Lines is the total number of rows in the file.
	Lines int64
	// LinesPerIndex is how many rows one scrollbar step moves.
	LinesPerIndex int64
	// Page is the number of indices covered by one viewport.
	Page int
	// MaxIndex is the highest index that still fills the viewport.
	MaxIndex int32
}

// Compute derives the scrollbar range for g.
func Compute(g Geometry) Scroll {
	if g.BytesPerLine <= 0 {
		g.BytesPerLine = 1
	}
	if g.VisibleLines < 0 {
		g.VisibleLines = 0
	}
	if g.FileLength < 0 {
		g.FileLength = 0
	}
	s := Scroll{Geometry: g, LinesPerIndex: 1}
	s.Lines = ceilDiv(g.FileLength, int64(g.BytesPerLine))

	if s.Lines > math.MaxInt32 {
		s.LinesPerIndex = ceilDiv(s.Lines, math.MaxInt32)
		s.Page = int(int64(g.VisibleLines) / s.LinesPerIndex)
		s.MaxIndex = int32(max(ceilDiv(s.Lines, s.LinesPerIndex)-int64(s.Page), 0))
		return s
	}

	s.Page = g.VisibleLines
	if s.Lines > int64(g.VisibleLines) {
		s.MaxIndex = int32(s.Lines - int64(g.VisibleLines))
	}
	return s
}

// Clamp limits index to [0, MaxIndex].
func (s Scroll) Clamp(index int64) int32 {
	if index < 0 {
		return 0
	}
	if index > int64(s.MaxIndex) {
		return s.MaxIndex
	}
	return int32(index)
}

// Offset returns the file offset of the first visible byte at index.
func (s Scroll) Offset(index int32) int64 {
	return int64(index) * s.LinesPerIndex * int64(s.BytesPerLine)
}

// IndexOf returns the index whose page starts at or before off.
func (s Scroll) IndexOf(off int64) int32 {
	if off <= 0 {
		return 0
	}
	return s.Clamp(off / (s.LinesPerIndex * int64(s.BytesPerLine)))
}

// ReadLength is the number of bytes one viewport shows.
func (s Scroll) ReadLength() int32 {
	n := int64(s.VisibleLines) * int64(s.BytesPerLine)
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}

func ceilDiv(a, b int64) int64 {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
