// Package hexfmt renders byte pages as offset, hex, and text columns.
package hexfmt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

// DefaultBytesPerLine is the row width of the viewer.
const DefaultBytesPerLine = 8

// MaxBytesPerLine bounds the row width accepted from configuration.
const MaxBytesPerLine = 64

const hexDigits = "0123456789ABCDEF"

// Layout controls how a page of bytes is split into rows.
type Layout struct {
	BytesPerLine int
	// OffsetWidth is the number of hex digits in the offset column.
	OffsetWidth int
	// Charset decodes the text column; nil shows printable ASCII only.
	Charset *charmap.Charmap
}

// NewLayout returns a layout sized for a file of fileLength bytes.
func NewLayout(fileLength int64, bytesPerLine int, cs *charmap.Charmap) Layout {
	if bytesPerLine <= 0 {
		bytesPerLine = DefaultBytesPerLine
	}
	return Layout{
		BytesPerLine: bytesPerLine,
		OffsetWidth:  OffsetWidth(fileLength),
		Charset:      cs,
	}
}

// OffsetWidth returns how many hex digits the largest offset in a file of
// fileLength bytes needs, at least one.
func OffsetWidth(fileLength int64) int {
	if fileLength <= 1 {
		return 1
	}
	return len(strconv.FormatInt(fileLength-1, 16))
}

// Page is a rendered block of rows, one entry per row in each column.
type Page struct {
	Offsets []string
	Hex     []string
	Text    []string
}

// Rows returns the number of rows in the page.
func (p Page) Rows() int { return len(p.Offsets) }

// Format renders data, which was read from start, into rows.
func (l Layout) Format(start int64, data []byte) Page {
	width := l.BytesPerLine
	if width <= 0 {
		width = DefaultBytesPerLine
	}
	rows := (len(data) + width - 1) / width
	p := Page{
		Offsets: make([]string, 0, rows),
		Hex:     make([]string, 0, rows),
		Text:    make([]string, 0, rows),
	}
	for i := 0; i < len(data); i += width {
		end := min(i+width, len(data))
		row := data[i:end]
		p.Offsets = append(p.Offsets, l.Offset(start+int64(i)))
		p.Hex = append(p.Hex, l.HexRow(row))
		p.Text = append(p.Text, l.TextRow(row))
	}
	return p
}

// Offset formats off as upper-case hex padded to OffsetWidth.
func (l Layout) Offset(off int64) string {
	s := strings.ToUpper(strconv.FormatInt(off, 16))
	if pad := l.OffsetWidth - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	return s
}

// HexRow formats row as space separated byte pairs, padded to a full row
// so the text column lines up on a short last row.
func (l Layout) HexRow(row []byte) string {
	width := max(l.BytesPerLine, len(row))
	var b strings.Builder
	b.Grow(width*3 - 1)
	for i := 0; i < width; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i < len(row) {
			b.WriteByte(hexDigits[row[i]>>4])
			b.WriteByte(hexDigits[row[i]&0x0F])
		} else {
			b.WriteString("  ")
		}
	}
	return b.String()
}

// TextRow renders row as characters, replacing anything unprintable with '.'.
func (l Layout) TextRow(row []byte) string {
	var b strings.Builder
	b.Grow(len(row))
	for _, c := range row {
		b.WriteRune(l.char(c))
	}
	return b.String()
}

func (l Layout) char(c byte) rune {
	if l.Charset == nil {
		if c < 0x20 || c > 0x7E {
			return '.'
		}
		return rune(c)
	}
	r := l.Charset.DecodeByte(c)
	if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
		return '.'
	}
	return r
}

// Dump writes length bytes of r starting at start as a classic hex dump:
//
//	0000: 48 65 6C 6C 6F 2C 20 77  |Hello, w|
//
// It stops quietly at end of file.
func (l Layout) Dump(w io.Writer, r io.ReaderAt, start, length int64) error {
	const rowsPerRead = 512
	width := l.BytesPerLine
	if width <= 0 {
		width = DefaultBytesPerLine
	}
	buf := make([]byte, width*rowsPerRead)

	for done := int64(0); done < length; {
		chunk := buf
		if rest := length - done; rest < int64(len(chunk)) {
			chunk = chunk[:rest]
		}
		n, err := r.ReadAt(chunk, start+done)
		if n > 0 {
			page := l.Format(start+done, chunk[:n])
			for i := 0; i < page.Rows(); i++ {
				if _, werr := fmt.Fprintf(w, "%s: %s  |%s|\n", page.Offsets[i], page.Hex[i], page.Text[i]); werr != nil {
					return werr
				}
			}
			done += int64(n)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
	return nil
}
