package hexfmt

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// charsets maps encoding names and common aliases to their code pages.
// "ascii" maps to nil, which Layout treats as printable ASCII only.
var charsets = map[string]*charmap.Charmap{
	"ascii":        nil,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-5":   charmap.ISO8859_5,
	"iso-8859-15":  charmap.ISO8859_15,
	"cp437":        charmap.CodePage437,
	"cp850":        charmap.CodePage850,
	"cp866":        charmap.CodePage866,
	"koi8-r":       charmap.KOI8R,
	"koi8-u":       charmap.KOI8U,
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"cp1251":       charmap.Windows1251,
	"cp1252":       charmap.Windows1252,
	"macintosh":    charmap.Macintosh,
}

// Lookup returns the code page for name. Names are case-insensitive and an
// empty name means ASCII.
func Lookup(name string) (*charmap.Charmap, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, nil
	}
	cs, ok := charsets[key]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q (known: %s)", name, strings.Join(Encodings(), ", "))
	}
	return cs, nil
}

// Encodings lists the accepted encoding names in sorted order.
func Encodings() []string {
	names := make([]string, 0, len(charsets))
	for name := range charsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
