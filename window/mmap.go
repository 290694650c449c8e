package window

import "github.com/joshuapare/hexkit/internal/mmfile"

// OpenMapped is the default Opener: a read-only memory mapping of path.
// Window capacities must be multiples of mmfile.Granularity; New rounds the
// capacity up when it installs this opener.
func OpenMapped(path string) (Factory, error) {
	f, err := mmfile.Open(path)
	if err != nil {
		return nil, err
	}
	return mappedFile{f}, nil
}

type mappedFile struct {
	f *mmfile.File
}

func (m mappedFile) CreateView(base int64, capacity int) (View, error) {
	v, err := m.f.View(base, capacity)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (m mappedFile) Size() (int64, error) { return m.f.Size() }

func (m mappedFile) Close() error { return m.f.Close() }

// alignCapacity rounds c up to a multiple of mmfile.Granularity.
func alignCapacity(c int64) int64 {
	if rem := c % mmfile.Granularity; rem != 0 {
		c += mmfile.Granularity - rem
	}
	return c
}
