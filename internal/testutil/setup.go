// Package testutil writes file fixtures for tests that go through real
// memory mappings.
package testutil

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes data to name in a fresh temp directory and returns the path.
// Calls t.Fatal if the write fails.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

// RandomFile writes size bytes of noise seeded by seed and returns the path
// and the content, so reads can be checked against it.
//
// Example:
//
//	path, want := testutil.RandomFile(t, 1<<20, 1)
//	got, _ := r.ReadRange(4096, 16)
//	require.Equal(t, want[4096:4112], got)
func RandomFile(t *testing.T, size int, seed uint64) (string, []byte) {
	t.Helper()
	data := make([]byte, size)
	rng := rand.New(rand.NewPCG(seed, uint64(size)))
	for i := range data {
		data[i] = byte(rng.Uint32())
	}
	return WriteFile(t, "random.bin", data), data
}

// PatternData returns n bytes where byte i is i mod 251. The prime period
// keeps window and page boundaries from lining up with the pattern.
func PatternData(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

// Truncate shrinks or grows the file at path. Calls t.Fatal on failure.
func Truncate(t *testing.T, path string, size int64) {
	t.Helper()
	if err := os.Truncate(path, size); err != nil {
		t.Fatalf("Failed to truncate fixture: %v", err)
	}
}
