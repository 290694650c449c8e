package window_test

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hexkit/internal/mmfile"
	"github.com/joshuapare/hexkit/internal/testutil"
	"github.com/joshuapare/hexkit/pkg/types"
	"github.com/joshuapare/hexkit/window"
)

func TestMappedReaderMatchesFileContents(t *testing.T) {
	const small = mmfile.Granularity
	path, want := testutil.RandomFile(t, 5*small+small/3, 3)

	r := window.New(window.Options{WindowCapacity: small})
	defer r.Close()

	size, err := r.Open(path)
	require.NoError(t, err)
	require.Equal(t, int64(len(want)), size)

	rng := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 500; i++ {
		start := rng.Int64N(size)
		n := int32(rng.IntN(2 * small))
		got, err := r.ReadRange(start, n)
		require.NoError(t, err)
		end := start + int64(len(got))
		require.Equal(t, want[start:end], got, "read %d at %d+%d", i, start, n)
		require.True(t, r.Snapshot().Contiguous())
	}
}

func TestMappedReaderScenario(t *testing.T) {
	// 40 MiB over 16 MiB windows, scaled down to the mapping granularity.
	const small = mmfile.Granularity
	path, want := testutil.RandomFile(t, 2*small+small/2, 3)

	r := window.New(window.Options{WindowCapacity: small})
	defer r.Close()
	_, err := r.Open(path)
	require.NoError(t, err)

	got, err := r.ReadRange(0, 128)
	require.NoError(t, err)
	assert.Equal(t, want[:128], got)

	got, err = r.ReadRange(2*small, 128)
	require.NoError(t, err)
	assert.Equal(t, want[2*small:2*small+128], got)
	assert.Equal(t, []window.WindowInfo{{Base: small, Cap: small}, {Base: 2 * small, Cap: small / 2}}, r.Snapshot().Windows)

	got, err = r.ReadRange(0, 128)
	require.NoError(t, err)
	assert.Equal(t, want[:128], got)
	assert.Equal(t, []window.WindowInfo{{Base: 0, Cap: small}, {Base: small, Cap: small}}, r.Snapshot().Windows)
}

func TestMappedReaderAlignsCapacity(t *testing.T) {
	const small = mmfile.Granularity
	path, want := testutil.RandomFile(t, 3*small+77, 5)

	r := window.New(window.Options{WindowCapacity: 1000})
	defer r.Close()
	assert.Equal(t, int64(small), r.Capacity())

	_, err := r.Open(path)
	require.NoError(t, err)
	for _, start := range []int64{0, 2*small + 10, small - 5, 3 * small} {
		got, err := r.ReadRange(start, 64)
		require.NoError(t, err)
		assert.Equal(t, want[start:start+int64(len(got))], got)
	}
	assert.Equal(t, window.StateDual, r.State())
	assert.NoError(t, r.Err())

	// Custom openers keep the requested capacity.
	custom := window.New(window.Options{WindowCapacity: 1000, Opener: window.OpenMapped})
	assert.Equal(t, int64(1000), custom.Capacity())
}

func TestMappedReaderOpenErrors(t *testing.T) {
	r := window.New(window.Options{})
	defer r.Close()

	_, err := r.Open(filepath.Join(t.TempDir(), "nope.bin"))
	assert.ErrorIs(t, err, types.ErrFileAccess)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMappedReaderDeletedFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("open files cannot be removed on windows")
	}
	path, _ := testutil.RandomFile(t, 1000, 3)

	r := window.New(window.Options{})
	defer r.Close()
	_, err := r.Open(path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	_, err = r.ReadRange(0, 10)
	assert.ErrorIs(t, err, types.ErrIOFailure)
}
