package types

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategoryMatching(t *testing.T) {
	err := fmt.Errorf("read range: %w", IOFailure("create view", os.ErrClosed))

	assert.True(t, errors.Is(err, ErrIOFailure))
	assert.False(t, errors.Is(err, ErrFileAccess))
	assert.False(t, errors.Is(err, ErrPrecondition))
	assert.True(t, errors.Is(err, os.ErrClosed), "cause must stay reachable")
}

func TestSpecificSentinels(t *testing.T) {
	err := fmt.Errorf("start=%d: %w", -1, ErrNegativeOffset)

	assert.True(t, errors.Is(err, ErrNegativeOffset))
	assert.True(t, errors.Is(err, ErrPrecondition))
	assert.False(t, errors.Is(err, ErrNegativeLength))
	assert.False(t, errors.Is(ErrReaderFailed, ErrPrecondition))
	assert.True(t, errors.Is(ErrReaderFailed, ErrIOFailure))
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(FileAccess("/missing", os.ErrNotExist))
	require.True(t, ok)
	assert.Equal(t, ErrKindFileAccess, kind)
	assert.Equal(t, "file access", kind.String())

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorMessage(t *testing.T) {
	err := FileAccess("/tmp/x.bin", os.ErrPermission)
	assert.Equal(t, "open /tmp/x.bin: permission denied", err.Error())

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
}
