package main

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/hexkit/internal/hexfmt"
	"github.com/joshuapare/hexkit/internal/testutil/memfile"
	"github.com/joshuapare/hexkit/window"
)

// expectedPage formats the simulated content the model should show at off
func expectedPage(m Model, off int64, rows int) hexfmt.Page {
	n := min(int64(rows*m.layout.BytesPerLine), m.size-off)
	return m.layout.Format(off, memfile.Expected(off, int(n)))
}

func TestInitialPage(t *testing.T) {
	h := NewTestHelper(t, 40<<20).SendWindowSize(120, 30)
	m := h.Model()

	require.NoError(t, m.readErr)
	assert.Equal(t, 24, m.visibleLines())
	assert.Equal(t, 7, m.layout.OffsetWidth)
	assert.Equal(t, expectedPage(m, 0, 24), m.page)
	assert.Equal(t, window.StateDual, m.reader.State())

	view := m.View()
	assert.Contains(t, view, "Hex Explorer")
	assert.Contains(t, view, "0000000")
	assert.Contains(t, view, m.page.Hex[0])
	assert.Contains(t, view, "dual P[0x0,0x100000) S[0x100000,0x200000)")
}

func TestScrollKeys(t *testing.T) {
	h := NewTestHelper(t, 40<<20).SendWindowSize(120, 30)

	h.SendKey(tea.KeyDown)
	assert.Equal(t, int32(1), h.Model().index)
	assert.Equal(t, int64(8), h.Model().offset())

	h.SendKey(tea.KeyPgDown)
	assert.Equal(t, int32(25), h.Model().index)

	h.SendKeyRune('k')
	assert.Equal(t, int32(24), h.Model().index)

	h.SendKeyRune('G')
	m := h.Model()
	wantMax := int32(5<<20 - 24)
	assert.Equal(t, wantMax, m.index)
	assert.Equal(t, int64(wantMax)*8, m.offset())
	assert.Equal(t, expectedPage(m, m.offset(), 24), m.page)

	snap := m.reader.Snapshot()
	assert.True(t, snap.Contiguous())
	assert.Equal(t, int64(38), snap.Lowest)

	h.SendKey(tea.KeyPgDown)
	assert.Equal(t, wantMax, h.Model().index, "clamped at the end")

	h.SendKeyRune('g')
	assert.Equal(t, int32(0), h.Model().index)
	assert.Equal(t, expectedPage(h.Model(), 0, 24), h.Model().page)
}

func TestScaledScrolling(t *testing.T) {
	// 40 GiB has more rows than an int32 scroll index can address.
	h := NewTestHelper(t, 40<<30).SendWindowSize(120, 30)
	m := h.Model()
	assert.Equal(t, int64(3), m.scroll.LinesPerIndex)
	assert.Equal(t, 8, m.scroll.Page)

	h.SendKey(tea.KeyDown)
	assert.Equal(t, int64(24), h.Model().offset(), "one step moves three rows")

	h.SendKey(tea.KeyEnd)
	m = h.Model()
	require.NoError(t, m.readErr)
	assert.LessOrEqual(t, m.offset(), m.size)
	assert.NotEmpty(t, m.page.Offsets)
	assert.Equal(t, expectedPage(m, m.offset(), 24), m.page)
}

func TestMouseWheel(t *testing.T) {
	h := NewTestHelper(t, 1<<20).SendWindowSize(120, 30)

	h.Send(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	assert.Equal(t, int32(wheelRows), h.Model().index)

	h.Send(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	h.Send(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	assert.Equal(t, int32(0), h.Model().index)
}

func TestWindowResize(t *testing.T) {
	h := NewTestHelper(t, 1<<20).SendWindowSize(120, 30)
	assert.Len(t, h.Model().page.Offsets, 24)

	h.SendWindowSize(80, 10)
	assert.Len(t, h.Model().page.Offsets, 4)
	assert.Equal(t, int32(4), h.Model().scroll.ReadLength()/8)
}

func TestGotoOffset(t *testing.T) {
	h := NewTestHelper(t, 1<<20).SendWindowSize(120, 30)

	h.SendKeyRune(':')
	require.True(t, h.Model().gotoMode)
	assert.Contains(t, h.Model().View(), "Go to offset:")

	h.TypeString("0x100").SendKey(tea.KeyEnter)
	m := h.Model()
	assert.False(t, m.gotoMode)
	assert.Equal(t, int64(0x100), m.offset())
	assert.Equal(t, "Jumped to 0x100", m.statusMessage)
	assert.Equal(t, "00100", m.page.Offsets[0])

	// Unaligned offsets land on the row that contains them.
	h.SendKey(tea.KeyCtrlG).TypeString("1001").SendKey(tea.KeyEnter)
	assert.Equal(t, int64(1000), h.Model().offset())

	// Past the end clamps to the last page.
	h.SendKey(tea.KeyCtrlG).TypeString("99999999").SendKey(tea.KeyEnter)
	assert.Equal(t, h.Model().scroll.MaxIndex, h.Model().index)
}

func TestGotoInvalidAndCancel(t *testing.T) {
	h := NewTestHelper(t, 1<<20).SendWindowSize(120, 30)
	h.SendKey(tea.KeyDown)

	h.SendKeyRune(':').TypeString("zz").SendKey(tea.KeyEnter)
	assert.Contains(t, h.Model().statusMessage, "Invalid offset")
	assert.Equal(t, int32(1), h.Model().index)

	h.SendKeyRune(':').TypeString("0x40").SendKey(tea.KeyEsc)
	assert.False(t, h.Model().gotoMode)
	assert.Equal(t, int32(1), h.Model().index, "esc does not jump")
}

func TestHelpOverlay(t *testing.T) {
	h := NewTestHelper(t, 4096).SendWindowSize(120, 30)

	h.SendKeyRune('?')
	require.True(t, h.Model().showHelp)
	view := h.Model().View()
	assert.Contains(t, view, "Keyboard Shortcuts")
	assert.Contains(t, view, "go to offset")

	// Navigation is ignored while help is showing.
	h.SendKey(tea.KeyDown)
	assert.Equal(t, int32(0), h.Model().index)

	h.SendKey(tea.KeyEsc)
	assert.False(t, h.Model().showHelp)
	assert.NotContains(t, h.Model().View(), "Keyboard Shortcuts")
}

func TestCopyPage(t *testing.T) {
	h := NewTestHelper(t, 20).SendWindowSize(120, 30)

	h.SendKeyRune('c')
	require.Len(t, h.copied, 1)
	rows := strings.Split(h.copied[0], "\n")
	require.Len(t, rows, 3)
	assert.Equal(t, h.Model().page.Hex[0], rows[0])
	assert.Len(t, rows[2], len("00 00 00 00"), "trailing padding trimmed")
	assert.Equal(t, "Page copied to clipboard", h.Model().statusMessage)

	h.model.copyToClipboard = func(string) error { return errors.New("no display") }
	h.SendKeyRune('c')
	assert.Equal(t, "Failed to copy page", h.Model().statusMessage)
}

func TestStatusClears(t *testing.T) {
	h := NewTestHelper(t, 20).SendWindowSize(120, 30)

	_, cmd := h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	require.NotNil(t, cmd)
	require.NotEmpty(t, h.Model().statusMessage)

	h.Send(clearStatusMsg{})
	assert.Empty(t, h.Model().statusMessage)
}

func TestReadErrorShowsIndicator(t *testing.T) {
	h := NewTestHelper(t, 40<<20).SendWindowSize(120, 30)
	h.file.FailCreate = func(int64, int) error { return errors.New("mapping lost") }

	// Jumping to the end needs new windows, which now fail.
	h.SendKeyRune('G')
	m := h.Model()
	require.Error(t, m.readErr)
	assert.Empty(t, m.page.Offsets, "panes are cleared")
	view := m.View()
	assert.Contains(t, view, errorIndicator)
	assert.Contains(t, view, "mapping lost")

	// The reader stays failed; scrolling does nothing.
	h.SendKeyRune('g')
	assert.Error(t, h.Model().readErr)
	assert.Error(t, h.Model().reader.Err())

	// Reopening recovers at the same position.
	h.file.FailCreate = nil
	h.SendKeyRune('r')
	m = h.Model()
	require.NoError(t, m.readErr)
	assert.Equal(t, "File reopened", m.statusMessage)
	assert.Equal(t, m.scroll.MaxIndex, m.index)
	assert.Equal(t, expectedPage(m, m.offset(), 24), m.page)
}

func TestOpenFailure(t *testing.T) {
	m := newModel("missing.bin", testConfig(), window.Options{
		WindowCapacity: testCapacity,
		Opener:         memfile.FS{}.Open,
	})
	require.Error(t, m.readErr)
	assert.Contains(t, m.View(), errorIndicator)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Equal(t, "Reopen failed", updated.(Model).statusMessage)
}

func TestFileGrowthUpdatesGeometry(t *testing.T) {
	h := NewTestHelper(t, 1000).SendWindowSize(120, 30)
	assert.Equal(t, int64(1000), h.Model().size)

	h.file.SetSize(5000)
	h.SendKey(tea.KeyDown)
	m := h.Model()
	require.NoError(t, m.readErr)
	assert.Equal(t, int64(5000), m.size)
	assert.Equal(t, int32(625-24), m.scroll.MaxIndex)
	assert.Contains(t, m.View(), "5000 bytes")
}

func TestQuit(t *testing.T) {
	h := NewTestHelper(t, 100)
	_, cmd := h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "4096", want: 4096},
		{in: "0x1000", want: 4096},
		{in: " 0X10 ", want: 16},
		{in: "0b101", want: 5},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "ten", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseOffset(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
