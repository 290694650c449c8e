package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/hexkit/internal/config"
	"github.com/joshuapare/hexkit/internal/testutil/memfile"
	"github.com/joshuapare/hexkit/window"
)

const testCapacity = 1 << 20

// TestHelper provides utilities for testing TUI components
type TestHelper struct {
	t      *testing.T
	model  Model
	file   *memfile.File
	copied []string
}

// NewTestHelper creates a test helper over a simulated file of size bytes
func NewTestHelper(t *testing.T, size int64) *TestHelper {
	t.Helper()
	h := &TestHelper{t: t, file: memfile.New(size)}
	h.model = newModel("sim.bin", testConfig(), window.Options{
		WindowCapacity: testCapacity,
		Opener:         h.file.Opener(),
	})
	h.model.copyToClipboard = func(s string) error {
		h.copied = append(h.copied, s)
		return nil
	}
	t.Cleanup(func() { _ = h.model.Close() })
	return h
}

func testConfig() *config.Config {
	return &config.Config{
		WindowCapacity: testCapacity,
		BytesPerLine:   8,
		Encoding:       "ascii",
	}
}

// SendKey simulates a key press but does not execute async commands
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	msg := tea.KeyMsg{Type: keyType}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// TypeString sends each rune of s as a key press
func (h *TestHelper) TypeString(s string) *TestHelper {
	for _, r := range s {
		h.SendKeyRune(r)
	}
	return h
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	msg := tea.WindowSizeMsg{Width: width, Height: height}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// Send delivers an arbitrary message
func (h *TestHelper) Send(msg tea.Msg) (*TestHelper, tea.Cmd) {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	return h, cmd
}

// Model returns the current model state
func (h *TestHelper) Model() Model {
	return h.model
}
