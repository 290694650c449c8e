package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/hexkit/internal/logger"
)

const wheelRows = 3

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.readErr == nil {
			m.recompute()
			m.refresh()
		}
		return m, nil

	case tea.MouseMsg:
		if m.showHelp || m.gotoMode {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollTo(int64(m.index) - wheelRows)
		case tea.MouseButtonWheelDown:
			m.scrollTo(int64(m.index) + wheelRows)
		}
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If help is showing, handle help keys
	if m.showHelp {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		// Ignore other keys when help is showing
		return m, nil
	}

	if m.gotoMode {
		return m.handleGotoInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Jump):
		m.gotoMode = true
		m.gotoInput.Reset()
		cmd := m.gotoInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Reload):
		m.open()
		if m.readErr != nil {
			return m.setStatus("Reopen failed")
		}
		return m.setStatus("File reopened")

	case key.Matches(msg, m.keys.Copy):
		return m.copyPage()

	case key.Matches(msg, m.keys.Up):
		m.scrollTo(int64(m.index) - 1)
	case key.Matches(msg, m.keys.Down):
		m.scrollTo(int64(m.index) + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollTo(int64(m.index) - int64(max(m.scroll.Page, 1)))
	case key.Matches(msg, m.keys.PageDown):
		m.scrollTo(int64(m.index) + int64(max(m.scroll.Page, 1)))
	case key.Matches(msg, m.keys.Home):
		m.scrollTo(0)
	case key.Matches(msg, m.keys.End):
		m.scrollTo(int64(m.scroll.MaxIndex))
	}
	return m, nil
}

// handleGotoInput feeds the offset prompt and jumps on enter
func (m Model) handleGotoInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc):
		m.gotoMode = false
		m.gotoInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.gotoMode = false
		m.gotoInput.Blur()
		off, err := parseOffset(m.gotoInput.Value())
		if err != nil {
			return m.setStatus(fmt.Sprintf("Invalid offset: %v", err))
		}
		if m.readErr != nil {
			return m.setStatus("Reopen the file first (r)")
		}
		m.scrollTo(int64(m.scroll.IndexOf(off)))
		logger.Debug("goto", "offset", off, "index", m.index)
		return m.setStatus(fmt.Sprintf("Jumped to %#x", m.offset()))
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

// copyPage copies the hex column of the visible page
func (m Model) copyPage() (tea.Model, tea.Cmd) {
	if len(m.page.Hex) == 0 {
		return m.setStatus("Nothing to copy")
	}
	rows := make([]string, len(m.page.Hex))
	for i, row := range m.page.Hex {
		rows[i] = strings.TrimRight(row, " ")
	}
	if err := m.copyToClipboard(strings.Join(rows, "\n")); err != nil {
		logger.Warn("clipboard write failed", "error", err)
		return m.setStatus("Failed to copy page")
	}
	return m.setStatus("Page copied to clipboard")
}

// setStatus shows msg and clears it after 2 seconds
func (m Model) setStatus(msg string) (tea.Model, tea.Cmd) {
	m.statusMessage = msg
	return m, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// parseOffset accepts decimal, 0x hex, 0o octal and 0b binary offsets
func parseOffset(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	off, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if off < 0 {
		return 0, fmt.Errorf("%d is negative", off)
	}
	return off, nil
}
