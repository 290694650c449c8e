package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/hexkit/window"
)

// errorIndicator replaces the offset and text columns after a failed read
const errorIndicator = "ERROR"

// View renders the entire UI
func (m Model) View() string {
	if m.showHelp {
		helpOverlay := overlay.New(
			helpView{keys: m.keys},
			NewMainViewModel(&m),
			overlay.Center, // horizontal position
			overlay.Center, // vertical position
			0,
			0,
		)
		return helpOverlay.View()
	}
	return m.renderMain()
}

// renderMain renders header, panes, and status without overlays
func (m Model) renderMain() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderContent(),
		m.renderStatus(),
	)
}

// renderHeader renders the title and file name
func (m Model) renderHeader() string {
	file := fmt.Sprintf("File: %s (%d bytes)", m.path, m.size)
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render("Hex Explorer"),
		"  ",
		pathStyle.Render(file),
	)
}

// renderContent renders the offset, hex, and text panes side by side
func (m Model) renderContent() string {
	rows := m.visibleLines()
	offsetWidth := max(m.layout.OffsetWidth, len(errorIndicator))
	hexWidth := max(m.layout.BytesPerLine*3-1, 1)
	textWidth := max(m.layout.BytesPerLine, len(errorIndicator))

	if m.readErr != nil {
		return lipgloss.JoinHorizontal(
			lipgloss.Top,
			renderPane(errorPaneStyle, "Offset", errorStyle.Render(errorIndicator), offsetWidth, rows),
			renderPane(errorPaneStyle, "Hex", errorStyle.Render(m.readErr.Error()), max(hexWidth, m.width/2), rows),
			renderPane(errorPaneStyle, "Text", errorStyle.Render(errorIndicator), textWidth, rows),
		)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderPane(paneStyle, "Offset", offsetStyle.Render(strings.Join(m.page.Offsets, "\n")), offsetWidth, rows),
		renderPane(paneStyle, "Hex", strings.Join(m.page.Hex, "\n"), hexWidth, rows),
		renderPane(paneStyle, "Text", strings.Join(m.page.Text, "\n"), textWidth, rows),
	)
}

func renderPane(style lipgloss.Style, title, body string, width, rows int) string {
	inner := lipgloss.NewStyle().Width(width).Height(rows).MaxHeight(rows).Render(body)
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, paneTitleStyle.Render(title), inner))
}

// renderStatus renders the goto prompt, or position, windows, and messages
func (m Model) renderStatus() string {
	if m.gotoMode {
		return statusStyle.Render(m.gotoInput.View())
	}

	parts := []string{
		fmt.Sprintf("%#x / %#x", m.offset(), m.size),
		fmt.Sprintf("row %d/%d", int64(m.index)*m.scroll.LinesPerIndex, m.scroll.Lines),
		windowStyle.Render(describeWindows(m.reader.Snapshot())),
	}
	if m.statusMessage != "" {
		parts = append(parts, statusMessageStyle.Render(m.statusMessage))
	}
	parts = append(parts, "? help")
	return statusStyle.Render(strings.Join(parts, "  │  "))
}

// describeWindows summarises the reader's live windows
func describeWindows(s window.Snapshot) string {
	var b strings.Builder
	b.WriteString(s.State.String())
	names := []string{"P", "S"}
	for i, w := range s.Windows {
		fmt.Fprintf(&b, " %s[%#x,%#x)", names[i], w.Base, w.End())
	}
	return b.String()
}
