package main

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#00D7FF")
	accentColor    = lipgloss.Color("#FF00FF")
	errorColor     = lipgloss.Color("#FF4B4B")
	mutedColor     = lipgloss.Color("#666666")
	borderColor    = lipgloss.Color("#383838")

	// Header styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	// Pane styles
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	errorPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(0, 1)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	offsetStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Status bar styles
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1)

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(secondaryColor)

	windowStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	// Help overlay styles
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1).
			MarginBottom(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true).
			Width(12)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	// Modal styles
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			Background(lipgloss.Color("#1A1A1A"))

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// Input prompt
	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// Error styles
	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)
