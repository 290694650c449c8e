package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// MainViewModel wraps the main UI for use as overlay background
type MainViewModel struct {
	model *Model
}

func NewMainViewModel(m *Model) *MainViewModel {
	return &MainViewModel{model: m}
}

func (m *MainViewModel) Init() tea.Cmd {
	return nil
}

func (m *MainViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Main model updates are handled in the parent Model's Update
	// This model just provides the View() for overlay
	return m, nil
}

func (m *MainViewModel) View() string {
	return m.model.renderMain()
}

// helpView is the keyboard shortcut overlay
type helpView struct {
	keys KeyMap
}

func (h helpView) Init() tea.Cmd {
	return nil
}

func (h helpView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return h, nil
}

func (h helpView) View() string {
	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for i, section := range h.keys.helpSections() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(modalTitleStyle.Render(section.Title))
		b.WriteString("\n")
		for _, binding := range section.Bindings {
			help := binding.Help()
			b.WriteString(helpKeyStyle.Render(help.Key))
			b.WriteString("  ")
			b.WriteString(helpDescStyle.Render(help.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(helpDescStyle.Render("Press ? or esc to close"))
	return modalStyle.Render(b.String())
}
