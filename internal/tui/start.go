package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Start runs the full-screen chat until the user quits.
func Start(opts Options) error {
	p := tea.NewProgram(newModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
