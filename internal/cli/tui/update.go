package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Quitting = true
			return m, tea.Quit
		case "r":
			return m, refreshCmd(m.refresh)
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case TickMsg:
		return m, tea.Batch(refreshCmd(m.refresh), tickCmd())

	case RefreshedMsg:
		m.states = msg.States
		m.err = msg.Err
		m.lastScan = time.Now()
	}

	return m, nil
}
