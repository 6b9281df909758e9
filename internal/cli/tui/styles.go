package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains all lipgloss styles for the watch view
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Artifact lipgloss.Style
	Fresh    lipgloss.Style
	Stale    lipgloss.Style
	Dim      lipgloss.Style
	Error    lipgloss.Style
	Footer   lipgloss.Style
}

// DefaultStyles returns the default watch styles
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
		Artifact: lipgloss.NewStyle().Bold(true),
		Fresh:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Stale:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1),
	}
}

// Icons used in the watch view
const (
	IconFresh = "●"
	IconStale = "○"
)
