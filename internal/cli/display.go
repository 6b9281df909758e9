package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// displayStyles holds the lipgloss styles for tabular command output.
type displayStyles struct {
	Header lipgloss.Style
	OK     lipgloss.Style
	Failed lipgloss.Style
	Stale  lipgloss.Style
	Dim    lipgloss.Style
}

// newDisplayStyles returns styles, or pass-through styles when color is off.
func newDisplayStyles(color bool) displayStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return displayStyles{Header: plain, OK: plain, Failed: plain, Stale: plain, Dim: plain}
	}
	return displayStyles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		OK:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Failed: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Stale:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// stdoutIsTerminal reports whether stdout is a TTY. Styled output is
// disabled when piping.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// formatAge renders a duration since an event, e.g. "42s ago". A negative
// duration means the event never happened.
func formatAge(d time.Duration) string {
	switch {
	case d < 0:
		return "never"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
