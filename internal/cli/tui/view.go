package tui

import (
	"fmt"
	"strings"
	"time"
)

// View implements tea.Model
func (m *Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.Styles.Title.Render("srcup checkouts"))
	if !m.lastScan.IsZero() {
		b.WriteString("  ")
		b.WriteString(m.Styles.Dim.Render("scanned " + m.lastScan.Format("15:04:05")))
	}
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(m.Styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case len(m.states) == 0:
		b.WriteString(m.Styles.Dim.Render("no checkouts materialized"))
		b.WriteString("\n")
	default:
		b.WriteString(m.Styles.Header.Render(fmt.Sprintf("  %-12s %-20s %-10s %s",
			"ARTIFACT", "BRANCH", "COMMIT", "FETCHED")))
		b.WriteString("\n")

		for _, state := range m.states {
			age := state.FetchAge()
			icon := m.Styles.Fresh.Render(IconFresh)
			ageText := m.Styles.Fresh.Render(formatAge(age))
			if age < 0 || age > m.FreshFor {
				icon = m.Styles.Stale.Render(IconStale)
				ageText = m.Styles.Stale.Render(formatAge(age))
			}

			commit := state.HeadCommit
			if commit == "" {
				commit = "-"
			}

			b.WriteString(fmt.Sprintf("%s %s %-20s %s %s\n",
				icon,
				m.Styles.Artifact.Render(fmt.Sprintf("%-12s", state.Artifact)),
				state.Branch,
				m.Styles.Dim.Render(fmt.Sprintf("%-10s", commit)),
				ageText))
		}
	}

	b.WriteString(m.Styles.Footer.Render("r refresh · q quit"))
	b.WriteString("\n")

	return b.String()
}

func formatAge(d time.Duration) string {
	switch {
	case d < 0:
		return "never"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}
