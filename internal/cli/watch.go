package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/srcup/srcup/internal/cli/tui"
)

// NewWatchCmd creates the watch command
func NewWatchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live view of materialized checkouts",
		Long: `Continuously rescan the base path and display each checkout's branch,
commit, and staleness. Useful while a fleet of workers is fetching.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, reg, err := app.openManager()
			if err != nil {
				return err
			}
			defer closeRegistry(reg)

			model := tui.NewModel(m.List, app.cfg.FreshForDuration())
			program := tea.NewProgram(model)
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("watch display failed: %w", err)
			}
			return nil
		},
	}

	return cmd
}
