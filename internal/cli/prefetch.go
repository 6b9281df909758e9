package cli

import (
	"sort"

	"github.com/spf13/cobra"
)

// NewPrefetchCmd creates the prefetch command
func NewPrefetchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefetch <branch>",
		Short: "Bring every configured artifact up to date for a branch",
		Long: `Materialize all configured artifacts for the given branch concurrently.
Checkouts with different destinations proceed in parallel; concurrent callers
targeting the same destination are serialized by the advisory lock.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, reg, err := app.openManager()
			if err != nil {
				return err
			}
			defer closeRegistry(reg)

			dests, err := m.MaterializeAll(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			names := make([]string, 0, len(dests))
			for name := range dests {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				app.printf("%s\t%s\n", name, dests[name])
			}
			return nil
		},
	}

	return cmd
}
