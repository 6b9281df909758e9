package cli

import (
	"github.com/spf13/cobra"
)

// SyncOptions holds flags for the sync command
type SyncOptions struct {
	KeepOnError bool // Leave a broken destination in place for inspection
	NoLock      bool // Skip the advisory lock
}

// NewSyncCmd creates the sync command
func NewSyncCmd(app *App) *cobra.Command {
	var opts SyncOptions

	cmd := &cobra.Command{
		Use:   "sync <artifact> <branch>",
		Short: "Bring one artifact's checkout up to date",
		Long: `Clone or update the named artifact's checkout for the given branch and
hard-reset it to origin/<branch>. Prints the destination path on success.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, reg, err := app.openManager()
			if err != nil {
				return err
			}
			defer closeRegistry(reg)

			m.KeepOnError = opts.KeepOnError
			if opts.NoLock {
				app.cfg.DisableLock = true
			}

			dest, err := m.Materialize(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			app.printf("%s\n", dest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.KeepOnError, "keep-on-error", false,
		"Keep a broken destination for inspection instead of removing it")
	cmd.Flags().BoolVar(&opts.NoLock, "no-lock", false,
		"Skip the advisory lock (caller guarantees exclusive access)")

	return cmd
}
