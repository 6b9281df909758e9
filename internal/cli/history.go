package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/srcup/srcup/internal/registry"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd(app *App) *cobra.Command {
	var limit int
	var plain bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent reconciliation outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}

			reg, err := registry.Open(cfg.ResolvedRegistryPath())
			if err != nil {
				return fmt.Errorf("open reconcile history: %w", err)
			}
			defer closeRegistry(reg)

			records, err := reg.Recent(limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				app.printf("no reconciliations recorded\n")
				return nil
			}

			styles := newDisplayStyles(!plain && stdoutIsTerminal())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			defer w.Flush()

			for _, rec := range records {
				status := styles.OK.Render(rec.Status)
				detail := rec.HeadCommit
				if rec.Status != registry.StatusOK {
					status = styles.Failed.Render(rec.Status)
					detail = rec.Error
				}
				_, _ = w.Write([]byte(
					styles.Dim.Render(rec.FinishedAt.Local().Format("2006-01-02 15:04:05")) + "\t" +
						rec.Artifact + "\t" +
						rec.Branch + "\t" +
						status + "\t" +
						detail + "\n"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum records to show")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable styled output")

	return cmd
}
