package cli

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/srcup/srcup/internal/registry"
)

// NewStatusCmd creates the status command
func NewStatusCmd(app *App) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show materialized checkouts and their staleness",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, reg, err := app.openManager()
			if err != nil {
				return err
			}
			defer closeRegistry(reg)

			states, err := m.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(states) == 0 {
				app.printf("no checkouts materialized under %s\n", app.cfg.BasePath)
				return nil
			}

			var latest map[string]registry.Record
			if reg != nil {
				if latest, err = reg.LatestByDest(); err != nil {
					return err
				}
			}

			styles := newDisplayStyles(!plain && stdoutIsTerminal())
			freshFor := app.cfg.FreshForDuration()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			defer w.Flush()

			header := styles.Header
			_, _ = w.Write([]byte(header.Render("ARTIFACT") + "\t" +
				header.Render("BRANCH") + "\t" +
				header.Render("COMMIT") + "\t" +
				header.Render("FETCHED") + "\t" +
				header.Render("LAST RESULT") + "\n"))

			for _, state := range states {
				age := state.FetchAge()
				ageStyle := styles.OK
				if age < 0 || age > freshFor {
					ageStyle = styles.Stale
				}

				result := styles.Dim.Render("-")
				if rec, ok := latest[state.DestPath]; ok {
					if rec.Status == registry.StatusOK {
						result = styles.OK.Render(rec.Status)
					} else {
						result = styles.Failed.Render(rec.Status)
					}
				}

				commit := state.HeadCommit
				if commit == "" {
					commit = "-"
				}

				_, _ = w.Write([]byte(state.Artifact + "\t" +
					state.Branch + "\t" +
					styles.Dim.Render(commit) + "\t" +
					ageStyle.Render(formatAge(age)) + "\t" +
					result + "\n"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Disable styled output")

	return cmd
}
