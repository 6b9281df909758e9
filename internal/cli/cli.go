package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/srcup/srcup/internal/checkout"
	"github.com/srcup/srcup/internal/config"
	"github.com/srcup/srcup/internal/registry"
)

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Configuration (loaded lazily, cached)
	cfg *config.Config

	// Flags
	configPath string
	verbose    bool

	// Version information
	version string
	commit  string
	date    string
}

// New creates a new CLI application
func New() *App {
	app := &App{}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.version = version
	a.commit = commit
	a.date = date
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "srcup",
		Short: "Materialize versioned source checkouts for test jobs",
		Long: `srcup keeps local checkouts of test-suite and tooling repositories
present, on the right branch, and up to date, coordinating concurrent
callers through per-checkout advisory locks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a.rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Config file (default ~/.srcup/config.yaml)")
	a.rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Verbose output")

	a.rootCmd.AddCommand(
		NewSyncCmd(a),
		NewPrefetchCmd(a),
		NewStatusCmd(a),
		NewHistoryCmd(a),
		NewWatchCmd(a),
		NewVersionCmd(a),
	)
}

// loadConfig loads and caches the configuration.
func (a *App) loadConfig() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

// openManager wires a checkout.Manager with its registry. A registry that
// cannot be opened is logged and skipped; history is advisory and must not
// block reconciliation.
func (a *App) openManager() (*checkout.Manager, *registry.Registry, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	reg, err := registry.Open(cfg.ResolvedRegistryPath())
	if err != nil {
		log.Printf("warning: reconcile history unavailable: %v", err)
		reg = nil
	}
	return checkout.NewManager(cfg, reg), reg, nil
}

// closeRegistry closes reg if present, logging any error.
func closeRegistry(reg *registry.Registry) {
	if reg == nil {
		return
	}
	if err := reg.Close(); err != nil {
		log.Printf("warning: closing registry: %v", err)
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.rootCmd.OutOrStdout(), format, args...)
}
