// tdsim runs the grid defense simulation without a window.
//
// Usage:
//
//	tdsim run [scenario.yaml]        - Play one scripted match
//	tdsim batch [scenario.yaml]      - Play the same script over a range of seeds
//	tdsim validate [catalog dir]     - Load a catalog and report skipped entries
//	tdsim history [scenario]         - Show stored results
//
// Global flags:
//
//	--config <path>    - Tunables file (default: ./configs/sim.yaml, then built-in)
//	--catalog <dir>    - Catalog directory (default: built-in catalog)
//	--db <path>        - Results database (default: ~/.tdsim/runs.db)
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-grid-defense/internal/app"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

//go:embed scenarios/*.yaml
var scenarioFS embed.FS

var (
	flagConfig   string
	flagCatalog  string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tdsim",
	Short: "Headless grid defense simulator",
	Long: `tdsim drives the deterministic simulation core from YAML scenarios.

Available commands:
  run       - Play one scripted match and print the result
  batch     - Play a script over many seeds in parallel
  validate  - Check a catalog directory
  history   - Show results stored in the database

Examples:
  tdsim run
  tdsim run scenarios/maze.yaml --seed 7 --save
  tdsim batch --from 1 --count 64 --workers 8
  tdsim validate ./catalog
  tdsim history default`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Tunables file")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Catalog directory (built-in when empty)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tdsim/runs.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger builds the shared logger for a command.
func newLogger(cfg config.Config) *log.Logger {
	level := cfg.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tdsim",
	})
	logger.SetLevel(config.ParseLevel(level))
	return logger
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func loadCatalog(logger *log.Logger) (*defs.Catalog, error) {
	var (
		catalog *defs.Catalog
		err     error
	)
	if flagCatalog == "" {
		catalog, err = defs.LoadDefault()
	} else {
		catalog, err = defs.LoadDir(flagCatalog)
	}
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	logger.Debug("catalog loaded", "races", len(catalog.Towers), "enemies", len(catalog.Enemies), "waves", len(catalog.Waves))
	return catalog, nil
}

// loadScript reads the scenario from args, falling back to the built-in one.
func loadScript(args []string) (*app.Script, error) {
	if len(args) > 0 {
		return app.LoadScript(args[0])
	}
	return app.LoadScriptFS(scenarioFS, "scenarios/default.yaml")
}
