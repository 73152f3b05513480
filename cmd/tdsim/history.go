package main

import (
	"fmt"

	"go-grid-defense/internal/storage"

	"github.com/spf13/cobra"
)

var (
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "Show stored results",
	Long: `List the latest stored runs, optionally for one scenario, with a summary.

Examples:
  tdsim history
  tdsim history opening --limit 50
  tdsim history opening --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the stored runs of the scenario")
}

func runHistory(cmd *cobra.Command, args []string) error {
	scenario := ""
	if len(args) > 0 {
		scenario = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if scenario == "" {
			return fmt.Errorf("--clear needs a scenario name")
		}
		if err := store.ClearRuns(scenario); err != nil {
			return err
		}
		fmt.Printf("Cleared runs of %q.\n", scenario)
		return nil
	}

	runs, err := store.RecentRuns(scenario, flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tdsim run --save' to record the first one.")
		return nil
	}

	fmt.Printf("%-5s %-12s %-8s %-10s %6s %6s %6s %8s  %s\n", "ID", "SCENARIO", "SEED", "OUTCOME", "WAVES", "LIVES", "GOLD", "TIME", "DATE")
	for _, r := range runs {
		fmt.Printf("%-5d %-12s %-8d %-10s %6d %6d %6d %7.1fs  %s\n",
			r.ID, r.Scenario, r.Seed, r.Outcome, r.WavesCleared, r.Lives, r.Gold, r.GameTime, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if scenario != "" {
		stats, err := store.Stats(scenario)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s: %d runs, %d victories, best %d waves, avg lives %.1f\n",
			stats.Scenario, stats.Runs, stats.Victories, stats.BestWaves, stats.AvgLives)
	}
	return nil
}
