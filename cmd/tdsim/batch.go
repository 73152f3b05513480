package main

import (
	"fmt"
	"runtime"

	"go-grid-defense/internal/app"
	"go-grid-defense/internal/storage"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	flagFrom    int64
	flagCount   int
	flagWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch [scenario.yaml]",
	Short: "Play a script over a range of seeds",
	Long: `Play the same scenario once per seed. Every world runs single-threaded;
independent worlds run in parallel.

Examples:
  tdsim batch --from 1 --count 32
  tdsim batch maze.yaml --count 100 --workers 4 --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int64Var(&flagFrom, "from", 1, "First seed")
	batchCmd.Flags().IntVar(&flagCount, "count", 16, "Number of seeds")
	batchCmd.Flags().IntVar(&flagWorkers, "workers", runtime.GOMAXPROCS(0), "Parallel worlds")
	batchCmd.Flags().BoolVar(&flagSave, "save", false, "Store every result in the database")
}

func runBatch(cmd *cobra.Command, args []string) error {
	if flagCount <= 0 {
		return fmt.Errorf("count must be positive, got %d", flagCount)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	catalog, err := loadCatalog(logger)
	if err != nil {
		return err
	}
	script, err := loadScript(args)
	if err != nil {
		return err
	}

	results := make([]app.Result, flagCount)
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(1, flagWorkers))
	for i := range results {
		seedCfg := cfg
		seedCfg.Seed = flagFrom + int64(i)
		g.Go(func() error {
			// каталог только читается, мир у каждого сида свой
			game, err := app.New(seedCfg, catalog, logger.With("seed", seedCfg.Seed))
			if err != nil {
				return err
			}
			res, err := game.Run(gctx, script, nil)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seedCfg.Seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	var victories, lives, waves int
	fmt.Printf("%-8s %-10s %6s %6s %6s %8s\n", "SEED", "OUTCOME", "WAVES", "LIVES", "GOLD", "TICKS")
	for _, r := range results {
		fmt.Printf("%-8d %-10s %6d %6d %6d %8d\n", r.Seed, r.Outcome, r.WavesCleared, r.Lives, r.Gold, r.Ticks)
		if r.Outcome == app.OutcomeVictory {
			victories++
		}
		lives += r.Lives
		waves += r.WavesCleared
	}
	n := float64(len(results))
	fmt.Printf("\n%d runs, %d victories, avg waves %.2f, avg lives %.2f\n", len(results), victories, float64(waves)/n, float64(lives)/n)

	if flagSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening results database: %w", err)
		}
		defer store.Close()
		records := make([]storage.RunResult, len(results))
		for i, r := range results {
			records[i] = toRecord(r)
		}
		if err := store.SaveRuns(records); err != nil {
			return err
		}
		logger.Info("results stored", "runs", len(records), "db", flagDBPath)
	}
	return nil
}
