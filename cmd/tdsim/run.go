package main

import (
	"fmt"
	"os"

	"go-grid-defense/internal/app"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/storage"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagSeed     int64
	flagSave     bool
	flagMaxTicks uint64
	flagFinal    bool
)

var runCmd = &cobra.Command{
	Use:   "run [scenario.yaml]",
	Short: "Play one scripted match",
	Long: `Play a scenario on the fixed tick rate and print the result as YAML.
Without a file the built-in opening is played.

Examples:
  tdsim run
  tdsim run maze.yaml --seed 9 --save
  tdsim run --final`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = value from config)")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Store the result in the database")
	runCmd.Flags().Uint64Var(&flagMaxTicks, "max-ticks", 0, "Override the scenario tick limit")
	runCmd.Flags().BoolVar(&flagFinal, "final", false, "Also print the final snapshot")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
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
	if flagMaxTicks > 0 {
		script.MaxTicks = flagMaxTicks
	}

	game, err := app.New(cfg, catalog, logger)
	if err != nil {
		return err
	}

	var last app.Snapshot
	res, err := game.Run(cmd.Context(), script, func(s app.Snapshot) {
		for _, ev := range s.Events {
			switch ev.Type {
			case event.WaveStarted, event.WaveCompleted, event.AllWavesCompleted, event.GameOver:
				logger.Info("match event", "tick", s.Tick, "event", ev.Type, "gold", s.Gold, "lives", s.Lives)
			}
		}
		last = s
	})
	if err != nil {
		return fmt.Errorf("run interrupted at tick %d: %w", res.Ticks, err)
	}

	out := yaml.NewEncoder(os.Stdout)
	out.SetIndent(2)
	defer out.Close()
	if err := out.Encode(res); err != nil {
		return err
	}
	if flagFinal {
		if err := out.Encode(last); err != nil {
			return err
		}
	}

	if flagSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening results database: %w", err)
		}
		defer store.Close()
		id, err := store.SaveRun(toRecord(res))
		if err != nil {
			return err
		}
		logger.Info("result stored", "id", id, "db", flagDBPath)
	}
	return nil
}

func toRecord(r app.Result) storage.RunResult {
	return storage.RunResult{
		Scenario:     r.Scenario,
		Seed:         r.Seed,
		Outcome:      string(r.Outcome),
		WavesCleared: r.WavesCleared,
		Lives:        r.Lives,
		Gold:         r.Gold,
		Ticks:        r.Ticks,
		GameTime:     r.GameTime,
	}
}
