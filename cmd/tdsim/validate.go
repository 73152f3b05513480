package main

import (
	"fmt"

	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog dir]",
	Short: "Load a catalog and report skipped entries",
	Long: `Load the five catalog tables and list every entry that would be skipped.
Exits with an error when any entry is invalid.

Examples:
  tdsim validate
  tdsim validate ./catalog`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		flagCatalog = args[0]
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

	towers := 0
	for _, race := range catalog.Races() {
		ids := catalog.TowerIDs(race)
		towers += len(ids)
		fmt.Printf("%-10s %d towers\n", race, len(ids))
	}
	fmt.Printf("\n%d towers, %d enemies, %d waves, %d armor types, %d damage types\n",
		towers, len(catalog.Enemies), len(catalog.Waves), len(catalog.Armor), len(catalog.DamageTypes))

	for i, w := range catalog.Waves {
		fmt.Printf("wave %-3d %3d enemies in %d groups, delay %.1fs, bonus %d\n",
			i+1, w.Total(), len(w.Enemies), w.DelayBeforeWave, w.WaveCompletionBonus)
	}
	if cfg.Map.Width*int(cfg.GridSize) > config.ScreenWidth {
		logger.Warn("map is wider than the viewer window", "pixels", cfg.Map.Width*int(cfg.GridSize))
	}

	if len(catalog.Problems) == 0 {
		fmt.Println("catalog OK")
		return nil
	}
	fmt.Println()
	for _, p := range catalog.Problems {
		fmt.Println("  -", p)
	}
	return fmt.Errorf("%d catalog entries skipped: %w", len(catalog.Problems), defs.ErrCatalog)
}
