// cmd/game/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"go-grid-defense/internal/app"
	"go-grid-defense/internal/assets"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/state"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagCatalog string
	flagSeed    int64
	flagMenu    bool
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
	maxDelta       float64
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > a.maxDelta {
		deltaTime = a.maxDelta
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

var rootCmd = &cobra.Command{
	Use:          "game",
	Short:        "Play grid defense in a window",
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Tunables file")
	rootCmd.Flags().StringVar(&flagCatalog, "catalog", "", "Catalog directory (built-in when empty)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Match seed (0 keeps the configured seed)")
	rootCmd.Flags().BoolVar(&flagMenu, "menu", false, "Start from the title screen")
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "game",
	})
	logger.SetLevel(config.ParseLevel(cfg.LogLevel))

	var catalog *defs.Catalog
	if flagCatalog != "" {
		catalog, err = defs.LoadDir(flagCatalog)
	} else {
		catalog, err = defs.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	fonts := assets.NewFontManager()
	sm := state.NewStateMachine() // Создаём машину состояний
	newGame := func() (*state.GameState, error) {
		world, err := app.New(cfg, catalog, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("match started", "seed", cfg.Seed, "towers", len(catalog.Towers), "waves", len(catalog.Waves))
		return state.NewGameState(sm, world, fonts, logger), nil
	}

	if flagMenu {
		sm.SetState(state.NewMenuState(sm, newGame))
	} else {
		gs, err := newGame()
		if err != nil {
			return err
		}
		sm.SetState(gs)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Grid Defense")
	return ebiten.RunGame(&AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
		maxDelta:       cfg.MaxDeltaTime,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
