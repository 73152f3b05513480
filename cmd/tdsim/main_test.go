package main

import (
	"path/filepath"
	"testing"

	"go-grid-defense/internal/app"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinScenarioIsPlayable(t *testing.T) {
	script, err := loadScript(nil)
	require.NoError(t, err)
	assert.Equal(t, "opening", script.Name)

	catalog, err := defs.LoadDefault()
	require.NoError(t, err)
	cfg := config.Default()
	game, err := app.New(cfg, catalog, nil)
	require.NoError(t, err)

	snap := game.Step(cfg.FixedDelta(), script.Commands(0))
	assert.Len(t, snap.Towers, 9, "every opening placement is accepted")
	assert.Equal(t, "waiting_delay", snap.Wave.Phase)
}

func TestToRecord(t *testing.T) {
	r := toRecord(app.Result{Scenario: "opening", Seed: 3, Outcome: app.OutcomeVictory, WavesCleared: 6, Lives: 17, Gold: 55, Ticks: 120, GameTime: 2})
	assert.Equal(t, "victory", r.Outcome)
	assert.Equal(t, int64(3), r.Seed)
	assert.Equal(t, uint64(120), r.Ticks)
	assert.Equal(t, 17, r.Lives)
}

func TestHistoryOnEmptyDatabase(t *testing.T) {
	flagDBPath = filepath.Join(t.TempDir(), "runs.db")
	flagLimit = 5
	flagClear = false
	assert.NoError(t, runHistory(historyCmd, nil))
}
