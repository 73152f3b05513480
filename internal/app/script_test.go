package app

import (
	"context"
	"testing"
	"testing/fstest"

	"go-grid-defense/internal/config"
	"go-grid-defense/pkg/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScript = `
name: opening
max_ticks: 600
steps:
  - {at: 10, command: start_waves}
  - {at: 0, command: place_tower, cell: {x: 9, y: 6}, race: village, tower: arrow_tower}
  - {at: 0, command: place_tower, cell: {x: 0, y: 0}, race: village, tower: barricade}
  - {at: 30, command: spawn_debug_enemy, enemy: dust_mite}
  - {at: 45, command: sell_tower, cell: {x: 9, y: 6}}
`

func TestParseScriptOrdersSteps(t *testing.T) {
	s, err := ParseScript([]byte(testScript))
	require.NoError(t, err)
	assert.Equal(t, "opening", s.Name)
	assert.Equal(t, uint64(600), s.MaxTicks)

	first := s.Commands(0)
	require.Len(t, first, 2)
	assert.Equal(t, PlaceTowerCmd(grid.Cell{X: 9, Y: 6}, "village", "arrow_tower"), first[0])
	assert.Equal(t, StartWavesCmd(), s.Commands(10)[0])
	assert.Equal(t, SpawnDebugEnemyCmd("dust_mite"), s.Commands(30)[0])
	assert.Empty(t, s.Commands(11))
}

func TestParseScriptRejectsUnknownCommand(t *testing.T) {
	_, err := ParseScript([]byte("steps:\n  - {at: 1, command: teleport}\n"))
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = ParseScript([]byte("steps: [oops"))
	assert.Error(t, err)
}

func TestScriptDefaults(t *testing.T) {
	s, err := LoadScriptFS(fstest.MapFS{"empty.yaml": {Data: []byte("name: idle\n")}}, "empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, uint64(DefaultMaxTicks), s.MaxTicks)

	_, err = LoadScriptFS(fstest.MapFS{}, "missing.yaml")
	assert.Error(t, err)
}

func TestRunStopsAtTickLimit(t *testing.T) {
	s, err := ParseScript([]byte(testScript))
	require.NoError(t, err)
	g := newTestGame(t, nil)

	ticks := 0
	res, err := g.Run(context.Background(), s, func(Snapshot) { ticks++ })
	require.NoError(t, err)
	assert.Equal(t, OutcomeTimeout, res.Outcome)
	assert.Equal(t, uint64(600), res.Ticks)
	assert.Equal(t, 600, ticks)
	assert.Equal(t, 1, res.Rejected)
	assert.Equal(t, int64(42), res.Seed)
	assert.Equal(t, "opening", res.Scenario)
	assert.Equal(t, 0, g.ECS.Towers.Len(), "the arrow tower was sold")
}

func TestRunReportsGameOver(t *testing.T) {
	s, err := ParseScript([]byte(`
name: doomed
max_ticks: 100000
steps:
  - {at: 0, command: start_waves}
`))
	require.NoError(t, err)
	g := newTestGame(t, func(c *config.Config) { c.Economy.StartingLives = 2 })

	res, err := g.Run(context.Background(), s, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeGameOver, res.Outcome)
	assert.Equal(t, 0, res.Lives)
	assert.Less(t, res.Ticks, uint64(100000))
}

func TestRunHonoursCancellation(t *testing.T) {
	s, err := ParseScript([]byte("name: idle\n"))
	require.NoError(t, err)
	g := newTestGame(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := g.Run(ctx, s, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(0), res.Ticks)
}
