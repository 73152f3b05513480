package state

import (
	"testing"

	game "go-grid-defense/internal/app"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/pkg/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	catalog, err := defs.LoadDefault()
	require.NoError(t, err)
	g, err := game.New(config.Default(), catalog, nil)
	require.NoError(t, err)
	return NewSession(g)
}

func TestSessionRunsWholeTicks(t *testing.T) {
	s := newSession(t)
	dt := s.Game.Config.FixedDelta()

	assert.Empty(t, s.Advance(dt*0.5))
	assert.Len(t, s.Advance(dt*0.6), 1)
	assert.Equal(t, uint64(1), s.Snapshot().Tick)

	s.Speed = 3
	assert.Len(t, s.Advance(dt), 3)
	assert.Equal(t, uint64(4), s.Snapshot().Tick)
}

func TestSessionClampsLongFrames(t *testing.T) {
	s := newSession(t)
	// 10 секунд сворачиваются до MaxDeltaTime
	steps := s.Advance(10)
	assert.LessOrEqual(t, len(steps), maxStepsPerFrame)
	assert.NotEmpty(t, steps)
}

func TestSessionPauseAndCommands(t *testing.T) {
	s := newSession(t)
	dt := s.Game.Config.FixedDelta()

	s.Queue(game.PlaceTowerCmd(grid.Cell{X: 5, Y: 5}, "village", "barricade"))
	s.Paused = true
	assert.Nil(t, s.Advance(dt*2))
	assert.Equal(t, 1, s.Pending())
	assert.Empty(t, s.Snapshot().Towers)

	s.Paused = false
	snaps := s.Advance(dt * 1.01)
	require.Len(t, snaps, 1)
	assert.Zero(t, s.Pending())
	assert.Len(t, snaps[0].Towers, 1)
}
