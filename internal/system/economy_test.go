package system

import (
	"testing"

	"go-grid-defense/internal/event"

	"github.com/stretchr/testify/assert"
)

func TestEconomyLedgerSettlesAtEndOfTick(t *testing.T) {
	w := newTestWorld(t)
	eco := w.Economy

	eco.Grant(7)
	eco.Penalize(2)
	assert.Equal(t, 100, eco.Gold(), "credits wait for the tick")
	w.Step(dt60)
	assert.Equal(t, 105, eco.Gold())
	assert.Equal(t, 1, w.count(event.GoldChanged))
}

func TestEconomyGoldNeverNegative(t *testing.T) {
	w := newTestWorld(t)
	eco := w.Economy

	assert.False(t, eco.Spend(500))
	assert.Equal(t, 100, eco.Gold())
	assert.True(t, eco.Spend(100))
	assert.Equal(t, 0, eco.Gold())

	eco.Penalize(30)
	w.Step(dt60)
	assert.Equal(t, 0, eco.Gold())

	eco.Refund(12)
	assert.Equal(t, 12, eco.Gold(), "refunds are immediate")
}

func TestEconomyGameOverOnce(t *testing.T) {
	w := newTestWorld(t)
	eco := w.Economy

	eco.LoseLives(15)
	w.Step(dt60)
	assert.Equal(t, 5, eco.Lives())
	assert.False(t, eco.Over())

	eco.LoseLives(40)
	w.Step(dt60)
	assert.Equal(t, 0, eco.Lives())
	assert.True(t, eco.Over())

	w.Step(dt60)
	assert.Equal(t, 1, w.count(event.GameOver))
	assert.Equal(t, PhaseGameOver, w.State.Phase())
}
