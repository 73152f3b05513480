package system

import (
	"testing"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrbiterRespectsHitCooldown(t *testing.T) {
	w := newTestWorld(t)
	_, tower := w.place(t, "orbit", grid.Cell{X: 10, Y: 10})
	require.Len(t, tower.Orbiters, 1)
	_, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 11, Y: 10}))

	w.Step(0.25)
	assert.Equal(t, 990.0, e.Health)
	w.run(2, 0.25)
	assert.Equal(t, 990.0, e.Health, "cooldown 0.5s is inclusive")
	w.Step(0.25)
	assert.Equal(t, 980.0, e.Health)
}

func TestOrbitersFollowTheirParent(t *testing.T) {
	w := newTestWorld(t)
	id, tower := w.place(t, "orbit", grid.Cell{X: 10, Y: 10})
	w.Step(0.25)
	o, ok := w.Env.ECS.Orbiters.Get(tower.Orbiters[0])
	require.True(t, ok)
	assert.InDelta(t, 32.0, o.Pos.Dist(tower.Center), 1e-9)

	w.Env.ECS.Towers.Remove(id)
	w.Step(0.25)
	assert.Equal(t, 0, w.Env.ECS.Orbiters.Len(), "orbiters of a missing tower are dropped")
}

func TestPassThroughExploder(t *testing.T) {
	w := newTestWorld(t)
	w.place(t, "comet", grid.Cell{X: 3, Y: 10})
	_, a := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 6, Y: 10}))
	_, b := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 8, Y: 10}))

	w.Step(0.25)
	require.Equal(t, 1, w.Env.ECS.Exploders.Len())
	assert.Equal(t, 1000.0, a.Health)

	w.Step(0.25)
	assert.Equal(t, 0, w.Env.ECS.Exploders.Len())
	assert.Equal(t, 1, w.count(event.Explosion))
	assert.Equal(t, 995.0, a.Health, "pass damage only, outside the blast")
	// 5 на пролёте, 40 взрыв, 5 от зоны в тике взрыва
	assert.Equal(t, 950.0, b.Health)

	w.run(6, 0.25)
	assert.Equal(t, 935.0, b.Health, "zone burns 10 per 0.5s for 1s")
	assert.Equal(t, 995.0, a.Health)

	zones := 0
	w.Env.ECS.Effects.Each(func(_ types.EntityID, fx *component.Effect) bool {
		if fx.Kind == component.EffectGroundZone {
			zones++
		}
		return true
	})
	assert.Equal(t, 0, zones)
}
