package system

import (
	"testing"

	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleTowerKillsPeasant(t *testing.T) {
	w := newTestWorld(t)
	w.place(t, "gun", grid.Cell{X: 5, Y: 8})
	id, e := w.spawnAt(t, "village_peasant", w.center(grid.Cell{X: 8, Y: 8}))
	freeze(e)

	perHit := w.Env.ResolveDamage(e, Hit{Damage: 20, DamageType: "normal"})
	assert.InDelta(t, 18.87, perHit, 0.01)

	hits := 0
	last := e.Health
	for i := 0; i < 12*60 && w.Env.ECS.Enemies.Has(id); i++ {
		w.Step(dt60)
		if e.Health < last {
			hits++
			assert.InDelta(t, perHit, last-e.Health, 1e-9)
			last = e.Health
		}
	}
	assert.False(t, w.Env.ECS.Enemies.Has(id), "peasant must die")
	assert.Equal(t, 8, hits)
	assert.Equal(t, 101, w.Economy.Gold())
	assert.Equal(t, 1, w.count(event.EnemyKilled))
}

func TestChainOfTwoArcTowers(t *testing.T) {
	w := newTestWorld(t)
	a, ta := w.place(t, "arc", grid.Cell{X: 3, Y: 5})
	b, tb := w.place(t, "arc", grid.Cell{X: 7, Y: 5})
	require.Equal(t, 128.0, ta.Center.Dist(tb.Center))
	assert.Equal(t, []types.EntityID{b}, w.Chain.Neighbors(a))
	assert.Equal(t, []types.EntityID{a}, w.Chain.Neighbors(b))

	_, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 11, Y: 5}))
	require.Empty(t, w.Combat.Candidates(ta), "only the farther tower reaches the target")
	require.Len(t, w.Combat.Candidates(tb), 1)

	w.Step(dt60)

	now := w.Env.Now()
	assert.Equal(t, 940.0, e.Health, "two towers × 30 damage, once")
	assert.Equal(t, now, ta.LastChainTime)
	assert.Equal(t, now, tb.LastChainTime)
	assert.Equal(t, now, tb.LastAttackTime, "terminal tower shares the cooldown")
	assert.Equal(t, 0, w.Env.ECS.Projectiles.Len())
	assert.Equal(t, 1, w.count(event.ChainFired))

	// Обе на перезарядке: следующий тик ничего не делает.
	w.Step(dt60)
	assert.Equal(t, 940.0, e.Health)
	assert.Equal(t, 1, w.count(event.ChainFired))
}

func TestLoneArcTowerFallsBackToProjectile(t *testing.T) {
	w := newTestWorld(t)
	_, tower := w.place(t, "arc", grid.Cell{X: 7, Y: 5})
	w.spawnAt(t, "dummy", w.center(grid.Cell{X: 9, Y: 5}))

	w.Step(dt60)
	assert.Equal(t, 1, w.Env.ECS.Projectiles.Len())
	assert.Equal(t, 0, w.count(event.ChainFired))
	assert.Equal(t, w.Env.Now(), tower.LastAttackTime)
}

func TestBounceFalloffNeverRehits(t *testing.T) {
	w := newTestWorld(t)
	w.place(t, "bouncer", grid.Cell{X: 3, Y: 10})
	_, a := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 5, Y: 10}))
	_, b := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 7, Y: 10}))
	_, c := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 9, Y: 10}))

	w.run(120, dt60)

	assert.InDelta(t, 950.0, a.Health, 1e-9)
	assert.InDelta(t, 975.0, b.Health, 1e-9)
	assert.InDelta(t, 987.5, c.Health, 1e-9)
	assert.Equal(t, 0, w.Env.ECS.Projectiles.Len(), "projectile ends after its bounces")
}

func TestBounceStopsWhenOnlyHitEnemiesRemain(t *testing.T) {
	w := newTestWorld(t)
	w.place(t, "bouncer", grid.Cell{X: 3, Y: 10})
	_, a := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 5, Y: 10}))
	_, b := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 6, Y: 10}))

	w.run(120, dt60)

	assert.InDelta(t, 950.0, a.Health, 1e-9)
	assert.InDelta(t, 975.0, b.Health, 1e-9)
	assert.Equal(t, 0, w.Env.ECS.Projectiles.Len())
}

func TestProjectileVanishesWhenTargetDies(t *testing.T) {
	w := newTestWorld(t)
	w.place(t, "gun", grid.Cell{X: 3, Y: 10})
	id, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 9, Y: 10}))

	w.Step(dt60)
	require.Equal(t, 1, w.Env.ECS.Projectiles.Len())
	w.Env.ApplyDamage(id, e, Hit{Damage: 5000, DamageType: "normal"})
	w.Step(dt60)
	assert.Equal(t, 0, w.Env.ECS.Projectiles.Len())
}

func TestGoldOnKillAndBounty(t *testing.T) {
	w := newTestWorld(t)
	w.place(t, "reaper", grid.Cell{X: 3, Y: 10})
	id, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 5, Y: 10}))
	e.Health = 100

	for i := 0; i < 60 && w.Env.ECS.Enemies.Has(id); i++ {
		w.Step(dt60)
	}
	require.False(t, w.Env.ECS.Enemies.Has(id))
	// value 2 + gold_on_kill 4 − bounty 1
	assert.Equal(t, 105, w.Economy.Gold())
}

func TestGoldGenerationTicksOncePerInterval(t *testing.T) {
	w := newTestWorld(t)
	w.place(t, "miner", grid.Cell{X: 3, Y: 10})

	w.run(4*60+1, dt60)
	assert.Equal(t, 106, w.Economy.Gold())
	assert.Equal(t, 2, w.count(event.FloatingText))
}

func TestSelectTargetHighestHealth(t *testing.T) {
	w := newTestWorld(t)
	_, tower := w.place(t, "gun", grid.Cell{X: 3, Y: 10})
	tower.Def.TargetSelection = "highest_current_health"

	near, _ := w.spawnAt(t, "village_peasant", w.center(grid.Cell{X: 4, Y: 10}))
	far, _ := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 8, Y: 10}))

	cands := w.Combat.Candidates(tower)
	require.Len(t, cands, 2)
	assert.Equal(t, far, w.Combat.SelectTarget(tower, cands))
	tower.Def.TargetSelection = ""
	assert.Equal(t, near, w.Combat.SelectTarget(tower, cands))
}

func TestClosestKeepsSpawnOrderOnTies(t *testing.T) {
	w := newTestWorld(t)
	_, tower := w.place(t, "gun", grid.Cell{X: 6, Y: 10})
	first, _ := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 4, Y: 10}))
	second, _ := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 8, Y: 10}))

	got := w.Combat.Closest(tower.Center, w.Combat.Candidates(tower), 2)
	assert.Equal(t, []types.EntityID{first, second}, got)
}
