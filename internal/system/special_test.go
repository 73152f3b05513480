package system

import (
	"testing"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onlyProjectile возвращает единственный живой снаряд мира.
func (w *testWorld) onlyProjectile(t *testing.T) *component.Projectile {
	t.Helper()
	require.Equal(t, 1, w.Env.ECS.Projectiles.Len())
	var out *component.Projectile
	w.Env.ECS.Projectiles.Each(func(_ types.EntityID, p *component.Projectile) bool {
		out = p
		return false
	})
	return out
}

func TestSplashCritMultiplierHitsOnlyTheRing(t *testing.T) {
	for _, tc := range []struct {
		name    string
		chance  float64
		primary float64
		ring    float64
	}{
		{"plain", 0, 960, 960},
		// 40 × 1.5 по цели, ещё × 2 по кольцу
		{"crit", 1, 940, 880},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			_, tower := w.place(t, "splasher", grid.Cell{X: 3, Y: 10})
			tower.Def.CriticalChance = tc.chance
			_, primary := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 6, Y: 10}))
			_, ring := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 7, Y: 10}))
			_, far := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 9, Y: 10}))

			w.run(10, dt60)
			assert.Equal(t, tc.primary, primary.Health)
			assert.Equal(t, tc.ring, ring.Health)
			assert.Equal(t, 1000.0, far.Health, "outside the splash radius")
			assert.Equal(t, 0, w.Env.ECS.Projectiles.Len())
		})
	}
}

func TestPierceAdjacentLinearFalloff(t *testing.T) {
	for _, tc := range []struct {
		name    string
		falloff float64
		want    []float64
	}{
		{"quarter", 0.25, []float64{960, 970, 980, 1000}},
		{"default spreads over count+1", 0, []float64{960, 1000 - 40*2.0/3, 1000 - 40.0/3, 1000}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			_, tower := w.place(t, "piercer", grid.Cell{X: 3, Y: 10})
			sp, ok := defs.SpecialOf[*defs.PierceAdjacentSpecial](tower.Def.Special)
			require.True(t, ok)
			sp.Falloff = tc.falloff

			var line []*component.Enemy
			for x := 5; x <= 8; x++ {
				_, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: x, Y: 10}))
				line = append(line, e)
			}

			w.run(60, dt60)
			for i, e := range line {
				assert.InDelta(t, tc.want[i], e.Health, 1e-9, "enemy %d", i)
			}
			assert.Equal(t, 0, w.Env.ECS.Projectiles.Len(), "stops after count+1 hits")
		})
	}
}

func TestBoomerangPhases(t *testing.T) {
	w := newTestWorld(t)
	_, tower := w.place(t, "boomer", grid.Cell{X: 3, Y: 10})
	// Вне досягаемости траектории: только запускает бросок.
	_, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 3, Y: 16}))

	w.Step(0.25)
	p := w.onlyProjectile(t)
	assert.Equal(t, component.BoomerangOutgoing, p.Phase)
	assert.Equal(t, tower.Center.Add(component.Position{X: 0, Y: 160}), p.Waypoint)

	w.Step(0.25)
	assert.Equal(t, component.BoomerangOffset, p.Phase)
	assert.Equal(t, tower.Center.Add(component.Position{X: 0, Y: 80}), p.Waypoint, "turns back through the midpoint")

	w.Step(0.25)
	assert.Equal(t, component.BoomerangReturning, p.Phase)

	w.Step(0.25)
	assert.Equal(t, 0, w.Env.ECS.Projectiles.Len(), "vanishes on reaching the tower")
	assert.Equal(t, 1000.0, e.Health)
}

func TestBoomerangHitCooldownPerEnemy(t *testing.T) {
	for _, tc := range []struct {
		name     string
		cooldown float64
		want     float64
	}{
		// попадания в 0.25 и 1.0; в 0.5 и 0.75 цель ещё на кулдауне
		{"half second", 0.5, 980},
		{"short", 0.2, 960},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			_, tower := w.place(t, "boomer", grid.Cell{X: 3, Y: 10})
			sp, ok := defs.SpecialOf[*defs.BoomerangSpecial](tower.Def.Special)
			require.True(t, ok)
			sp.HitCooldown = tc.cooldown
			_, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 3, Y: 13}))

			w.run(4, 0.25)
			assert.Equal(t, tc.want, e.Health)
			assert.Equal(t, 0, w.Env.ECS.Projectiles.Len())
		})
	}
}

func TestBroadsideFiresRadiallyOnItsOwnTimer(t *testing.T) {
	w := newTestWorld(t)
	w.place(t, "broadsider", grid.Cell{X: 3, Y: 10})
	var sides []*component.Enemy
	for _, c := range []grid.Cell{{X: 5, Y: 10}, {X: 3, Y: 12}, {X: 1, Y: 10}, {X: 3, Y: 8}} {
		_, e := w.spawnAt(t, "dummy", w.center(c))
		sides = append(sides, e)
	}
	_, diagonal := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 5, Y: 12}))

	w.run(3, 0.25)
	for _, e := range sides {
		assert.Equal(t, 1000.0, e.Health, "first volley one interval after placement")
	}

	w.Step(0.25)
	for i, e := range sides {
		assert.Equal(t, 985.0, e.Health, "side %d", i)
	}
	assert.Equal(t, 1000.0, diagonal.Health)

	w.run(4, 0.25)
	for _, e := range sides {
		assert.Equal(t, 970.0, e.Health)
	}
	assert.Equal(t, 1000.0, diagonal.Health)
}

func TestBeamHitsClosestTargetsAndSlows(t *testing.T) {
	w := newTestWorld(t)
	_, tower := w.place(t, "beamer", grid.Cell{X: 3, Y: 10})
	nearID, near := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 4, Y: 10}))
	_, far := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 6, Y: 10}))
	midID, mid := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 5, Y: 10}))

	w.Step(dt60)
	assert.Equal(t, []types.EntityID{nearID, midID}, tower.BeamTargets)
	assert.True(t, tower.BeamActive)
	assert.Equal(t, 1, w.count(event.BeamStarted))

	assert.Equal(t, 990.0, near.Health)
	assert.Equal(t, 990.0, mid.Health)
	assert.Equal(t, 1000.0, far.Health)
	assert.Equal(t, 0.5, near.SlowMultiplier())
	assert.Equal(t, 0.5, mid.SlowMultiplier())
	assert.False(t, far.HasStatus(component.StatusSlow))
}

func TestLaserPainterRestartsChargeOnNewTarget(t *testing.T) {
	w := newTestWorld(t)
	_, tower := w.place(t, "painter", grid.Cell{X: 3, Y: 10})
	first, a := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 6, Y: 10}))

	w.run(4, 0.25)
	assert.Equal(t, first, tower.PaintingTarget)
	assert.Equal(t, 0.25, tower.PaintStartTime)

	second, b := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 5, Y: 10}))
	w.Step(0.25)
	assert.Equal(t, second, tower.PaintingTarget)
	assert.Equal(t, 1.25, tower.PaintStartTime)
	assert.Equal(t, 1000.0, a.Health, "the charge on the old target is lost")

	w.run(3, 0.25)
	assert.Equal(t, 1000.0, b.Health)
	w.Step(0.25)
	assert.Equal(t, 900.0, b.Health, "fires a full charge after switching")
	assert.Equal(t, 1000.0, a.Health)
	assert.Equal(t, 2.25, tower.PaintStartTime, "recharges after firing")
}

func TestRampageStacksAndDecay(t *testing.T) {
	w := newTestWorld(t)
	_, tower := w.place(t, "rampager", grid.Cell{X: 3, Y: 10})
	_, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 5, Y: 10}))

	w.Step(0.25)
	assert.Equal(t, 990.0, e.Health)
	assert.Equal(t, 1, tower.Stacks)

	w.run(4, 0.25)
	assert.Equal(t, 975.0, e.Health)
	w.run(4, 0.25)
	assert.Equal(t, 955.0, e.Health)
	w.run(4, 0.25)
	assert.Equal(t, 935.0, e.Health, "capped at max_stacks")
	assert.Equal(t, 2, tower.Stacks)

	e.Pos = w.center(grid.Cell{X: 20, Y: 10})
	w.run(5, 0.25)
	assert.Equal(t, 2, tower.Stacks)
	w.Step(0.25)
	assert.Equal(t, 0, tower.Stacks, "decays decay_duration after the last attack")

	e.Pos = w.center(grid.Cell{X: 5, Y: 10})
	w.Step(0.25)
	assert.Equal(t, 925.0, e.Health)
}

func TestSolarAdjacencyGatesAttacks(t *testing.T) {
	w := newTestWorld(t)
	id, tower := w.place(t, "solar", grid.Cell{X: 3, Y: 10})
	_, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 6, Y: 10}))

	w.run(2, dt60)
	assert.Equal(t, 0, w.Combat.SameRaceNeighbours(id, tower))
	assert.Equal(t, 1000.0, e.Health)
	assert.False(t, tower.BeamActive)

	w.place(t, "amplifier", grid.Cell{X: 4, Y: 11})
	w.Step(dt60)
	assert.Equal(t, 1, w.Combat.SameRaceNeighbours(id, tower), "diagonal neighbours count")
	assert.Equal(t, 990.0, e.Health)
}

func TestRandomSelectionStaysInCandidates(t *testing.T) {
	pick := func(t *testing.T) ([]types.EntityID, []types.EntityID) {
		w := newTestWorld(t)
		_, tower := w.place(t, "gun", grid.Cell{X: 3, Y: 10})
		tower.Def.TargetSelection = defs.SelectRandom
		for x := 5; x <= 7; x++ {
			w.spawnAt(t, "dummy", w.center(grid.Cell{X: x, Y: 10}))
		}
		cands := w.Combat.Candidates(tower)
		require.Len(t, cands, 3)
		var picks []types.EntityID
		for i := 0; i < 60; i++ {
			picks = append(picks, w.Combat.SelectTarget(tower, cands))
		}
		return cands, picks
	}

	cands, picks := pick(t)
	seen := make(map[types.EntityID]bool)
	for _, id := range picks {
		require.Contains(t, cands, id)
		seen[id] = true
	}
	assert.Len(t, seen, 3, "every candidate is eventually picked")

	_, again := pick(t)
	assert.Equal(t, picks, again, "same seed, same picks")
}

func TestContinuousAuras(t *testing.T) {
	for _, tc := range []struct {
		tower  string
		health float64
		slow   float64
	}{
		{"scorcher", 980, 1},
		{"chiller", 1000, 0.7},
		{"storm", 980, 0.7},
	} {
		t.Run(tc.tower, func(t *testing.T) {
			w := newTestWorld(t)
			w.place(t, tc.tower, grid.Cell{X: 3, Y: 10})
			_, near := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 5, Y: 10}))
			_, far := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 7, Y: 10}))

			// 10 за 0.5 с, по dt/interval каждый тик
			w.run(60, dt60)
			assert.InDelta(t, tc.health, near.Health, 1e-9)
			assert.InDelta(t, tc.slow, near.SlowMultiplier(), 1e-9)
			assert.Equal(t, 1000.0, far.Health)
			assert.Empty(t, far.Statuses)
		})
	}
}

func TestPulseAuras(t *testing.T) {
	for _, tc := range []struct {
		tower  string
		active func(*component.Enemy) bool
		health float64
	}{
		{"slow_pulser", func(e *component.Enemy) bool { return e.HasStatus(component.StatusSlow) }, 1000},
		{"stun_pulser", func(e *component.Enemy) bool { return e.HasStatus(component.StatusStun) }, 1000},
		{"chill_pulser", func(e *component.Enemy) bool { return e.HasStatus(component.StatusBonechill) }, 1000},
		// тики в 0.5 и 0.75
		{"dot_pulser", func(e *component.Enemy) bool { return e.DoTs["dot_pulse_aura"] != nil }, 990},
	} {
		t.Run(tc.tower, func(t *testing.T) {
			w := newTestWorld(t)
			w.place(t, tc.tower, grid.Cell{X: 3, Y: 10})
			_, near := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 5, Y: 10}))
			_, far := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 7, Y: 10}))

			w.Step(0.25)
			assert.True(t, tc.active(near), "first pulse on the placement tick")
			assert.False(t, tc.active(far))

			w.run(3, 0.25)
			assert.False(t, tc.active(near), "expired before the next pulse")
			assert.Equal(t, tc.health, near.Health)

			w.Step(0.25)
			assert.True(t, tc.active(near))
			assert.Equal(t, 2, w.count(event.PulseEmitted))
		})
	}
}

func TestGroundZoneDamageScalesWithTickLength(t *testing.T) {
	for _, tc := range []struct {
		name  string
		dt    float64
		ticks int
	}{
		{"quarter", 0.25, 8},
		{"60Hz", dt60, 120},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			_, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 10, Y: 10}))
			w.Env.ECS.Effects.Add(w.Env.ECS.NewEntity(), &component.Effect{
				Kind:     component.EffectGroundZone,
				Pos:      e.Pos,
				Radius:   48,
				Duration: 1,
				Zone:     &component.GroundZone{Damage: 10, Interval: 0.5, DamageType: "normal"},
			})

			w.run(tc.ticks, tc.dt)
			assert.InDelta(t, 980.0, e.Health, 1e-9, "10 per 0.5 s for 1 s")
			assert.Equal(t, 0, w.Env.ECS.Effects.Len())
		})
	}
}
