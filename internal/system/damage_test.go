package system

import (
	"testing"

	"go-grid-defense/internal/component"
	"go-grid-defense/pkg/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArmorMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, ArmorMultiplier(0, 0.06))
	assert.InDelta(t, 0.9434, ArmorMultiplier(1, 0.06), 1e-4)
	assert.InDelta(t, 1.0/1.6, ArmorMultiplier(10, 0.06), 1e-12)
	assert.InDelta(t, 1.3, ArmorMultiplier(-5, 0.06), 1e-12, "negative armor amplifies linearly")
}

func TestEffectiveArmorFloor(t *testing.T) {
	assert.Equal(t, -20.0, EffectiveArmor(5, 100, 0, -20))
	assert.Equal(t, -20.0, EffectiveArmor(5, 25, 0, -20), "penetration of base+|floor| lands exactly on the floor")
	assert.Equal(t, 2.0, EffectiveArmor(5, 1, 2, -20))
}

func TestMarkedForDeathMultipliesDamage(t *testing.T) {
	w := newTestWorld(t)
	tid, _ := w.place(t, "gun", grid.Cell{X: 3, Y: 10})
	id, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 12, Y: 10}))

	w.Status.ApplyStatus(e, component.StatusMarkedForDeath, tid, 3, w.Env.Config.MarkMultiplier)
	dealt := w.Env.ApplyDamage(id, e, Hit{Damage: 100, DamageType: "normal", Source: tid})
	assert.Equal(t, 150.0, dealt)
	assert.Equal(t, 850.0, e.Health)
}

func TestMarkExpires(t *testing.T) {
	w := newTestWorld(t)
	_, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 12, Y: 10}))
	w.Status.ApplyStatus(e, component.StatusMarkedForDeath, 0, 0.5, 1.5)

	w.run(31, dt60)
	assert.False(t, e.HasStatus(component.StatusMarkedForDeath))
	assert.Equal(t, 100.0, w.Env.ResolveDamage(e, Hit{Damage: 100, DamageType: "normal"}))
}

func TestTypeModifierAndPenetration(t *testing.T) {
	w := newTestWorld(t)
	_, e := w.spawnAt(t, "plated", w.center(grid.Cell{X: 12, Y: 10}))

	// heavy × magic = 0.5, armor 5 − pen 5 = 0
	assert.InDelta(t, 50.0, w.Env.ResolveDamage(e, Hit{Damage: 100, DamageType: "magic", ArmorPen: 5}), 1e-12)
	// armor 5 → 1/1.3
	assert.InDelta(t, 100/1.3, w.Env.ResolveDamage(e, Hit{Damage: 100, DamageType: "normal"}), 1e-9)
	// aura reduction stacks with penetration
	e.AuraArmorReduction = 10
	assert.InDelta(t, 100*1.3, w.Env.ResolveDamage(e, Hit{Damage: 100, DamageType: "normal", ArmorPen: 0}), 1e-9)
}

func TestNegativeDamageClampsToZero(t *testing.T) {
	w := newTestWorld(t)
	id, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 12, Y: 10}))

	assert.Equal(t, 0.0, w.Env.ApplyDamage(id, e, Hit{Damage: -40, DamageType: "normal"}))
	assert.Equal(t, 1000.0, e.Health)
}

func TestDeadEnemyTakesNoDamage(t *testing.T) {
	w := newTestWorld(t)
	id, e := w.spawnAt(t, "dummy", w.center(grid.Cell{X: 12, Y: 10}))
	w.Env.ApplyDamage(id, e, Hit{Damage: 5000, DamageType: "normal"})
	require.False(t, e.Alive())

	assert.Equal(t, 0.0, w.Env.ApplyDamage(id, e, Hit{Damage: 10, DamageType: "normal"}))
	assert.Equal(t, 0.0, e.Health)
}

func TestArmorShredKeepsArmorWithinBounds(t *testing.T) {
	w := newTestWorld(t)
	w.place(t, "shredder", grid.Cell{X: 3, Y: 10})
	_, e := w.spawnAt(t, "plated", w.center(grid.Cell{X: 5, Y: 10}))

	w.run(3*60, dt60)
	assert.Equal(t, w.Env.Config.ArmorFloor, e.CurrentArmor)
	assert.GreaterOrEqual(t, e.CurrentArmor, w.Env.Config.ArmorFloor)
	assert.LessOrEqual(t, e.CurrentArmor, e.BaseArmor)
}
