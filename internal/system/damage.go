// internal/system/damage.go
package system

import (
	"math"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/types"
)

// Hit — один удар по противнику.
type Hit struct {
	Damage     float64 // базовый урон D
	DamageType string
	Bonus      float64 // множитель B, 0 означает 1
	ArmorPen   float64
	Source     types.EntityID // башня-источник, NoEntity если нет
}

// ArmorMultiplier returns the damage multiplier for an effective armor value.
func ArmorMultiplier(effectiveArmor, k float64) float64 {
	if effectiveArmor >= 0 {
		return 1 / (1 + k*effectiveArmor)
	}
	return 1 - k*effectiveArmor
}

// EffectiveArmor subtracts penetration and aura reduction, never going below floor.
func EffectiveArmor(current, penetration, auraReduction, floor float64) float64 {
	return math.Max(floor, current-(penetration+auraReduction))
}

// ResolveDamage считает итоговый урон по противнику без побочных эффектов.
func (env *Env) ResolveDamage(e *component.Enemy, h Hit) float64 {
	if h.Damage <= 0 {
		return 0
	}
	bonus := h.Bonus
	if bonus == 0 {
		bonus = 1
	}
	typeMod := env.Catalog.ArmorModifier(e.ArmorType, h.DamageType)
	armor := EffectiveArmor(e.CurrentArmor, h.ArmorPen, e.AuraArmorReduction, env.Config.ArmorFloor)
	mark := 1.0
	if e.HasStatus(component.StatusMarkedForDeath) {
		mark = env.Config.MarkMultiplier
	}
	return math.Max(0, h.Damage*typeMod*ArmorMultiplier(armor, env.Config.ArmorConstant)*bonus*mark)
}

// ApplyDamage наносит урон и при убивающем ударе записывает награды источника.
// Возвращает нанесённый урон. Мёртвые противники урон не получают.
func (env *Env) ApplyDamage(id types.EntityID, e *component.Enemy, h Hit) float64 {
	if !e.Alive() {
		return 0
	}
	dmg := env.ResolveDamage(e, h)
	if dmg <= 0 {
		return 0
	}
	e.Health -= dmg
	if e.Health <= 0 {
		e.Health = 0
		env.onKill(id, e, h.Source)
	}
	return dmg
}

func (env *Env) onKill(id types.EntityID, e *component.Enemy, source types.EntityID) {
	e.Killer = source
	tower, ok := env.Tower(source)
	if !ok {
		return
	}
	for _, s := range tower.Def.Special {
		switch sp := s.(type) {
		case *defs.GoldOnKillSpecial:
			if env.Rng.Chance(sp.ChancePercent / 100) {
				e.PendingGold += sp.GoldAmount
			}
		case *defs.BountyOnKillSpecial:
			e.PendingPenalty += sp.GoldPenalty
		}
	}
	env.Logger.Debug("enemy killed", "enemy", id, "tower", source, "def", e.DefID)
}
