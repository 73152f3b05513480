// internal/defs/towers.go
package defs

import (
	"slices"

	"go-grid-defense/internal/types"
)

// AttackType defines how a tower delivers damage.
type AttackType string

const (
	AttackProjectile AttackType = "projectile"
	AttackBeam       AttackType = "beam"
	AttackAura       AttackType = "aura"
	AttackHybrid     AttackType = "hybrid"
	AttackNone       AttackType = "none"
)

// TargetSelection defines which candidate a tower picks.
type TargetSelection string

const (
	SelectClosest              TargetSelection = "closest"
	SelectRandom               TargetSelection = "random"
	SelectHighestCurrentHealth TargetSelection = "highest_current_health"
	SelectStrategicStrike      TargetSelection = "strategic_strike"
)

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID   string `yaml:"-"`
	Race string `yaml:"-"`
	Name string `yaml:"name"`
	Cost int    `yaml:"cost"`

	GridWidth         int  `yaml:"grid_width"`
	GridHeight        int  `yaml:"grid_height"`
	Traversable       bool `yaml:"traversable"`
	TriggerOnWalkover bool `yaml:"trigger_on_walkover"`

	DamageMin         float64          `yaml:"damage_min"`
	DamageMax         float64          `yaml:"damage_max"`
	AttackInterval    float64          `yaml:"attack_interval"` // seconds between attacks
	AttackType        AttackType       `yaml:"attack_type"`
	Range             float64          `yaml:"range"`     // range units
	RangeMin          float64          `yaml:"range_min"` // dead zone, range units
	Targets           []types.UnitType `yaml:"targets"`
	AllowedArmorTypes []string         `yaml:"allowed_armor_types"`
	DamageType        string           `yaml:"damage_type"`
	CriticalChance    float64          `yaml:"critical_chance"` // 0..1
	CriticalMult      float64          `yaml:"critical_multiplier"`
	ArmorPenetration  float64          `yaml:"armor_penetration"`
	TargetSelection   TargetSelection  `yaml:"target_selection"`
	BeamTargets       int              `yaml:"beam_targets"`

	ProjectileSpeed     float64 `yaml:"projectile_speed"` // pixels per second
	SplashRadius        float64 `yaml:"splash_radius"`
	BounceCount         int     `yaml:"bounce_count"`
	BounceRange         float64 `yaml:"bounce_range"`
	BounceDamageFalloff float64 `yaml:"bounce_damage_falloff"`
	PierceCount         int     `yaml:"pierce_count"`

	Special SpecialList `yaml:"special"`
}

// Key returns the race-scoped identifier of the tower.
func (d *TowerDefinition) Key() string {
	return d.Race + "/" + d.ID
}

// CanTarget reports whether the tower may attack a unit of the given type.
func (d *TowerDefinition) CanTarget(t types.UnitType) bool {
	return slices.Contains(d.Targets, t)
}

// AllowsArmor reports whether the optional armor filter admits an armor type.
func (d *TowerDefinition) AllowsArmor(armorType string) bool {
	return len(d.AllowedArmorTypes) == 0 || slices.Contains(d.AllowedArmorTypes, armorType)
}

// Attacks reports whether the tower emits direct attacks.
func (d *TowerDefinition) Attacks() bool {
	switch d.AttackType {
	case AttackProjectile, AttackBeam, AttackHybrid:
		return true
	}
	return false
}

// Selection returns the effective target selection mode.
func (d *TowerDefinition) Selection() TargetSelection {
	if d.TargetSelection == SelectStrategicStrike {
		return SelectHighestCurrentHealth
	}
	if d.TargetSelection == "" {
		return SelectClosest
	}
	return d.TargetSelection
}

// normalize fills defaults and folds the plain stat fields into specials so
// the runtime only has to look at one place.
func (d *TowerDefinition) normalize() {
	if d.GridWidth <= 0 {
		d.GridWidth = 1
	}
	if d.GridHeight <= 0 {
		d.GridHeight = 1
	}
	if d.AttackType == "" {
		d.AttackType = AttackNone
	}
	if d.DamageMax < d.DamageMin {
		d.DamageMax = d.DamageMin
	}
	if d.CriticalMult <= 0 {
		d.CriticalMult = 1
	}
	if len(d.Targets) == 0 {
		d.Targets = []types.UnitType{types.Ground, types.Air}
	}
	if d.BeamTargets <= 0 {
		d.BeamTargets = 1
	}
	if d.DamageType == "" {
		d.DamageType = "normal"
	}
	if d.SplashRadius > 0 && !d.Special.Has(EffectSplash) {
		d.Special = append(d.Special, &SplashSpecial{Radius: d.SplashRadius, CritSplashMultiplier: 1})
	}
	if d.BounceCount > 0 && !d.Special.Has(EffectBounce) {
		falloff := d.BounceDamageFalloff
		if falloff <= 0 {
			falloff = 1
		}
		d.Special = append(d.Special, &BounceSpecial{Count: d.BounceCount, Range: d.BounceRange, Falloff: falloff})
	}
	if d.PierceCount > 0 && !d.Special.Has(EffectPierceAdjacent) {
		d.Special = append(d.Special, &PierceAdjacentSpecial{Count: d.PierceCount})
	}
}
