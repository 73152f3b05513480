// internal/component/effect.go
package component

import (
	"slices"

	"go-grid-defense/internal/types"
)

// EffectKind — вид временного эффекта.
type EffectKind int

const (
	EffectFloatingText EffectKind = iota
	EffectChainPath
	EffectPulseCircle
	EffectExplosion
	EffectGroundZone
)

func (k EffectKind) String() string {
	switch k {
	case EffectFloatingText:
		return "floating_text"
	case EffectChainPath:
		return "chain_path"
	case EffectPulseCircle:
		return "pulse_circle"
	case EffectExplosion:
		return "explosion"
	case EffectGroundZone:
		return "ground_zone"
	}
	return "unknown"
}

// GroundZone — часть эффекта, которая наносит урон стоящим в радиусе.
type GroundZone struct {
	Damage     float64 // за один интервал
	Interval   float64
	DamageType string
	Targets    []types.UnitType
	Source     types.EntityID
}

// Admits reports whether the zone affects a unit type.
func (z *GroundZone) Admits(t types.UnitType) bool {
	return len(z.Targets) == 0 || slices.Contains(z.Targets, t)
}

// Effect — временный эффект. Только GroundZone влияет на симуляцию.
type Effect struct {
	Kind     EffectKind
	Pos      Position
	Points   []Position
	Text     string
	Radius   float64
	Age      float64
	Duration float64
	Zone     *GroundZone
}

// Expired reports whether the effect outlived its duration.
func (e *Effect) Expired() bool { return Reached(e.Age, e.Duration) }

// Progress returns the age as a fraction of the duration.
func (e *Effect) Progress() float64 {
	if e.Duration <= 0 {
		return 1
	}
	return min(1, e.Age/e.Duration)
}
