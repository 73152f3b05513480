// internal/component/tower.go
package component

import (
	"math"

	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/grid"
)

// Tower — поставленная башня и её состояние во время матча.
type Tower struct {
	Def          *defs.TowerDefinition
	Footprint    grid.Rect
	Center       Position
	PlaceIndex   uint64
	Blocking     bool // занимает клетки сетки
	InvestedGold int

	LastAttackTime    float64
	LastPulseTime     map[defs.EffectTag]float64
	LastChainTime     float64
	LastBroadsideTime float64
	LastGoldTime      float64

	PaintingTarget types.EntityID
	PaintStartTime float64

	Stacks          int
	LastStackAttack float64

	Orbiters    []types.EntityID
	BeamTargets []types.EntityID
	BeamActive  bool
}

// NewTower creates the runtime for a freshly placed tower at time now.
func NewTower(def *defs.TowerDefinition, footprint grid.Rect, center Position, now float64) *Tower {
	never := math.Inf(-1)
	return &Tower{
		Def:               def,
		Footprint:         footprint,
		Center:            center,
		Blocking:          !def.Traversable,
		InvestedGold:      def.Cost,
		LastAttackTime:    never,
		LastPulseTime:     make(map[defs.EffectTag]float64),
		LastChainTime:     never,
		LastBroadsideTime: now,
		LastGoldTime:      now,
		LastStackAttack:   never,
	}
}
