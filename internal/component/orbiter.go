// internal/component/orbiter.go
package component

import "go-grid-defense/internal/types"

// Orbiter — тело, вращающееся вокруг башни-владельца.
type Orbiter struct {
	Parent          types.EntityID
	Angle           float64
	OrbitRadius     float64 // px
	AngularSpeed    float64 // rad/s
	CollisionRadius float64 // px
	Damage          float64
	DamageType      string
	HitCooldown     float64
	LastHit         map[types.EntityID]float64
	Pos             Position
}

// Exploder — летящее по прямой тело, взрывающееся в конце пути.
type Exploder struct {
	Source           types.EntityID
	Pos              Position
	Dir              Position
	Speed            float64
	Travelled        float64
	MaxDistance      float64 // px
	Width            float64 // px, полуширина коридора поражения
	PassDamage       float64
	ExplosionRadius  float64 // px
	ExplosionDamage  float64
	DamageType       string
	DetonateOnImpact bool
	Targets          []types.UnitType
	Hit              map[types.EntityID]bool

	// Zone — шаблон зоны, остающейся после взрыва; nil если зоны нет.
	Zone         *GroundZone
	ZoneDuration float64
}
