// internal/component/projectile.go
package component

import (
	"go-grid-defense/internal/types"
)

// ProjectileKind — вариант снаряда.
type ProjectileKind int

const (
	ProjectileHoming ProjectileKind = iota
	ProjectileSplash
	ProjectileBouncing
	ProjectilePiercing
	ProjectileBoomerang
	ProjectileRadial // прямолетящий снаряд бортового залпа
)

func (k ProjectileKind) String() string {
	switch k {
	case ProjectileHoming:
		return "homing"
	case ProjectileSplash:
		return "splash"
	case ProjectileBouncing:
		return "bouncing"
	case ProjectilePiercing:
		return "piercing"
	case ProjectileBoomerang:
		return "boomerang"
	case ProjectileRadial:
		return "radial"
	}
	return "unknown"
}

// BoomerangPhase — состояние бумеранга.
type BoomerangPhase int

const (
	BoomerangOutgoing BoomerangPhase = iota
	BoomerangOffset
	BoomerangReturning
)

// Payload — урон, посчитанный в момент выстрела.
type Payload struct {
	Damage     float64 // уже с разбросом, критом, стаками и баффами
	Crit       bool
	DamageType string
}

// Projectile — снаряд. Source — слабая ссылка на башню-источник.
type Projectile struct {
	Kind    ProjectileKind
	Source  types.EntityID
	Target  types.EntityID
	Pos     Position
	Dir     Position // единичный вектор для прямолётных вариантов
	Speed   float64
	Payload Payload

	// Прямолётные варианты
	Travelled   float64
	MaxDistance float64

	// Отскоки: память поражённых в пределах одной цепочки
	Hit         map[types.EntityID]bool
	BouncesLeft int
	BounceRange float64
	Falloff     float64

	// Пробивание
	PierceLeft   int
	PierceFactor float64 // доля базового урона, теряемая за каждое пробитие
	PierceHits   int

	// Сплэш
	SplashRadius   float64
	CritSplashMult float64

	// Бумеранг
	Phase       BoomerangPhase
	Origin      Position
	Waypoint    Position
	Offset      float64 // боковое смещение возвратной ветки, px
	HitCooldown float64
	LastHit     map[types.EntityID]float64
}

// Straight reports whether the projectile flies along Dir instead of homing.
func (p *Projectile) Straight() bool {
	return p.Kind == ProjectilePiercing || p.Kind == ProjectileBoomerang || p.Kind == ProjectileRadial
}
