// internal/system/visual_effect.go
package system

import (
	"go-grid-defense/internal/component"
	"go-grid-defense/internal/types"
)

// VisualEffectSystem старит временные эффекты; наземные зоны наносят урон.
type VisualEffectSystem struct {
	env *Env
}

// NewVisualEffectSystem создает новую систему эффектов.
func NewVisualEffectSystem(env *Env) *VisualEffectSystem {
	return &VisualEffectSystem{env: env}
}

// Update обновляет все активные эффекты.
func (s *VisualEffectSystem) Update(deltaTime float64) {
	s.env.ECS.Effects.Each(func(id types.EntityID, fx *component.Effect) bool {
		fx.Age += deltaTime
		if fx.Zone != nil {
			s.tickZone(fx, deltaTime)
		}
		if fx.Expired() {
			s.env.ECS.Effects.Remove(id)
		}
		return true
	})
}

func (s *VisualEffectSystem) tickZone(fx *component.Effect, dt float64) {
	z := fx.Zone
	if z.Interval <= 0 {
		return
	}
	damage := z.Damage * dt / z.Interval
	for _, id := range s.env.EnemiesInRadius(fx.Pos, fx.Radius, func(e *component.Enemy) bool { return z.Admits(e.Type) }) {
		e, _ := s.env.ECS.Enemies.Get(id)
		s.env.ApplyDamage(id, e, Hit{Damage: damage, DamageType: z.DamageType, Source: z.Source})
	}
}
