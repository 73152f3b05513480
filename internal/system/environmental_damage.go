// internal/system/environmental_damage.go
package system

import (
	"go-grid-defense/internal/component"
	"go-grid-defense/internal/types"
)

// EnvironmentalDamageSystem — ловушки, срабатывающие при наступании.
type EnvironmentalDamageSystem struct {
	env    *Env
	status *StatusEffectSystem
}

func NewEnvironmentalDamageSystem(env *Env, status *StatusEffectSystem) *EnvironmentalDamageSystem {
	return &EnvironmentalDamageSystem{env: env, status: status}
}

// CheckWalkover применяет спецэффекты ловушек под противником, один раз за тик.
func (s *EnvironmentalDamageSystem) CheckWalkover(e *component.Enemy) {
	if !e.Alive() {
		return
	}
	cell := s.env.CellOf(e.Pos)
	s.env.ECS.Towers.Each(func(id types.EntityID, t *component.Tower) bool {
		if !t.Def.TriggerOnWalkover || t.Footprint.Min != cell || !t.Def.CanTarget(e.Type) {
			return true
		}
		s.status.ApplyOnHit(id, t, e)
		return true
	})
}
