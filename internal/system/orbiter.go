// internal/system/orbiter.go
package system

import (
	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/utils"
)

// OrbiterSystem двигает тела вокруг башен и наносит урон при касании.
type OrbiterSystem struct {
	env *Env
}

func NewOrbiterSystem(env *Env) *OrbiterSystem {
	return &OrbiterSystem{env: env}
}

// SpawnFor создаёт орбитальные тела башни, равномерно по кругу.
func (s *OrbiterSystem) SpawnFor(towerID types.EntityID, t *component.Tower) {
	spec, ok := defs.SpecialOf[*defs.OrbitingDamagerSpecial](t.Def.Special)
	if !ok {
		return
	}
	damageType := spec.DamageType
	if damageType == "" {
		damageType = t.Def.DamageType
	}
	for i := 0; i < spec.OrbCount; i++ {
		o := &component.Orbiter{
			Parent:          towerID,
			Angle:           utils.EqualSpacing(i, spec.OrbCount),
			OrbitRadius:     s.env.Px(spec.OrbitRadius),
			AngularSpeed:    spec.AngularSpeed,
			CollisionRadius: s.env.Px(spec.CollisionRadius),
			Damage:          spec.Damage,
			DamageType:      damageType,
			HitCooldown:     spec.HitCooldown,
			LastHit:         make(map[types.EntityID]float64),
		}
		o.Pos = t.Center.Add(utils.FromAngle(o.Angle).Scale(o.OrbitRadius))
		id := s.env.ECS.NewEntity()
		s.env.ECS.Orbiters.Add(id, o)
		t.Orbiters = append(t.Orbiters, id)
	}
}

// RemoveFor удаляет тела, принадлежащие башне.
func (s *OrbiterSystem) RemoveFor(t *component.Tower) {
	for _, id := range t.Orbiters {
		s.env.ECS.Orbiters.Remove(id)
	}
	t.Orbiters = nil
}

func (s *OrbiterSystem) Update(deltaTime float64) {
	now := s.env.Now()
	s.env.ECS.Orbiters.Each(func(id types.EntityID, o *component.Orbiter) bool {
		parent, ok := s.env.Tower(o.Parent)
		if !ok {
			s.env.ECS.Orbiters.Remove(id)
			return true
		}
		o.Angle = utils.NormalizeAngle(o.Angle + o.AngularSpeed*deltaTime)
		o.Pos = parent.Center.Add(utils.FromAngle(o.Angle).Scale(o.OrbitRadius))

		reach := o.CollisionRadius + s.env.Config.EnemyRadius
		reach2 := reach * reach
		s.env.ECS.Enemies.Each(func(eid types.EntityID, e *component.Enemy) bool {
			if !Eligible(parent.Def, e) || e.Pos.DistSq(o.Pos) >= reach2 {
				return true
			}
			if last, hit := o.LastHit[eid]; hit && !component.Passed(now, last+o.HitCooldown) {
				return true
			}
			o.LastHit[eid] = now
			s.env.ApplyDamage(eid, e, Hit{Damage: o.Damage, DamageType: o.DamageType, Source: o.Parent})
			return true
		})
		return true
	})
}
