// internal/system/exploder.go
package system

import (
	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/utils"
)

const explosionVisualDuration = 0.4

// ExploderSystem двигает пролетающие тела и взрывает их в конце пути.
type ExploderSystem struct {
	env *Env
}

func NewExploderSystem(env *Env) *ExploderSystem {
	return &ExploderSystem{env: env}
}

// Launch выпускает тело от башни в сторону точки.
func (s *ExploderSystem) Launch(towerID types.EntityID, t *component.Tower, spec *defs.PassThroughExploderSpecial, toward component.Position, damageMultiplier float64) types.EntityID {
	dir := toward.Sub(t.Center).Normalize()
	if dir.LenSq() == 0 {
		dir = component.Position{X: 0, Y: 1}
	}
	damageType := spec.DamageType
	if damageType == "" {
		damageType = t.Def.DamageType
	}
	var zone *component.GroundZone
	if spec.LeavesZone() {
		zone = &component.GroundZone{
			Damage:     spec.ZoneDamage * damageMultiplier,
			Interval:   spec.ZoneInterval,
			DamageType: damageType,
			Targets:    t.Def.Targets,
			Source:     towerID,
		}
	}
	id := s.env.ECS.NewEntity()
	s.env.ECS.Exploders.Add(id, &component.Exploder{
		Source:           towerID,
		Pos:              t.Center,
		Dir:              dir,
		Speed:            spec.Speed,
		MaxDistance:      s.env.Px(spec.MaxDistance),
		Width:            s.env.Px(spec.Width),
		PassDamage:       spec.PassDamage * damageMultiplier,
		ExplosionRadius:  s.env.Px(spec.ExplosionRadius),
		ExplosionDamage:  spec.ExplosionDamage * damageMultiplier,
		DamageType:       damageType,
		DetonateOnImpact: spec.DetonateOnImpact,
		Targets:          t.Def.Targets,
		Hit:              make(map[types.EntityID]bool),
		Zone:             zone,
		ZoneDuration:     spec.ZoneDuration,
	})
	return id
}

func (s *ExploderSystem) Update(deltaTime float64) {
	s.env.ECS.Exploders.Each(func(id types.EntityID, x *component.Exploder) bool {
		tower, ok := s.env.Tower(x.Source)
		if !ok {
			s.env.ECS.Exploders.Remove(id)
			return true
		}
		from := x.Pos
		step := x.Speed * deltaTime
		if remaining := x.MaxDistance - x.Travelled; step > remaining {
			step = remaining
		}
		x.Pos = x.Pos.Add(x.Dir.Scale(step))
		x.Travelled += step

		reach := x.Width + s.env.Config.EnemyRadius
		reach2 := reach * reach
		impact := false
		s.env.ECS.Enemies.Each(func(eid types.EntityID, e *component.Enemy) bool {
			if x.Hit[eid] || !Eligible(tower.Def, e) {
				return true
			}
			if utils.SegmentDistSq(e.Pos, from, x.Pos) > reach2 {
				return true
			}
			x.Hit[eid] = true
			impact = true
			s.env.ApplyDamage(eid, e, Hit{Damage: x.PassDamage, DamageType: x.DamageType, ArmorPen: tower.Def.ArmorPenetration, Source: x.Source})
			return true
		})

		if x.Travelled >= x.MaxDistance || (impact && x.DetonateOnImpact) {
			s.detonate(x, tower)
			s.env.ECS.Exploders.Remove(id)
		}
		return true
	})
}

func (s *ExploderSystem) detonate(x *component.Exploder, tower *component.Tower) {
	for _, eid := range s.env.EnemiesInRadius(x.Pos, x.ExplosionRadius, func(e *component.Enemy) bool { return Eligible(tower.Def, e) }) {
		e, _ := s.env.ECS.Enemies.Get(eid)
		s.env.ApplyDamage(eid, e, Hit{Damage: x.ExplosionDamage, DamageType: x.DamageType, ArmorPen: tower.Def.ArmorPenetration, Source: x.Source})
	}
	s.env.ECS.Effects.Add(s.env.ECS.NewEntity(), &component.Effect{
		Kind: component.EffectExplosion, Pos: x.Pos, Radius: x.ExplosionRadius, Duration: explosionVisualDuration,
	})
	s.env.Events.Emit(event.Explosion, event.PulseData{Tower: x.Source, Pos: x.Pos, Radius: x.ExplosionRadius})

	if x.Zone != nil {
		zone := *x.Zone
		s.env.ECS.Effects.Add(s.env.ECS.NewEntity(), &component.Effect{
			Kind:     component.EffectGroundZone,
			Pos:      x.Pos,
			Radius:   x.ExplosionRadius,
			Duration: x.ZoneDuration,
			Zone:     &zone,
		})
	}
}
