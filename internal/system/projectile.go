// internal/system/projectile.go
package system

import (
	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/utils"
)

const defaultProjectileSpeed = 300.0 // px/s

// ProjectileSystem управляет движением снарядов и нанесением урона
type ProjectileSystem struct {
	env    *Env
	combat *CombatSystem
}

func NewProjectileSystem(env *Env) *ProjectileSystem {
	return &ProjectileSystem{env: env}
}

// Bind attaches the tower runtime used to resolve hits.
func (s *ProjectileSystem) Bind(combat *CombatSystem) { s.combat = combat }

func projectileSpeed(def *defs.TowerDefinition) float64 {
	if def.ProjectileSpeed > 0 {
		return def.ProjectileSpeed
	}
	return defaultProjectileSpeed
}

// Launch создаёт снаряд башни по цели; вариант определяется спецэффектами.
func (s *ProjectileSystem) Launch(towerID types.EntityID, t *component.Tower, target types.EntityID, targetPos component.Position, payload component.Payload) types.EntityID {
	p := &component.Projectile{
		Kind:    component.ProjectileHoming,
		Source:  towerID,
		Target:  target,
		Pos:     t.Center,
		Dir:     targetPos.Sub(t.Center).Normalize(),
		Speed:   projectileSpeed(t.Def),
		Payload: payload,
	}
	for _, sp := range t.Def.Special {
		switch v := sp.(type) {
		case *defs.BoomerangSpecial:
			p.Kind = component.ProjectileBoomerang
			p.Target = types.NoEntity
			p.Origin = t.Center
			p.MaxDistance = s.env.Px(v.MaxDistance)
			p.Waypoint = t.Center.Add(p.Dir.Scale(p.MaxDistance))
			p.HitCooldown = v.HitCooldown
			p.LastHit = make(map[types.EntityID]float64)
			p.Offset = s.env.Px(v.Offset)
		case *defs.SplashSpecial:
			p.Kind = component.ProjectileSplash
			p.SplashRadius = s.env.Px(v.Radius)
			p.CritSplashMult = v.CritSplashMultiplier
		case *defs.BounceSpecial:
			p.Kind = component.ProjectileBouncing
			p.BouncesLeft = v.Count
			p.BounceRange = s.env.Px(v.Range)
			p.Falloff = v.Falloff
			p.Hit = make(map[types.EntityID]bool)
		case *defs.PierceAdjacentSpecial:
			p.Kind = component.ProjectilePiercing
			p.Target = types.NoEntity
			p.PierceLeft = v.Count
			p.PierceFactor = v.Falloff
			if p.PierceFactor == 0 {
				p.PierceFactor = 1 / float64(v.Count+1)
			}
			p.MaxDistance = s.env.Px(t.Def.Range) * 1.5
			p.Hit = make(map[types.EntityID]bool)
		default:
			continue
		}
		break
	}
	id := s.env.ECS.NewEntity()
	s.env.ECS.Projectiles.Add(id, p)
	return id
}

// LaunchRadial создаёт прямолетящий снаряд бортового залпа.
func (s *ProjectileSystem) LaunchRadial(towerID types.EntityID, t *component.Tower, dir component.Position, maxDistance float64, payload component.Payload) types.EntityID {
	id := s.env.ECS.NewEntity()
	s.env.ECS.Projectiles.Add(id, &component.Projectile{
		Kind:        component.ProjectileRadial,
		Source:      towerID,
		Pos:         t.Center,
		Dir:         dir.Normalize(),
		Speed:       projectileSpeed(t.Def),
		Payload:     payload,
		MaxDistance: maxDistance,
		Hit:         make(map[types.EntityID]bool),
	})
	return id
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	s.env.ECS.Projectiles.Each(func(id types.EntityID, p *component.Projectile) bool {
		// Башня-источник продана: атрибуции нет, урон не наносится.
		tower, ok := s.env.Tower(p.Source)
		if !ok {
			s.env.ECS.Projectiles.Remove(id)
			return true
		}
		var alive bool
		switch p.Kind {
		case component.ProjectileHoming, component.ProjectileSplash, component.ProjectileBouncing:
			alive = s.updateHoming(p, tower, deltaTime)
		case component.ProjectilePiercing, component.ProjectileRadial:
			alive = s.updateStraight(p, tower, deltaTime)
		case component.ProjectileBoomerang:
			alive = s.updateBoomerang(p, tower, deltaTime)
		}
		if !alive {
			s.env.ECS.Projectiles.Remove(id)
		}
		return true
	})
}

func (s *ProjectileSystem) updateHoming(p *component.Projectile, tower *component.Tower, dt float64) bool {
	target, ok := s.env.LiveEnemy(p.Target)
	if !ok {
		// Цель пропала, снаряд исчезает
		return false
	}
	delta := target.Pos.Sub(p.Pos)
	dist := delta.Len()
	step := p.Speed * dt
	if dist > step && dist >= s.env.Config.ProjectileHitRadius {
		p.Dir = delta.Scale(1 / dist)
		p.Pos = p.Pos.Add(p.Dir.Scale(step))
		return true
	}
	p.Pos = target.Pos

	switch p.Kind {
	case component.ProjectileSplash:
		s.splash(p, tower)
		return false
	case component.ProjectileBouncing:
		return s.bounce(p, tower)
	}
	s.combat.HitEnemy(p.Source, tower, p.Target, target, p.Payload.Damage, p.Payload.DamageType)
	return false
}

func (s *ProjectileSystem) splash(p *component.Projectile, tower *component.Tower) {
	primary, _ := s.env.ECS.Enemies.Get(p.Target)
	s.combat.HitEnemy(p.Source, tower, p.Target, primary, p.Payload.Damage, p.Payload.DamageType)

	// Множитель крита на всплеск действует только на кольцо вокруг цели.
	damage := p.Payload.Damage
	if p.Payload.Crit {
		damage *= p.CritSplashMult
	}
	for _, id := range s.env.EnemiesInRadius(p.Pos, p.SplashRadius, func(e *component.Enemy) bool { return Eligible(tower.Def, e) }) {
		if id == p.Target {
			continue
		}
		e, _ := s.env.ECS.Enemies.Get(id)
		s.env.ApplyDamage(id, e, Hit{Damage: damage, DamageType: p.Payload.DamageType, ArmorPen: tower.Def.ArmorPenetration, Source: p.Source})
	}
}

// bounce наносит урон текущей цели и перенацеливается. Память попаданий
// живёт до исчезновения снаряда.
func (s *ProjectileSystem) bounce(p *component.Projectile, tower *component.Tower) bool {
	target, _ := s.env.ECS.Enemies.Get(p.Target)
	s.combat.HitEnemy(p.Source, tower, p.Target, target, p.Payload.Damage, p.Payload.DamageType)
	p.Hit[p.Target] = true
	if p.BouncesLeft <= 0 {
		return false
	}
	next := types.NoEntity
	best := p.BounceRange * p.BounceRange
	s.env.ECS.Enemies.Each(func(id types.EntityID, e *component.Enemy) bool {
		if p.Hit[id] || !Eligible(tower.Def, e) {
			return true
		}
		if d := e.Pos.DistSq(p.Pos); d <= best {
			next, best = id, d
			if d == 0 {
				return false
			}
		}
		return true
	})
	if next == types.NoEntity {
		return false
	}
	p.BouncesLeft--
	p.Payload.Damage *= p.Falloff
	p.Target = next
	return true
}

func (s *ProjectileSystem) updateStraight(p *component.Projectile, tower *component.Tower, dt float64) bool {
	from := p.Pos
	step := p.Speed * dt
	p.Pos = p.Pos.Add(p.Dir.Scale(step))
	p.Travelled += step

	reach := s.env.Config.ProjectileHitRadius + s.env.Config.EnemyRadius
	for _, id := range s.swept(from, p.Pos, reach, tower.Def, p.Hit) {
		e, _ := s.env.ECS.Enemies.Get(id)
		p.Hit[id] = true
		if p.Kind == component.ProjectileRadial {
			s.combat.HitEnemy(p.Source, tower, id, e, p.Payload.Damage, p.Payload.DamageType)
			return false
		}
		// Линейное затухание: каждое пробитие снимает PierceFactor от базы.
		factor := max(0, 1-p.PierceFactor*float64(p.PierceHits))
		s.combat.HitEnemy(p.Source, tower, id, e, p.Payload.Damage*factor, p.Payload.DamageType)
		p.PierceHits++
		if p.PierceHits > p.PierceLeft {
			return false
		}
	}
	return p.Travelled < p.MaxDistance
}

// swept lists eligible enemies within reach of the segment from-to that are
// not in skip, ordered by distance from the segment start.
func (s *ProjectileSystem) swept(from, to component.Position, reach float64, def *defs.TowerDefinition, skip map[types.EntityID]bool) []types.EntityID {
	var out []types.EntityID
	r2 := reach * reach
	s.env.ECS.Enemies.Each(func(id types.EntityID, e *component.Enemy) bool {
		if skip[id] || !Eligible(def, e) {
			return true
		}
		if utils.SegmentDistSq(e.Pos, from, to) <= r2 {
			out = append(out, id)
		}
		return true
	})
	if len(out) > 1 {
		out = s.combat.Closest(from, out, len(out))
	}
	return out
}

// updateBoomerang — три фазы: вперёд, возврат со смещением вбок, к башне.
func (s *ProjectileSystem) updateBoomerang(p *component.Projectile, tower *component.Tower, dt float64) bool {
	now := s.env.Now()
	from := p.Pos
	step := p.Speed * dt

	goal := p.Waypoint
	if p.Phase == component.BoomerangReturning {
		goal = tower.Center
	}
	delta := goal.Sub(p.Pos)
	if dist := delta.Len(); dist <= step {
		p.Pos = goal
		switch p.Phase {
		case component.BoomerangOutgoing:
			p.Phase = component.BoomerangOffset
			out := p.Waypoint.Sub(p.Origin)
			p.Waypoint = p.Origin.Add(out.Scale(0.5)).Add(out.Normalize().Perp().Scale(p.Offset))
		case component.BoomerangOffset:
			p.Phase = component.BoomerangReturning
		case component.BoomerangReturning:
			s.boomerangHits(p, tower, from, now)
			return false
		}
	} else {
		p.Pos = p.Pos.Add(delta.Scale(step / dist))
	}
	s.boomerangHits(p, tower, from, now)
	return true
}

func (s *ProjectileSystem) boomerangHits(p *component.Projectile, tower *component.Tower, from component.Position, now float64) {
	reach := s.env.Config.ProjectileHitRadius + s.env.Config.EnemyRadius
	for _, id := range s.swept(from, p.Pos, reach, tower.Def, nil) {
		if last, ok := p.LastHit[id]; ok && !component.Passed(now, last+p.HitCooldown) {
			continue
		}
		p.LastHit[id] = now
		e, _ := s.env.ECS.Enemies.Get(id)
		s.combat.HitEnemy(p.Source, tower, id, e, p.Payload.Damage, p.Payload.DamageType)
	}
}
