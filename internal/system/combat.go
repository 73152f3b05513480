// internal/system/combat.go
package system

import (
	"fmt"
	"sort"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/utils"
)

const (
	goldTextDuration    = 1.0
	defaultBroadsideRun = 6 // клеток, если у башни нет range
)

// CombatSystem — работа башен за тик: таймеры, выбор целей, атаки.
type CombatSystem struct {
	env         *Env
	status      *StatusEffectSystem
	projectiles *ProjectileSystem
	exploders   *ExploderSystem
	chain       *ChainSystem
}

func NewCombatSystem(env *Env, status *StatusEffectSystem, projectiles *ProjectileSystem, exploders *ExploderSystem, chain *ChainSystem) *CombatSystem {
	return &CombatSystem{
		env:         env,
		status:      status,
		projectiles: projectiles,
		exploders:   exploders,
		chain:       chain,
	}
}

func (s *CombatSystem) Update(deltaTime float64) {
	now := s.env.Now()
	s.env.ECS.Towers.Each(func(id types.EntityID, t *component.Tower) bool {
		s.updateGoldGeneration(id, t, now)
		s.decayStacks(t, now)
		s.updateBroadside(id, t, now)

		if !t.Def.Attacks() {
			return true
		}
		if !s.solarReady(id, t) {
			s.setBeam(id, t, nil)
			t.PaintingTarget = types.NoEntity
			return true
		}

		if _, ok := defs.SpecialOf[*defs.LaserPainterSpecial](t.Def.Special); ok {
			s.updatePainter(id, t, now)
			return true
		}
		if t.Def.AttackType == defs.AttackBeam {
			s.updateBeam(id, t, now)
			return true
		}

		if !s.Ready(id, t, now) {
			return true
		}
		if t.Def.Special.Has(defs.EffectChain) && s.chain.TryFire(id, t) {
			return true
		}
		s.attackProjectile(id, t, now)
		return true
	})
}

// Ready reports whether the tower's buffed cooldown elapsed.
func (s *CombatSystem) Ready(id types.EntityID, t *component.Tower, now float64) bool {
	_, interval := s.env.Buffs.BuffedStats(id, t)
	return component.Reached(now, t.LastAttackTime+interval)
}

// Candidates — живые подходящие противники в кольце [range_min, range], в порядке спавна.
func (s *CombatSystem) Candidates(t *component.Tower) []types.EntityID {
	r := s.env.Px(t.Def.Range)
	rMin := s.env.Px(t.Def.RangeMin)
	r2, rMin2 := r*r, rMin*rMin
	var out []types.EntityID
	s.env.ECS.Enemies.Each(func(id types.EntityID, e *component.Enemy) bool {
		if !Eligible(t.Def, e) {
			return true
		}
		d2 := e.Pos.DistSq(t.Center)
		if d2 <= r2 && d2 >= rMin2 {
			out = append(out, id)
		}
		return true
	})
	return out
}

// SelectTarget выбирает одну цель по режиму башни.
func (s *CombatSystem) SelectTarget(t *component.Tower, candidates []types.EntityID) types.EntityID {
	if len(candidates) == 0 {
		return types.NoEntity
	}
	switch t.Def.Selection() {
	case defs.SelectRandom:
		return candidates[s.env.Rng.Intn(len(candidates))]
	case defs.SelectHighestCurrentHealth:
		best, bestHP := types.NoEntity, -1.0
		for _, id := range candidates {
			e, _ := s.env.ECS.Enemies.Get(id)
			if e.Health > bestHP {
				best, bestHP = id, e.Health
			}
		}
		return best
	}
	return s.Closest(t.Center, candidates, 1)[0]
}

// Closest returns up to k candidates ordered by distance; ties keep spawn order.
func (s *CombatSystem) Closest(center component.Position, candidates []types.EntityID, k int) []types.EntityID {
	sorted := append([]types.EntityID(nil), candidates...)
	dist := make(map[types.EntityID]float64, len(sorted))
	for _, id := range sorted {
		e, _ := s.env.ECS.Enemies.Get(id)
		dist[id] = e.Pos.DistSq(center)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return dist[sorted[i]] < dist[sorted[j]] })
	if k < len(sorted) {
		sorted = sorted[:k]
	}
	return sorted
}

// RollPayload считает урон выстрела: разброс, крит, стаки, баффы.
func (s *CombatSystem) RollPayload(id types.EntityID, t *component.Tower) component.Payload {
	dmgMult, _ := s.env.Buffs.BuffedStats(id, t)
	def := t.Def
	dmg := s.env.Rng.Range(def.DamageMin, def.DamageMax)
	crit := s.env.Rng.Chance(def.CriticalChance)
	if crit {
		dmg *= def.CriticalMult
	}
	if r, ok := defs.SpecialOf[*defs.RampageSpecial](def.Special); ok {
		dmg += float64(t.Stacks) * r.DamagePerStack
	}
	return component.Payload{Damage: dmg * dmgMult, Crit: crit, DamageType: def.DamageType}
}

// HitEnemy наносит урон выстрела и применяет on-hit эффекты башни.
func (s *CombatSystem) HitEnemy(towerID types.EntityID, t *component.Tower, enemyID types.EntityID, e *component.Enemy, damage float64, damageType string) float64 {
	dealt := s.env.ApplyDamage(enemyID, e, Hit{
		Damage:     damage,
		DamageType: damageType,
		ArmorPen:   t.Def.ArmorPenetration,
		Source:     towerID,
	})
	s.status.ApplyOnHit(towerID, t, e)
	return dealt
}

// markAttack фиксирует атаку: кулдаун и стаки rampage.
func (s *CombatSystem) markAttack(t *component.Tower, now float64) {
	t.LastAttackTime = now
	if r, ok := defs.SpecialOf[*defs.RampageSpecial](t.Def.Special); ok {
		t.Stacks = min(r.MaxStacks, t.Stacks+1)
		t.LastStackAttack = now
	}
}

func (s *CombatSystem) attackProjectile(id types.EntityID, t *component.Tower, now float64) {
	target := s.SelectTarget(t, s.Candidates(t))
	if target == types.NoEntity {
		return
	}
	e, _ := s.env.ECS.Enemies.Get(target)

	if ex, ok := defs.SpecialOf[*defs.PassThroughExploderSpecial](t.Def.Special); ok {
		dmgMult, _ := s.env.Buffs.BuffedStats(id, t)
		s.exploders.Launch(id, t, ex, e.Pos, dmgMult)
		s.markAttack(t, now)
		return
	}
	payload := s.RollPayload(id, t)
	s.projectiles.Launch(id, t, target, e.Pos, payload)
	s.markAttack(t, now)
}

func (s *CombatSystem) updateBeam(id types.EntityID, t *component.Tower, now float64) {
	targets := s.Closest(t.Center, s.Candidates(t), t.Def.BeamTargets)
	s.setBeam(id, t, targets)
	if len(targets) == 0 || !s.Ready(id, t, now) {
		return
	}
	for _, target := range targets {
		e, _ := s.env.ECS.Enemies.Get(target)
		p := s.RollPayload(id, t)
		s.HitEnemy(id, t, target, e, p.Damage, p.DamageType)
	}
	s.markAttack(t, now)
}

func (s *CombatSystem) updatePainter(id types.EntityID, t *component.Tower, now float64) {
	painter, _ := defs.SpecialOf[*defs.LaserPainterSpecial](t.Def.Special)
	target := types.NoEntity
	if c := s.Closest(t.Center, s.Candidates(t), 1); len(c) > 0 {
		target = c[0]
	}
	if target == types.NoEntity {
		t.PaintingTarget = types.NoEntity
		s.setBeam(id, t, nil)
		return
	}
	if target != t.PaintingTarget {
		t.PaintingTarget = target
		t.PaintStartTime = now
	}
	s.setBeam(id, t, []types.EntityID{target})

	if !component.Reached(now, t.PaintStartTime+painter.ChargeDuration) || !s.Ready(id, t, now) {
		return
	}
	e, _ := s.env.ECS.Enemies.Get(target)
	p := s.RollPayload(id, t)
	s.HitEnemy(id, t, target, e, p.Damage, p.DamageType)
	s.markAttack(t, now)
	t.PaintStartTime = now
}

// setBeam обновляет цели луча и сообщает хосту о включении/выключении.
func (s *CombatSystem) setBeam(id types.EntityID, t *component.Tower, targets []types.EntityID) {
	t.BeamTargets = targets
	active := len(targets) > 0
	if active == t.BeamActive {
		return
	}
	t.BeamActive = active
	if active {
		s.env.Events.Emit(event.BeamStarted, event.BeamData{Tower: id})
	} else {
		s.env.Events.Emit(event.BeamStopped, event.BeamData{Tower: id})
	}
}

func (s *CombatSystem) updateGoldGeneration(id types.EntityID, t *component.Tower, now float64) {
	g, ok := defs.SpecialOf[*defs.GoldGenerationSpecial](t.Def.Special)
	if !ok || !component.Reached(now, t.LastGoldTime+g.Interval) {
		return
	}
	t.LastGoldTime += g.Interval
	s.env.Economy.Grant(g.Amount)
	text := fmt.Sprintf("+%d", g.Amount)
	s.env.ECS.Effects.Add(s.env.ECS.NewEntity(), &component.Effect{
		Kind: component.EffectFloatingText, Pos: t.Center, Text: text, Duration: goldTextDuration,
	})
	s.env.Events.Emit(event.FloatingText, event.TextData{Pos: t.Center, Text: text})
}

func (s *CombatSystem) decayStacks(t *component.Tower, now float64) {
	r, ok := defs.SpecialOf[*defs.RampageSpecial](t.Def.Special)
	if ok && t.Stacks > 0 && component.Reached(now, t.LastStackAttack+r.DecayDuration) {
		t.Stacks = 0
	}
}

func (s *CombatSystem) updateBroadside(id types.EntityID, t *component.Tower, now float64) {
	b, ok := defs.SpecialOf[*defs.BroadsideSpecial](t.Def.Special)
	if !ok || !component.Reached(now, t.LastBroadsideTime+b.Interval) {
		return
	}
	t.LastBroadsideTime = now
	run := s.env.Px(t.Def.Range)
	if run <= 0 {
		run = defaultBroadsideRun * s.env.Config.GridSize
	}
	payload := s.RollPayload(id, t)
	for i := 0; i < b.Count; i++ {
		dir := utils.FromAngle(utils.EqualSpacing(i, b.Count))
		s.projectiles.LaunchRadial(id, t, dir, run, payload)
	}
}

// solarReady проверяет requires_solar_adjacency: соседи той же расы.
func (s *CombatSystem) solarReady(id types.EntityID, t *component.Tower) bool {
	req, ok := defs.SpecialOf[*defs.SolarAdjacencySpecial](t.Def.Special)
	if !ok {
		return true
	}
	return s.SameRaceNeighbours(id, t) >= req.RequiredCount
}

// SameRaceNeighbours counts towers of the same race touching the footprint.
func (s *CombatSystem) SameRaceNeighbours(id types.EntityID, t *component.Tower) int {
	area := t.Footprint.Expand(1)
	n := 0
	s.env.ECS.Towers.Each(func(oid types.EntityID, o *component.Tower) bool {
		if oid != id && o.Def.Race == t.Def.Race && area.Overlaps(o.Footprint) {
			n++
		}
		return true
	})
	return n
}
