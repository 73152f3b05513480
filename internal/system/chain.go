// internal/system/chain.go
package system

import (
	"math"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
)

const chainVisualDuration = 0.3

// ChainSystem — граф соседства дуговых башен и совместный выстрел цепью.
type ChainSystem struct {
	env       *Env
	combat    *CombatSystem
	neighbors map[types.EntityID][]types.EntityID
}

func NewChainSystem(env *Env) *ChainSystem {
	return &ChainSystem{env: env, neighbors: make(map[types.EntityID][]types.EntityID)}
}

// Bind attaches the tower runtime used for cooldowns and targeting.
func (s *ChainSystem) Bind(combat *CombatSystem) { s.combat = combat }

// Neighbors returns the linked towers of id in placement order.
func (s *ChainSystem) Neighbors(id types.EntityID) []types.EntityID { return s.neighbors[id] }

// Rebuild пересобирает граф. Две башни связаны, если квадрат расстояния
// между центрами не больше квадрата меньшего из их радиусов связи.
func (s *ChainSystem) Rebuild() {
	clear(s.neighbors)
	type node struct {
		id     types.EntityID
		tower  *component.Tower
		radius float64
	}
	var nodes []node
	s.env.ECS.Towers.Each(func(id types.EntityID, t *component.Tower) bool {
		if c, ok := defs.SpecialOf[*defs.ChainSpecial](t.Def.Special); ok {
			nodes = append(nodes, node{id: id, tower: t, radius: s.env.Px(c.LinkRadius)})
		}
		return true
	})
	for i := range nodes {
		for j := range nodes {
			if i == j {
				continue
			}
			r := math.Min(nodes[i].radius, nodes[j].radius)
			if nodes[i].tower.Center.DistSq(nodes[j].tower.Center) <= r*r {
				s.neighbors[nodes[i].id] = append(s.neighbors[nodes[i].id], nodes[j].id)
			}
		}
	}
}

// LongestPath returns the longest simple path from start over towers that are
// off cooldown. The first path found wins ties.
func (s *ChainSystem) LongestPath(start types.EntityID) []types.EntityID {
	now := s.env.Now()
	visited := map[types.EntityID]bool{start: true}
	path := []types.EntityID{start}
	best := []types.EntityID{start}

	var dfs func(cur types.EntityID)
	dfs = func(cur types.EntityID) {
		if len(path) > len(best) {
			best = append(best[:0:0], path...)
		}
		for _, next := range s.neighbors[cur] {
			if visited[next] {
				continue
			}
			t, ok := s.env.Tower(next)
			if !ok || !s.combat.Ready(next, t, now) {
				continue
			}
			visited[next] = true
			path = append(path, next)
			dfs(next)
			path = path[:len(path)-1]
			visited[next] = false
		}
	}
	dfs(start)
	return best
}

// TryFire пытается выстрелить цепью из башни id. false — цепи нет,
// башня стреляет обычным снарядом.
func (s *ChainSystem) TryFire(id types.EntityID, t *component.Tower) bool {
	chain, _ := defs.SpecialOf[*defs.ChainSpecial](t.Def.Special)
	path := s.LongestPath(id)
	if len(path) <= 1 {
		return false
	}
	end, ok := s.env.Tower(path[len(path)-1])
	if !ok {
		return false
	}
	candidates := s.combat.Candidates(end)
	if len(candidates) == 0 {
		return false
	}
	target := s.combat.Closest(end.Center, candidates, 1)[0]
	e, _ := s.env.ECS.Enemies.Get(target)

	now := s.env.Now()
	dmgMult, _ := s.env.Buffs.BuffedStats(id, t)
	damage := float64(len(path)) * chain.DamagePerTower * dmgMult
	dealt := s.combat.HitEnemy(id, t, target, e, damage, t.Def.DamageType)

	points := make([]component.Position, 0, len(path)+1)
	for _, pid := range path {
		pt, _ := s.env.Tower(pid)
		points = append(points, pt.Center)
		pt.LastAttackTime = now
		pt.LastChainTime = now
	}
	points = append(points, e.Pos)

	s.env.ECS.Effects.Add(s.env.ECS.NewEntity(), &component.Effect{
		Kind: component.EffectChainPath, Pos: e.Pos, Points: points, Duration: chainVisualDuration,
	})
	s.env.Events.Emit(event.ChainFired, event.ChainData{Towers: path, Points: points, Target: target, Damage: dealt})
	s.env.Logger.Debug("chain fired", "initiator", id, "length", len(path), "target", target, "damage", dealt)
	return true
}
