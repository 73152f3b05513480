// internal/system/aura.go
package system

import (
	"math"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/grid"
)

// BuffFlavor — на кого действует источник.
type BuffFlavor int

const (
	TowerTargeting BuffFlavor = iota
	EnemyTargeting
)

// BuffSource — источник баффа или вражеской ауры, собирается заново каждый тик.
type BuffSource struct {
	Flavor   BuffFlavor
	Tower    types.EntityID
	Kind     defs.EffectTag
	Center   component.Position
	RadiusSq float64   // px², +Inf для соседства
	Area     grid.Rect // расширенный футпринт для соседства
	Adjacent bool
	Special  defs.Special

	// Только для импульсных аур.
	Interval  float64
	LastPulse float64
}

// Contains reports whether a tower lies inside the source's membership area.
func (b *BuffSource) Contains(t *component.Tower) bool {
	if b.Adjacent {
		return b.Area.Overlaps(t.Footprint)
	}
	return b.Center.DistSq(t.Center) <= b.RadiusSq
}

type towerBuffs struct {
	damage      float64
	attackSpeed float64
	dotAmp      float64
}

// BuffIndex пересобирает все баффы и вражеские ауры каждый тик.
type BuffIndex struct {
	env         *Env
	sources     []BuffSource
	enemyAuras  []BuffSource
	perTower    map[types.EntityID]*towerBuffs
	adjacentSet map[types.EntityID]map[defs.EffectTag]float64
}

func NewBuffIndex(env *Env) *BuffIndex {
	return &BuffIndex{
		env:         env,
		perTower:    make(map[types.EntityID]*towerBuffs),
		adjacentSet: make(map[types.EntityID]map[defs.EffectTag]float64),
	}
}

// Sources returns this tick's tower-targeting sources.
func (b *BuffIndex) Sources() []BuffSource { return b.sources }

// EnemyAuras returns this tick's enemy-targeting sources in tower placement order.
func (b *BuffIndex) EnemyAuras() []BuffSource { return b.enemyAuras }

// Update пересобирает индекс: радиальные баффы, соседство, вражеские ауры, снижение брони.
func (b *BuffIndex) Update(deltaTime float64) {
	b.sources = b.sources[:0]
	b.enemyAuras = b.enemyAuras[:0]
	clear(b.perTower)
	clear(b.adjacentSet)

	towers := b.env.ECS.Towers

	// 1. Радиальные баффы башен.
	towers.Each(func(id types.EntityID, t *component.Tower) bool {
		for _, s := range t.Def.Special {
			switch v := s.(type) {
			case *defs.RadialBuffSpecial:
				r := b.env.Px(v.Radius)
				b.sources = append(b.sources, BuffSource{
					Flavor: TowerTargeting, Tower: id, Kind: v.Kind, Center: t.Center, RadiusSq: r * r, Special: v,
				})
			case *defs.DotAmplificationAuraSpecial:
				if v.Radius > 0 {
					r := b.env.Px(v.Radius)
					b.sources = append(b.sources, BuffSource{
						Flavor: TowerTargeting, Tower: id, Kind: v.Tag(), Center: t.Center, RadiusSq: r * r, Special: v,
					})
				}
			}
		}
		return true
	})

	// 2. Соседство: футпринт источника +1 клетка, получатели без дублей по виду.
	towers.Each(func(id types.EntityID, t *component.Tower) bool {
		for _, s := range t.Def.Special {
			v, ok := s.(*defs.AdjacencyBuffSpecial)
			if !ok {
				continue
			}
			src := BuffSource{
				Flavor: TowerTargeting, Tower: id, Kind: v.Kind, RadiusSq: math.Inf(1),
				Area: t.Footprint.Expand(1), Adjacent: true, Special: v,
			}
			b.sources = append(b.sources, src)
			towers.Each(func(rid types.EntityID, r *component.Tower) bool {
				if rid == id || !src.Contains(r) {
					return true
				}
				set := b.adjacentSet[rid]
				if set == nil {
					set = make(map[defs.EffectTag]float64)
					b.adjacentSet[rid] = set
				}
				set[v.Kind] = math.Max(set[v.Kind], v.Multiplier)
				return true
			})
		}
		return true
	})

	// 3. Вражеские ауры и импульсы.
	towers.Each(func(id types.EntityID, t *component.Tower) bool {
		for _, s := range t.Def.Special {
			switch v := s.(type) {
			case *defs.ContinuousAuraSpecial:
				r := b.env.Px(v.Radius)
				b.enemyAuras = append(b.enemyAuras, BuffSource{
					Flavor: EnemyTargeting, Tower: id, Kind: v.Kind, Center: t.Center, RadiusSq: r * r, Special: v,
				})
			case *defs.PulseAuraSpecial:
				r := b.env.Px(v.Radius)
				last, ok := t.LastPulseTime[v.Kind]
				if !ok {
					last = never()
				}
				b.enemyAuras = append(b.enemyAuras, BuffSource{
					Flavor: EnemyTargeting, Tower: id, Kind: v.Kind, Center: t.Center, RadiusSq: r * r, Special: v,
					Interval: v.Interval, LastPulse: last,
				})
			}
		}
		return true
	})

	// 4. Снижение брони: сначала сброс у всех, затем максимум по источникам.
	b.env.ECS.Enemies.Each(func(_ types.EntityID, e *component.Enemy) bool {
		e.AuraArmorReduction = 0
		return true
	})
	towers.Each(func(id types.EntityID, t *component.Tower) bool {
		v, ok := defs.SpecialOf[*defs.ArmorReductionAuraSpecial](t.Def.Special)
		if !ok {
			return true
		}
		r := b.env.Px(v.Radius)
		r2 := r * r
		b.env.ECS.Enemies.Each(func(_ types.EntityID, e *component.Enemy) bool {
			if Eligible(t.Def, e) && e.Pos.DistSq(t.Center) <= r2 {
				e.AuraArmorReduction = math.Max(e.AuraArmorReduction, v.ReductionAmount)
			}
			return true
		})
		return true
	})
}

func (b *BuffIndex) stats(id types.EntityID) *towerBuffs {
	if cached, ok := b.perTower[id]; ok {
		return cached
	}
	out := &towerBuffs{damage: 1, attackSpeed: 1, dotAmp: 1}
	t, ok := b.env.Tower(id)
	if !ok {
		return out
	}
	for i := range b.sources {
		src := &b.sources[i]
		if src.Adjacent || !src.Contains(t) {
			continue
		}
		switch v := src.Special.(type) {
		case *defs.RadialBuffSpecial:
			if src.Tower == id {
				continue
			}
			if v.Kind == defs.EffectDamageBuffAura {
				out.damage *= v.Multiplier
			} else {
				out.attackSpeed *= v.Multiplier
			}
		case *defs.DotAmplificationAuraSpecial:
			out.dotAmp *= v.Multiplier
		}
	}
	for kind, m := range b.adjacentSet[id] {
		if kind == defs.EffectAdjacencyDamageBuff {
			out.damage *= m
		} else {
			out.attackSpeed *= m
		}
	}
	b.perTower[id] = out
	return out
}

// BuffedStats — get_buffed_stats: итоговый множитель урона и интервал атаки.
func (b *BuffIndex) BuffedStats(id types.EntityID, t *component.Tower) (damageMultiplier, attackInterval float64) {
	st := b.stats(id)
	interval := t.Def.AttackInterval
	if st.attackSpeed > 0 {
		interval /= st.attackSpeed
	}
	return st.damage, interval
}

// DotAmplificationAt returns the multiplier applied to DoTs a tower creates.
func (b *BuffIndex) DotAmplificationAt(id types.EntityID) float64 {
	return b.stats(id).dotAmp
}

// Invalidate drops cached per-tower stats after placement or sale mid-tick.
func (b *BuffIndex) Invalidate() {
	clear(b.perTower)
}
