// internal/system/aura_applier.go
package system

import (
	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
)

const pulseVisualDuration = 0.4

// AuraApplier применяет непрерывные и импульсные ауры башен к противникам.
type AuraApplier struct {
	env    *Env
	status *StatusEffectSystem
}

func NewAuraApplier(env *Env, status *StatusEffectSystem) *AuraApplier {
	return &AuraApplier{env: env, status: status}
}

func (s *AuraApplier) Update(deltaTime float64) {
	now := s.env.Now()
	for i := range s.env.Buffs.EnemyAuras() {
		src := s.env.Buffs.EnemyAuras()[i]
		tower, ok := s.env.Tower(src.Tower)
		if !ok {
			continue
		}
		switch v := src.Special.(type) {
		case *defs.ContinuousAuraSpecial:
			s.applyContinuous(src, tower, v, deltaTime, now)
		case *defs.PulseAuraSpecial:
			if !component.Reached(now, src.LastPulse+src.Interval) {
				continue
			}
			tower.LastPulseTime[v.Kind] = now
			s.pulse(src, tower, v)
		}
	}
}

func (s *AuraApplier) inRadius(src BuffSource, tower *component.Tower, fn func(types.EntityID, *component.Enemy)) {
	s.env.ECS.Enemies.Each(func(id types.EntityID, e *component.Enemy) bool {
		if Eligible(tower.Def, e) && e.Pos.DistSq(src.Center) <= src.RadiusSq {
			fn(id, e)
		}
		return true
	})
}

func (s *AuraApplier) applyContinuous(src BuffSource, tower *component.Tower, v *defs.ContinuousAuraSpecial, dt, now float64) {
	damageType := v.DamageType
	if damageType == "" {
		damageType = tower.Def.DamageType
	}
	s.inRadius(src, tower, func(id types.EntityID, e *component.Enemy) {
		if v.Damages() {
			s.env.ApplyDamage(id, e, Hit{Damage: v.DotDamage * dt / v.DotInterval, DamageType: damageType, Source: src.Tower})
		}
		if v.Slows() && e.Alive() {
			s.status.ApplyStatus(e, component.StatusSlow, src.Tower, s.env.Config.SlowAuraRefresh, v.SlowMultiplier())
		}
	})
}

func (s *AuraApplier) pulse(src BuffSource, tower *component.Tower, v *defs.PulseAuraSpecial) {
	damageType := v.DamageType
	if damageType == "" {
		damageType = tower.Def.DamageType
	}
	radius := s.env.Px(v.Radius)
	s.env.ECS.Effects.Add(s.env.ECS.NewEntity(), &component.Effect{
		Kind: component.EffectPulseCircle, Pos: tower.Center, Radius: radius, Duration: pulseVisualDuration,
	})
	s.env.Events.Emit(event.PulseEmitted, event.PulseData{Tower: src.Tower, Pos: tower.Center, Radius: radius})

	s.inRadius(src, tower, func(id types.EntityID, e *component.Enemy) {
		switch v.Kind {
		case defs.EffectDamagePulseAura:
			s.env.ApplyDamage(id, e, Hit{Damage: v.Damage, DamageType: damageType, ArmorPen: tower.Def.ArmorPenetration, Source: src.Tower})
		case defs.EffectSlowPulseAura:
			s.status.ApplyStatus(e, component.StatusSlow, src.Tower, v.Duration, v.SlowMultiplier())
		case defs.EffectStunPulseAura:
			s.status.ApplyStatus(e, component.StatusStun, src.Tower, v.Duration, 0)
		case defs.EffectBonechillPulseAura:
			s.status.ApplyStatus(e, component.StatusBonechill, src.Tower, v.Duration, 0)
		case defs.EffectDotPulseAura:
			base := v.DotDamage * s.env.Buffs.DotAmplificationAt(src.Tower)
			s.status.AddDoT(e, string(v.Kind), base, v.DotInterval, v.Duration, damageType, src.Tower)
		}
	})
}
