// internal/system/status_effect.go
package system

import (
	"sort"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/types"
)

// StatusEffectSystem управляет статусами и DoT противников.
type StatusEffectSystem struct {
	env *Env
}

func NewStatusEffectSystem(env *Env) *StatusEffectSystem {
	return &StatusEffectSystem{env: env}
}

// ApplyStatus накладывает или обновляет статус от источника.
func (s *StatusEffectSystem) ApplyStatus(e *component.Enemy, kind component.StatusKind, source types.EntityID, duration, value float64) {
	e.SetStatus(kind, statusSource(source), s.env.Now()+duration, value)
	if kind == component.StatusSlow || kind == component.StatusStun {
		e.RecomputeSpeed()
	}
}

// AddDoT создаёт или обновляет именованный DoT. base уже учитывает
// усиление от башен в радиусе источника.
func (s *StatusEffectSystem) AddDoT(e *component.Enemy, name string, base, interval, duration float64, damageType string, source types.EntityID) {
	if interval <= 0 || duration <= 0 {
		return
	}
	now := s.env.Now()
	if e.DoTs == nil {
		e.DoTs = make(map[string]*component.DoT)
	}
	if d, ok := e.DoTs[name]; ok {
		d.BaseDamage = base
		d.Interval = interval
		d.EndTime = now + duration
		d.DamageType = damageType
		d.Source = source
		return
	}
	e.DoTs[name] = &component.DoT{
		Name:       name,
		BaseDamage: base,
		Interval:   interval,
		NextTick:   now + interval,
		EndTime:    now + duration,
		DamageType: damageType,
		Source:     source,
	}
}

// ApplyOnHit применяет on-hit спецэффекты башни к поражённому противнику.
func (s *StatusEffectSystem) ApplyOnHit(towerID types.EntityID, tower *component.Tower, e *component.Enemy) {
	if !e.Alive() {
		return
	}
	for _, sp := range tower.Def.Special {
		s.applySpecial(towerID, tower, e, sp)
	}
}

func (s *StatusEffectSystem) applySpecial(towerID types.EntityID, tower *component.Tower, e *component.Enemy, sp defs.Special) {
	switch v := sp.(type) {
	case *defs.SlowSpecial:
		s.ApplyStatus(e, component.StatusSlow, towerID, v.Duration, v.Multiplier())
	case *defs.StunSpecial:
		s.ApplyStatus(e, component.StatusStun, towerID, v.Duration, 0)
	case *defs.DotSpecial:
		base := v.Damage * s.env.Buffs.DotAmplificationAt(towerID)
		s.AddDoT(e, v.Name, base, v.Interval, v.Duration, v.DamageType, towerID)
	case *defs.ApplyMarkSpecial:
		s.ApplyStatus(e, component.StatusMarkedForDeath, towerID, v.Duration, s.env.Config.MarkMultiplier)
	case *defs.DotAmplificationAuraSpecial:
		s.ApplyStatus(e, component.StatusDotAmplification, towerID, v.Duration, v.Multiplier)
	case *defs.ArmorShredSpecial:
		e.ShredArmor(v.Amount, s.env.Config.ArmorFloor)
	}
}

// UpdateEnemy — шаги статусов и DoT для одного противника.
func (s *StatusEffectSystem) UpdateEnemy(id types.EntityID, e *component.Enemy) {
	now := s.env.Now()
	e.ExpireStatuses(now)
	e.RecomputeSpeed()

	if len(e.DoTs) == 0 {
		return
	}
	names := make([]string, 0, len(e.DoTs))
	for name := range e.DoTs {
		names = append(names, name)
	}
	sort.Strings(names)

	amp := e.DotAmplification()
	for _, name := range names {
		d := e.DoTs[name]
		// Тик, пришедшийся ровно на конец, ещё наносится.
		if component.Reached(now, d.NextTick) && !component.Passed(d.NextTick, d.EndTime) {
			s.env.ApplyDamage(id, e, Hit{Damage: d.BaseDamage * amp, DamageType: d.DamageType, Source: d.Source})
			d.NextTick += d.Interval
			// Пропущенные тики не догоняются.
			if !component.Reached(d.NextTick, now) {
				d.NextTick = now + d.Interval
			}
		}
		if component.Reached(now, d.EndTime) {
			delete(e.DoTs, name)
		}
	}
}
