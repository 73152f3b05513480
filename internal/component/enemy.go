// internal/component/enemy.go
package component

import (
	"math"

	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/grid"
	"go-grid-defense/pkg/utils"
)

// Position — позиция в пикселях.
type Position = utils.Vec2

// StatusKind — вид статуса на противнике.
type StatusKind string

const (
	StatusSlow             StatusKind = "slow"
	StatusStun             StatusKind = "stun"
	StatusBonechill        StatusKind = "bonechill"
	StatusMarkedForDeath   StatusKind = "marked_for_death"
	StatusDotAmplification StatusKind = "dot_amplification"
)

// StatusKey — статус хранится по паре (вид, источник), чтобы повторное
// наложение от того же источника обновляло срок, а не накапливалось.
type StatusKey struct {
	Kind   StatusKind
	Source string
}

// Status — срок действия и значение статуса.
type Status struct {
	EndTime float64
	Value   float64
}

// DoT — периодический урон, принадлежащий противнику.
type DoT struct {
	Name       string
	BaseDamage float64 // уже с усилением от башен в радиусе на момент создания
	Interval   float64
	NextTick   float64
	EndTime    float64
	DamageType string
	Source     types.EntityID
}

// Enemy — противник, идущий по пути.
type Enemy struct {
	DefID      string
	Type       types.UnitType
	SpawnIndex uint64
	WaveIndex  int // -1 для debug-спавна

	Pos           Position
	Path          []grid.Cell
	WaypointIndex int
	WanderAngle   float64

	Health    float64
	MaxHealth float64

	BaseSpeed    float64
	CurrentSpeed float64

	ArmorType          string
	BaseArmor          float64
	CurrentArmor       float64
	AuraArmorReduction float64

	Statuses map[StatusKey]Status
	DoTs     map[string]*DoT

	Value     int
	LivesCost int

	// Заполняются убивающим ударом, выдаются экономике на шаге терминальной проверки.
	Killer         types.EntityID
	PendingGold    int
	PendingPenalty int
}

// Alive reports whether the enemy still has health.
func (e *Enemy) Alive() bool { return e.Health > 0 }

// ReachedEnd reports whether the enemy consumed its whole path.
func (e *Enemy) ReachedEnd() bool { return e.WaypointIndex >= len(e.Path) }

// SetStatus applies or refreshes a status from one source.
func (e *Enemy) SetStatus(kind StatusKind, source string, endTime, value float64) {
	if e.Statuses == nil {
		e.Statuses = make(map[StatusKey]Status)
	}
	e.Statuses[StatusKey{Kind: kind, Source: source}] = Status{EndTime: endTime, Value: value}
}

// HasStatus reports whether any source holds the kind.
func (e *Enemy) HasStatus(kind StatusKind) bool {
	for k := range e.Statuses {
		if k.Kind == kind {
			return true
		}
	}
	return false
}

// SlowMultiplier returns the smallest active slow multiplier, capped at 1.
func (e *Enemy) SlowMultiplier() float64 {
	m := 1.0
	for k, s := range e.Statuses {
		if k.Kind == StatusSlow && s.Value < m {
			m = s.Value
		}
	}
	return math.Max(0, m)
}

// DotAmplification returns the strongest active dot_amplification multiplier.
func (e *Enemy) DotAmplification() float64 {
	m := 1.0
	for k, s := range e.Statuses {
		if k.Kind == StatusDotAmplification && s.Value > m {
			m = s.Value
		}
	}
	return m
}

// ExpireStatuses drops statuses whose end time was reached and reports whether any were removed.
func (e *Enemy) ExpireStatuses(now float64) bool {
	removed := false
	for k, s := range e.Statuses {
		if Reached(now, s.EndTime) {
			delete(e.Statuses, k)
			removed = true
		}
	}
	return removed
}

// RecomputeSpeed applies stun and slow to the base speed.
func (e *Enemy) RecomputeSpeed() {
	if e.HasStatus(StatusStun) {
		e.CurrentSpeed = 0
		return
	}
	e.CurrentSpeed = e.BaseSpeed * math.Min(1.0, e.SlowMultiplier())
}

// StatusKinds returns the distinct active kinds in a stable order.
func (e *Enemy) StatusKinds() []StatusKind {
	var out []StatusKind
	for _, kind := range []StatusKind{StatusSlow, StatusStun, StatusBonechill, StatusMarkedForDeath, StatusDotAmplification} {
		if e.HasStatus(kind) {
			out = append(out, kind)
		}
	}
	return out
}

// ShredArmor lowers the current armor, never below floor.
func (e *Enemy) ShredArmor(amount, floor float64) {
	e.CurrentArmor = math.Max(floor, e.CurrentArmor-amount)
}
