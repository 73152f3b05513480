// internal/system/movement.go
package system

import (
	"math"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/utils"
)

// MovementSystem — рантайм противников: статусы, DoT, движение по пути,
// ловушки и терминальные проверки.
type MovementSystem struct {
	env         *Env
	status      *StatusEffectSystem
	environment *EnvironmentalDamageSystem
}

func NewMovementSystem(env *Env, status *StatusEffectSystem, environment *EnvironmentalDamageSystem) *MovementSystem {
	return &MovementSystem{env: env, status: status, environment: environment}
}

func (s *MovementSystem) Update(deltaTime float64) {
	s.env.ECS.Enemies.Each(func(id types.EntityID, e *component.Enemy) bool {
		if e.Alive() {
			s.status.UpdateEnemy(id, e)
		}
		if e.Alive() && !e.ReachedEnd() {
			s.move(e, deltaTime)
			s.environment.CheckWalkover(e)
		}
		s.terminal(id, e)
		return true
	})
}

// move ведёт противника к текущей точке пути. Направление — разность до точки
// плюс вектор блуждания длиной wander_radius, затем нормировка.
func (s *MovementSystem) move(e *component.Enemy, dt float64) {
	cfg := s.env.Config
	e.WanderAngle = utils.NormalizeAngle(e.WanderAngle + s.env.Rng.Signed(cfg.WanderChange))

	waypoint := s.env.CellCenter(e.Path[e.WaypointIndex])
	step := e.CurrentSpeed * dt
	if step > 0 {
		wander := utils.FromAngle(e.WanderAngle).Scale(cfg.WanderRadius)
		dir := waypoint.Sub(e.Pos).Add(wander).Normalize()
		e.Pos = e.Pos.Add(dir.Scale(step))
	}
	if e.Pos.Dist(waypoint) <= math.Max(2*cfg.WanderRadius, step) {
		e.WaypointIndex++
	}
}

// terminal снимает противника, дошедшего до цели или убитого.
func (s *MovementSystem) terminal(id types.EntityID, e *component.Enemy) {
	data := event.EnemyData{ID: id, DefID: e.DefID, Wave: e.WaveIndex, Pos: e.Pos, Killer: e.Killer}
	switch {
	case !e.Alive():
		s.env.Economy.Grant(e.Value + e.PendingGold)
		s.env.Economy.Penalize(e.PendingPenalty)
		if e.WaveIndex >= 0 {
			c := s.env.ECS.Wave.Counter(e.WaveIndex)
			c.Killed++
			c.Alive--
		}
		s.env.Events.Emit(event.EnemyKilled, data)
	case e.ReachedEnd():
		s.env.Economy.LoseLives(e.LivesCost)
		if e.WaveIndex >= 0 {
			c := s.env.ECS.Wave.Counter(e.WaveIndex)
			c.Reached++
			c.Alive--
		}
		s.env.Logger.Debug("enemy reached objective", "enemy", id, "def", e.DefID)
		s.env.Events.Emit(event.EnemyReachedObjective, data)
	default:
		return
	}
	s.env.ECS.Enemies.Remove(id)
}

// DropLost снимает противника, для которого нет пути.
func (s *MovementSystem) DropLost(id types.EntityID, e *component.Enemy) {
	if e.WaveIndex >= 0 {
		c := s.env.ECS.Wave.Counter(e.WaveIndex)
		c.Lost++
		c.Alive--
	}
	s.env.Logger.Warn("enemy lost its path", "enemy", id, "def", e.DefID)
	s.env.Events.Emit(event.PathLost, event.EnemyData{ID: id, DefID: e.DefID, Wave: e.WaveIndex, Pos: e.Pos})
	s.env.ECS.Enemies.Remove(id)
}
