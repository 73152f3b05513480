// internal/entity/ecs.go
package entity

import (
	"go-grid-defense/internal/component"
	"go-grid-defense/internal/types"
)

// ECS — всё состояние мира симуляции.
type ECS struct {
	GameTime       float64
	Tick           uint64
	NextID         types.EntityID
	NextSpawnIndex uint64
	NextPlaceIndex uint64

	Enemies     *Store[component.Enemy]
	Towers      *Store[component.Tower]
	Projectiles *Store[component.Projectile]
	Orbiters    *Store[component.Orbiter]
	Exploders   *Store[component.Exploder]
	Effects     *Store[component.Effect]
	Wave        *component.Wave

	clockBase  float64
	clockStep  float64
	clockTicks uint64
}

func NewECS() *ECS {
	return &ECS{
		NextID:      1,
		Enemies:     NewStore[component.Enemy](),
		Towers:      NewStore[component.Tower](),
		Projectiles: NewStore[component.Projectile](),
		Orbiters:    NewStore[component.Orbiter](),
		Exploders:   NewStore[component.Exploder](),
		Effects:     NewStore[component.Effect](),
		Wave:        component.NewWave(),
	}
}

// NewEntity выдаёт новый id. Id никогда не переиспользуются.
func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// AddEnemy регистрирует противника и выдаёт ему порядковый номер спавна.
func (ecs *ECS) AddEnemy(e *component.Enemy) types.EntityID {
	id := ecs.NewEntity()
	e.SpawnIndex = ecs.NextSpawnIndex
	ecs.NextSpawnIndex++
	ecs.Enemies.Add(id, e)
	return id
}

// AddTower регистрирует башню.
func (ecs *ECS) AddTower(t *component.Tower) types.EntityID {
	id := ecs.NewEntity()
	t.PlaceIndex = ecs.NextPlaceIndex
	ecs.NextPlaceIndex++
	ecs.Towers.Add(id, t)
	return id
}

// Sweep физически удаляет помеченные сущности во всех хранилищах.
func (ecs *ECS) Sweep() {
	ecs.Enemies.Sweep()
	ecs.Towers.Sweep()
	ecs.Projectiles.Sweep()
	ecs.Orbiters.Sweep()
	ecs.Exploders.Sweep()
	ecs.Effects.Sweep()
}

// Advance продвигает часы на один тик длиной dt. Время считается
// умножением от последней смены шага: сумма шагов 1/60 уплывает.
func (ecs *ECS) Advance(dt float64) {
	if dt != ecs.clockStep {
		ecs.clockBase = ecs.GameTime
		ecs.clockTicks = 0
		ecs.clockStep = dt
	}
	ecs.Tick++
	ecs.clockTicks++
	ecs.GameTime = ecs.clockBase + float64(ecs.clockTicks)*dt
}
