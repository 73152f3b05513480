// internal/system/env.go
package system

import (
	"math"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/internal/utils"
	"go-grid-defense/pkg/grid"

	"github.com/charmbracelet/log"
)

// Env — общие зависимости всех систем одного мира.
type Env struct {
	ECS     *entity.ECS
	Config  config.Config
	Catalog *defs.Catalog
	Grid    *grid.Grid
	Rng     *utils.PRNGService
	Events  *event.Dispatcher
	Logger  *log.Logger
	Economy *Economy
	Buffs   *BuffIndex
}

// NewEnv wires the shared state. Economy and BuffIndex are created here.
func NewEnv(ecs *entity.ECS, cfg config.Config, catalog *defs.Catalog, g *grid.Grid, rng *utils.PRNGService, events *event.Dispatcher, logger *log.Logger) *Env {
	env := &Env{
		ECS:     ecs,
		Config:  cfg,
		Catalog: catalog,
		Grid:    g,
		Rng:     rng,
		Events:  events,
		Logger:  logger,
	}
	env.Economy = NewEconomy(env, cfg.Economy.StartingGold, cfg.Economy.StartingLives)
	env.Buffs = NewBuffIndex(env)
	return env
}

// Now returns the simulation clock.
func (env *Env) Now() float64 { return env.ECS.GameTime }

// Px converts catalog range units into pixels.
func (env *Env) Px(units float64) float64 { return env.Config.UnitsToPixels(units) }

// CellCenter returns the pixel centre of a cell.
func (env *Env) CellCenter(c grid.Cell) component.Position {
	x, y := grid.CellCenter(c, env.Config.GridSize)
	return component.Position{X: x, Y: y}
}

// CellOf returns the cell under a pixel position.
func (env *Env) CellOf(p component.Position) grid.Cell {
	return grid.CellAt(p.X, p.Y, env.Config.GridSize)
}

// Tower resolves a weak tower handle.
func (env *Env) Tower(id types.EntityID) (*component.Tower, bool) {
	if id == types.NoEntity {
		return nil, false
	}
	return env.ECS.Towers.Get(id)
}

// LiveEnemy resolves an enemy handle that still has health.
func (env *Env) LiveEnemy(id types.EntityID) (*component.Enemy, bool) {
	e, ok := env.ECS.Enemies.Get(id)
	if !ok || !e.Alive() {
		return nil, false
	}
	return e, true
}

// Eligible reports whether a tower may affect an enemy: movement type and armor filter.
func Eligible(def *defs.TowerDefinition, e *component.Enemy) bool {
	return e.Alive() && def.CanTarget(e.Type) && def.AllowsArmor(e.ArmorType)
}

// EnemiesInRadius lists live enemies within radius (px) of center that pass the filter,
// in spawn order.
func (env *Env) EnemiesInRadius(center component.Position, radius float64, filter func(*component.Enemy) bool) []types.EntityID {
	var out []types.EntityID
	r2 := radius * radius
	env.ECS.Enemies.Each(func(id types.EntityID, e *component.Enemy) bool {
		if !e.Alive() || (filter != nil && !filter(e)) {
			return true
		}
		if e.Pos.DistSq(center) <= r2 {
			out = append(out, id)
		}
		return true
	})
	return out
}

// statusSource is the status-table key of a tower source.
func statusSource(id types.EntityID) string {
	return id.String()
}

func never() float64 { return math.Inf(-1) }
