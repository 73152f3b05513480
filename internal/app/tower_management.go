// internal/app/tower_management.go
package app

import (
	"errors"
	"fmt"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/grid"
)

// PlacementReason — причина отказа в постройке.
type PlacementReason string

const (
	ReasonOutOfBounds       PlacementReason = "out_of_bounds"
	ReasonOverlapsTower     PlacementReason = "overlaps_tower"
	ReasonRestricted        PlacementReason = "restricted"
	ReasonReservedAnchor    PlacementReason = "reserved_anchor"
	ReasonBlocksPath        PlacementReason = "blocks_path"
	ReasonInsufficientFunds PlacementReason = "insufficient_funds"
	ReasonUnknownTower      PlacementReason = "unknown_tower"
)

// ErrPlacementRejected matches every *PlacementError via errors.Is.
var ErrPlacementRejected = errors.New("placement rejected")

// ErrNoTowerAtCell is returned when selling an empty cell.
var ErrNoTowerAtCell = errors.New("no tower at cell")

// PlacementError — отказ в постройке до изменения состояния.
type PlacementError struct {
	Reason PlacementReason
	Tower  string
	Cell   grid.Cell
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("cannot place %s at (%d,%d): %s", e.Tower, e.Cell.X, e.Cell.Y, e.Reason)
}

func (e *PlacementError) Is(target error) bool { return target == ErrPlacementRejected }

// Footprint returns the cells a tower of size w×h occupies when centred on center.
func Footprint(center grid.Cell, w, h int) grid.Rect {
	return grid.RectAt(center.Add(-(w-1)/2, -(h-1)/2), w, h)
}

// PlaceTower ставит башню race/id с центром в клетке center.
func (g *Game) PlaceTower(center grid.Cell, race, id string) (types.EntityID, error) {
	def, ok := g.Catalog.Tower(race, id)
	if !ok {
		return types.NoEntity, &PlacementError{Reason: ReasonUnknownTower, Tower: race + "/" + id, Cell: center}
	}
	rect := Footprint(center, def.GridWidth, def.GridHeight)
	if reason := g.checkPlacement(rect, def.Cost, !def.Traversable); reason != "" {
		return types.NoEntity, &PlacementError{Reason: reason, Tower: def.Key(), Cell: center}
	}

	g.Systems.Economy.Spend(def.Cost)
	if !def.Traversable {
		for _, c := range rect.Cells() {
			g.Grid.SetBlocked(c, true)
		}
	}

	x, y := grid.RectCenter(rect, g.Config.GridSize)
	tower := component.NewTower(def, rect, component.Position{X: x, Y: y}, g.Time())
	towerID := g.ECS.AddTower(tower)
	g.Systems.Orbiters.SpawnFor(towerID, tower)
	g.Systems.Chain.Rebuild()
	g.Systems.Buffs.Invalidate()

	if tower.Blocking {
		g.repathGround()
	}

	g.Logger.Info("tower placed", "tower", def.Key(), "id", towerID, "cell", center, "gold", g.Gold())
	g.Events.Emit(event.TowerPlaced, event.TowerData{ID: towerID, Key: def.Key(), Footprint: rect, Gold: def.Cost})
	return towerID, nil
}

// CanPlace reports whether a tower could be placed, without changing state.
func (g *Game) CanPlace(center grid.Cell, race, id string) error {
	def, ok := g.Catalog.Tower(race, id)
	if !ok {
		return &PlacementError{Reason: ReasonUnknownTower, Tower: race + "/" + id, Cell: center}
	}
	rect := Footprint(center, def.GridWidth, def.GridHeight)
	if reason := g.checkPlacement(rect, def.Cost, !def.Traversable); reason != "" {
		return &PlacementError{Reason: reason, Tower: def.Key(), Cell: center}
	}
	return nil
}

func (g *Game) checkPlacement(rect grid.Rect, cost int, blocking bool) PlacementReason {
	cells := rect.Cells()
	for _, c := range cells {
		if !g.Grid.InBounds(c) {
			return ReasonOutOfBounds
		}
	}
	for _, c := range cells {
		if g.Grid.State(c) == grid.Restricted {
			return ReasonRestricted
		}
	}
	for _, c := range cells {
		if g.Grid.IsReserved(c) {
			return ReasonReservedAnchor
		}
	}
	overlap := false
	g.ECS.Towers.Each(func(_ types.EntityID, t *component.Tower) bool {
		overlap = t.Footprint.Overlaps(rect)
		return !overlap
	})
	if overlap {
		return ReasonOverlapsTower
	}
	if !g.Systems.Economy.CanAfford(cost) {
		return ReasonInsufficientFunds
	}
	if blocking {
		sim := g.Grid.Clone()
		for _, c := range cells {
			sim.SetBlocked(c, true)
		}
		if !grid.HasPath(sim.SpawnAnchor(), sim.ObjectiveAnchor(), sim, grid.GroundWalkable) {
			return ReasonBlocksPath
		}
	}
	return ""
}

// repathGround перестраивает пути наземных противников от их текущей клетки.
// Противники без пути снимаются.
func (g *Game) repathGround() {
	env := g.Env()
	g.ECS.Enemies.Each(func(id types.EntityID, e *component.Enemy) bool {
		if e.Type != types.Ground || !e.Alive() {
			return true
		}
		path := g.Systems.Waves.FindPath(env.CellOf(e.Pos), e.Type)
		if path == nil {
			g.Systems.Movement.DropLost(id, e)
			return true
		}
		e.Path = path
		e.WaypointIndex = 0
		return true
	})
}

// TowerAt returns the tower whose footprint covers cell.
func (g *Game) TowerAt(cell grid.Cell) (types.EntityID, *component.Tower, bool) {
	var (
		foundID types.EntityID
		found   *component.Tower
	)
	g.ECS.Towers.Each(func(id types.EntityID, t *component.Tower) bool {
		if t.Footprint.Contains(cell) {
			foundID, found = id, t
			return false
		}
		return true
	})
	return foundID, found, found != nil
}

// SellTower продаёт башню в клетке и возвращает часть стоимости.
func (g *Game) SellTower(cell grid.Cell) (int, error) {
	id, tower, ok := g.TowerAt(cell)
	if !ok {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrNoTowerAtCell, cell.X, cell.Y)
	}
	refund := int(float64(tower.InvestedGold) * g.Config.Economy.SellRefundRatio)

	g.Systems.Orbiters.RemoveFor(tower)
	if tower.BeamActive {
		g.Events.Emit(event.BeamStopped, event.BeamData{Tower: id})
	}
	g.ECS.Towers.Remove(id)
	if tower.Blocking {
		for _, c := range tower.Footprint.Cells() {
			g.Grid.SetBlocked(c, false)
		}
	}
	g.Systems.Chain.Rebuild()
	g.Systems.Buffs.Invalidate()
	g.Systems.Economy.Refund(refund)

	g.Logger.Info("tower sold", "tower", tower.Def.Key(), "id", id, "refund", refund)
	g.Events.Emit(event.TowerSold, event.TowerData{ID: id, Key: tower.Def.Key(), Footprint: tower.Footprint, Gold: refund})
	return refund, nil
}
