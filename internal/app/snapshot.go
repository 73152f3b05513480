// internal/app/snapshot.go
package app

import (
	"sort"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/system"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/grid"
)

// EnemyView — состояние противника для хоста.
type EnemyView struct {
	ID        types.EntityID     `yaml:"id"`
	DefID     string             `yaml:"def"`
	Type      types.UnitType     `yaml:"type"`
	Wave      int                `yaml:"wave"`
	Pos       component.Position `yaml:"pos"`
	Health    float64            `yaml:"health"`
	MaxHealth float64            `yaml:"max_health"`
	Speed     float64            `yaml:"speed"`
	Armor     float64            `yaml:"armor"`
	Statuses  []string           `yaml:"statuses,omitempty"`
	DoTs      []string           `yaml:"dots,omitempty"`
}

// TowerView — состояние башни для хоста.
type TowerView struct {
	ID         types.EntityID     `yaml:"id"`
	Key        string             `yaml:"key"`
	Footprint  grid.Rect          `yaml:"footprint"`
	Center     component.Position `yaml:"center"`
	Blocking   bool               `yaml:"blocking"`
	Stacks     int                `yaml:"stacks,omitempty"`
	BeamActive bool               `yaml:"beam_active,omitempty"`
	Beam       []types.EntityID   `yaml:"beam,omitempty"`
	Painting   types.EntityID     `yaml:"painting,omitempty"`
}

// ProjectileView — снаряд.
type ProjectileView struct {
	ID     types.EntityID     `yaml:"id"`
	Kind   string             `yaml:"kind"`
	Source types.EntityID     `yaml:"source"`
	Pos    component.Position `yaml:"pos"`
}

// OrbiterView — орбитальный объект.
type OrbiterView struct {
	ID     types.EntityID     `yaml:"id"`
	Parent types.EntityID     `yaml:"parent"`
	Pos    component.Position `yaml:"pos"`
}

// ExploderView — пролётный взрывной снаряд.
type ExploderView struct {
	ID     types.EntityID     `yaml:"id"`
	Source types.EntityID     `yaml:"source"`
	Pos    component.Position `yaml:"pos"`
}

// EffectView — визуальный эффект или наземная зона.
type EffectView struct {
	ID       types.EntityID       `yaml:"id"`
	Kind     string               `yaml:"kind"`
	Pos      component.Position   `yaml:"pos"`
	Points   []component.Position `yaml:"points,omitempty"`
	Text     string               `yaml:"text,omitempty"`
	Radius   float64              `yaml:"radius,omitempty"`
	Progress float64              `yaml:"progress"`
}

// WaveView — состояние директора волн.
type WaveView struct {
	Index int     `yaml:"index"`
	Phase string  `yaml:"phase"`
	Timer float64 `yaml:"timer"`
	Alive int     `yaml:"alive"`
	Total int     `yaml:"total"`
}

// Snapshot — неизменяемый срез мира после тика. Хост рисует и сравнивает
// только его, не трогая живое состояние.
type Snapshot struct {
	Tick        uint64            `yaml:"tick"`
	Time        float64           `yaml:"time"`
	Gold        int               `yaml:"gold"`
	Lives       int               `yaml:"lives"`
	Phase       system.MatchPhase `yaml:"phase"`
	Wave        WaveView          `yaml:"wave"`
	Enemies     []EnemyView       `yaml:"enemies"`
	Towers      []TowerView       `yaml:"towers"`
	Projectiles []ProjectileView  `yaml:"projectiles"`
	Orbiters    []OrbiterView     `yaml:"orbiters"`
	Exploders   []ExploderView    `yaml:"exploders"`
	Effects     []EffectView      `yaml:"effects"`
	Grid        []grid.CellState  `yaml:"-"`
	Events      []event.Event     `yaml:"-"`
}

// Snapshot собирает снимок текущего состояния. events — события, накопленные
// с прошлого снимка.
func (g *Game) Snapshot(events []event.Event) Snapshot {
	ecs := g.ECS
	s := Snapshot{
		Tick:   ecs.Tick,
		Time:   ecs.GameTime,
		Gold:   g.Gold(),
		Lives:  g.Lives(),
		Phase:  g.Phase(),
		Events: events,
	}

	w := ecs.Wave
	s.Wave = WaveView{Index: w.Index, Phase: w.Phase.String(), Timer: w.Timer}
	if c, ok := w.Counters[w.Index]; ok {
		s.Wave.Alive = c.Alive
	}
	if w.Index < len(g.Catalog.Waves) {
		s.Wave.Total = g.Catalog.Waves[w.Index].Total()
	}

	ecs.Enemies.Each(func(id types.EntityID, e *component.Enemy) bool {
		v := EnemyView{
			ID:        id,
			DefID:     e.DefID,
			Type:      e.Type,
			Wave:      e.WaveIndex,
			Pos:       e.Pos,
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
			Speed:     e.CurrentSpeed,
			Armor:     e.CurrentArmor,
		}
		for _, k := range e.StatusKinds() {
			v.Statuses = append(v.Statuses, string(k))
		}
		for name := range e.DoTs {
			v.DoTs = append(v.DoTs, name)
		}
		sort.Strings(v.DoTs)
		s.Enemies = append(s.Enemies, v)
		return true
	})
	ecs.Towers.Each(func(id types.EntityID, t *component.Tower) bool {
		s.Towers = append(s.Towers, TowerView{
			ID:         id,
			Key:        t.Def.Key(),
			Footprint:  t.Footprint,
			Center:     t.Center,
			Blocking:   t.Blocking,
			Stacks:     t.Stacks,
			BeamActive: t.BeamActive,
			Beam:       append([]types.EntityID(nil), t.BeamTargets...),
			Painting:   t.PaintingTarget,
		})
		return true
	})
	ecs.Projectiles.Each(func(id types.EntityID, p *component.Projectile) bool {
		s.Projectiles = append(s.Projectiles, ProjectileView{ID: id, Kind: p.Kind.String(), Source: p.Source, Pos: p.Pos})
		return true
	})
	ecs.Orbiters.Each(func(id types.EntityID, o *component.Orbiter) bool {
		s.Orbiters = append(s.Orbiters, OrbiterView{ID: id, Parent: o.Parent, Pos: o.Pos})
		return true
	})
	ecs.Exploders.Each(func(id types.EntityID, x *component.Exploder) bool {
		s.Exploders = append(s.Exploders, ExploderView{ID: id, Source: x.Source, Pos: x.Pos})
		return true
	})
	ecs.Effects.Each(func(id types.EntityID, fx *component.Effect) bool {
		s.Effects = append(s.Effects, EffectView{
			ID:       id,
			Kind:     fx.Kind.String(),
			Pos:      fx.Pos,
			Points:   append([]component.Position(nil), fx.Points...),
			Text:     fx.Text,
			Radius:   fx.Radius,
			Progress: fx.Progress(),
		})
		return true
	})

	s.Grid = make([]grid.CellState, 0, g.Grid.Width()*g.Grid.Height())
	for y := 0; y < g.Grid.Height(); y++ {
		for x := 0; x < g.Grid.Width(); x++ {
			s.Grid = append(s.Grid, g.Grid.State(grid.Cell{X: x, Y: y}))
		}
	}
	return s
}

// CellState reads a cell from the snapshot grid.
func (s Snapshot) CellState(c grid.Cell, width int) grid.CellState {
	return s.Grid[c.Y*width+c.X]
}
