// internal/system/wave.go
package system

import (
	"go-grid-defense/internal/component"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/grid"
)

// WaveSystem — директор волн: Idle → WaitingDelay → Spawning → Intermission → … → AllDone.
type WaveSystem struct {
	env *Env
}

func NewWaveSystem(env *Env) *WaveSystem {
	return &WaveSystem{env: env}
}

// Start запускает первую волну. Повторный вызов ничего не делает.
func (s *WaveSystem) Start() bool {
	w := s.env.ECS.Wave
	if w.Phase != component.WaveIdle {
		return false
	}
	if len(s.env.Catalog.Waves) == 0 {
		w.Phase = component.WaveAllDone
		s.env.Events.Emit(event.AllWavesCompleted, nil)
		return true
	}
	s.enterDelay(0)
	return true
}

func (s *WaveSystem) enterDelay(index int) {
	w := s.env.ECS.Wave
	w.Phase = component.WaveWaitingDelay
	w.Index = index
	w.Timer = s.env.Catalog.Waves[index].DelayBeforeWave
	w.Groups = nil
	w.Counter(index)
}

func (s *WaveSystem) Update(deltaTime float64) {
	w := s.env.ECS.Wave
	switch w.Phase {
	case component.WaveWaitingDelay:
		w.Timer -= deltaTime
		if w.Timer > component.TimeEpsilon {
			return
		}
		s.enterSpawning(w)
		s.spawnGroups(w, deltaTime)
	case component.WaveSpawning:
		s.spawnGroups(w, deltaTime)
	case component.WaveIntermission:
		if w.Counter(w.Index).Alive > 0 {
			return
		}
		def := s.env.Catalog.Waves[w.Index]
		s.env.Economy.Grant(def.WaveCompletionBonus)
		s.env.Logger.Info("wave completed", "wave", w.Index, "bonus", def.WaveCompletionBonus)
		s.env.Events.Emit(event.WaveCompleted, event.WaveData{Index: w.Index, Bonus: def.WaveCompletionBonus})
		if w.Index+1 < len(s.env.Catalog.Waves) {
			s.enterDelay(w.Index + 1)
			return
		}
		w.Phase = component.WaveAllDone
		s.env.Logger.Info("all waves completed")
		s.env.Events.Emit(event.AllWavesCompleted, nil)
	}
}

func (s *WaveSystem) enterSpawning(w *component.Wave) {
	def := s.env.Catalog.Waves[w.Index]
	w.Phase = component.WaveSpawning
	w.Timer = 0
	w.Groups = make([]*component.SpawnGroupState, 0, len(def.Enemies))
	for _, g := range def.Enemies {
		w.Groups = append(w.Groups, &component.SpawnGroupState{
			Group:     g,
			Remaining: g.Count,
			Timer:     g.InitialDelay,
			Interval:  g.SpawnInterval,
		})
	}
	s.env.Logger.Info("wave started", "wave", w.Index, "groups", len(w.Groups))
	s.env.Events.Emit(event.WaveStarted, event.WaveData{Index: w.Index, Bonus: def.WaveCompletionBonus})
}

// spawnGroups ведёт группы в порядке каталога; не больше одного спавна на группу за тик.
func (s *WaveSystem) spawnGroups(w *component.Wave, dt float64) {
	kept := w.Groups[:0]
	for _, g := range w.Groups {
		g.Timer -= dt
		if g.Timer <= component.TimeEpsilon && g.Remaining > 0 {
			if _, err := s.Spawn(g.Group.Type, w.Index); err != nil {
				s.env.Logger.Error("dropping spawn group", "wave", w.Index, "type", g.Group.Type, "err", err)
				continue
			}
			g.Remaining--
			g.Timer = g.Interval
		}
		if g.Remaining > 0 {
			kept = append(kept, g)
		}
	}
	w.Groups = kept
	if len(w.Groups) == 0 {
		w.Phase = component.WaveIntermission
	}
}

// Spawn создаёт противника в точке входа. wave < 0 — вне учёта волн.
func (s *WaveSystem) Spawn(defID string, wave int) (types.EntityID, error) {
	def, ok := s.env.Catalog.Enemies[defID]
	if !ok {
		return types.NoEntity, &defs.CatalogError{Table: "enemies", ID: defID, Reason: "unknown adversary id"}
	}
	start := s.env.Grid.SpawnAnchor()
	path := s.FindPath(start, def.Type)
	if path == nil {
		return types.NoEntity, &defs.CatalogError{Table: "enemies", ID: defID, Reason: "no path from spawn"}
	}
	e := &component.Enemy{
		DefID:        def.ID,
		Type:         def.Type,
		WaveIndex:    wave,
		Pos:          s.env.CellCenter(start),
		Path:         path,
		Health:       def.Health,
		MaxHealth:    def.Health,
		BaseSpeed:    def.Speed,
		CurrentSpeed: def.Speed,
		ArmorType:    def.ArmorType,
		BaseArmor:    def.ArmorValue,
		CurrentArmor: def.ArmorValue,
		Value:        def.Value,
		LivesCost:    def.Lives(),
	}
	id := s.env.ECS.AddEnemy(e)
	if wave >= 0 {
		c := s.env.ECS.Wave.Counter(wave)
		c.Spawned++
		c.Alive++
	}
	s.env.Logger.Debug("enemy spawned", "enemy", id, "def", defID, "wave", wave)
	s.env.Events.Emit(event.EnemySpawned, event.EnemyData{ID: id, DefID: defID, Wave: wave, Pos: e.Pos})
	return id, nil
}

// FindPath ищет путь до цели с предикатом проходимости типа противника.
func (s *WaveSystem) FindPath(from grid.Cell, unit types.UnitType) []grid.Cell {
	walkable := grid.GroundWalkable
	if unit == types.Air {
		walkable = grid.AirWalkable
	}
	return grid.AStar(from, s.env.Grid.ObjectiveAnchor(), s.env.Grid, walkable)
}
