// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"io"

	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/system"
	"go-grid-defense/internal/types"
	"go-grid-defense/internal/utils"
	"go-grid-defense/pkg/grid"

	"github.com/charmbracelet/log"
)

// ErrUnknownCommand is returned for commands the world does not understand.
var ErrUnknownCommand = errors.New("unknown command")

// Game — мир симуляции: одна сетка, одно хранилище сущностей, один поток RNG.
type Game struct {
	Config  config.Config
	Catalog *defs.Catalog
	Grid    *grid.Grid
	ECS     *entity.ECS
	Events  *event.Dispatcher
	Rng     *utils.PRNGService
	Logger  *log.Logger
	Systems *system.Pipeline

	recorder *event.Recorder
	overSent bool
}

// New builds a world from tunables and a loaded catalog. A nil logger discards output.
func New(cfg config.Config, catalog *defs.Catalog, logger *log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	for _, p := range catalog.Problems {
		logger.Error("catalog entry skipped", "err", p)
	}

	ecs := entity.NewECS()
	events := event.NewDispatcher()
	g := &Game{
		Config:   cfg,
		Catalog:  catalog,
		Grid:     grid.New(cfg.Layout()),
		ECS:      ecs,
		Events:   events,
		Rng:      utils.NewPRNGService(cfg.Seed),
		Logger:   logger,
		recorder: event.NewRecorder(events),
	}
	env := system.NewEnv(ecs, cfg, catalog, g.Grid, g.Rng, events, logger)
	g.Systems = system.NewPipeline(env)
	return g, nil
}

// Env returns the shared system environment.
func (g *Game) Env() *system.Env { return g.Systems.Env }

func (g *Game) Gold() int         { return g.Systems.Economy.Gold() }
func (g *Game) Lives() int        { return g.Systems.Economy.Lives() }
func (g *Game) Over() bool        { return g.Systems.Economy.Over() }
func (g *Game) Time() float64     { return g.ECS.GameTime }
func (g *Game) TickCount() uint64 { return g.ECS.Tick }

// Phase returns the match phase tracked from wave and economy events.
func (g *Game) Phase() system.MatchPhase { return g.Systems.State.Phase() }

// Step применяет команды хоста и продвигает мир на dt. После конца игры
// мир не меняется. Возвращает снимок с событиями этого тика.
func (g *Game) Step(dt float64, commands []Command) Snapshot {
	if !g.Over() {
		for _, cmd := range commands {
			_ = g.Apply(cmd)
		}
		if dt > 0 {
			g.Systems.Step(dt)
		}
		if g.Over() && !g.overSent {
			g.overSent = true
			g.Logger.Warn("match lost", "time", g.Time(), "wave", g.ECS.Wave.Index)
		}
	}
	return g.Snapshot(g.recorder.Drain())
}

// Apply выполняет одну команду. Отказ записывается событием CommandRejected.
func (g *Game) Apply(cmd Command) error {
	var err error
	switch cmd.Kind {
	case CmdPlaceTower:
		_, err = g.PlaceTower(cmd.Cell, cmd.Race, cmd.Tower)
	case CmdSellTower:
		_, err = g.SellTower(cmd.Cell)
	case CmdStartWaves:
		g.StartWaves()
	case CmdSpawnDebugEnemy:
		_, err = g.SpawnDebugEnemy(cmd.Enemy)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
	}
	// команды идут между тиками, снятые сущности можно чистить сразу
	g.ECS.Sweep()
	if err != nil {
		g.reject(cmd, err)
	}
	return err
}

func (g *Game) reject(cmd Command, err error) {
	reason := err.Error()
	var pe *PlacementError
	if errors.As(err, &pe) {
		reason = string(pe.Reason)
	}
	g.Logger.Warn("command rejected", "command", cmd.String(), "reason", reason)
	g.Events.Emit(event.CommandRejected, event.RejectedData{Command: cmd.String(), Reason: reason, Err: err})
}

// StartWaves запускает директор волн. Повторный запуск игнорируется.
func (g *Game) StartWaves() bool {
	return g.Systems.Waves.Start()
}

// SpawnDebugEnemy создаёт противника вне учёта волн.
func (g *Game) SpawnDebugEnemy(id string) (types.EntityID, error) {
	return g.Systems.Waves.Spawn(id, -1)
}
