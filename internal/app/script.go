package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"go-grid-defense/internal/event"
	"go-grid-defense/internal/system"

	"gopkg.in/yaml.v3"
)

// ScriptStep — команда сценария, применяемая перед тиком At.
type ScriptStep struct {
	At      uint64 `yaml:"at"`
	Command `yaml:",inline"`
}

// Script — сценарий безголового прогона.
type Script struct {
	Name     string       `yaml:"name"`
	MaxTicks uint64       `yaml:"max_ticks"`
	Steps    []ScriptStep `yaml:"steps"`

	byTick map[uint64][]Command
}

// DefaultMaxTicks bounds a run whose script does not say otherwise (30 minutes at 60 Hz).
const DefaultMaxTicks = 30 * 60 * 60

// ParseScript decodes a YAML scenario.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	for i, st := range s.Steps {
		switch st.Kind {
		case CmdPlaceTower, CmdSellTower, CmdStartWaves, CmdSpawnDebugEnemy:
		default:
			return nil, fmt.Errorf("scenario step %d: %w: %q", i, ErrUnknownCommand, st.Kind)
		}
	}
	if s.MaxTicks == 0 {
		s.MaxTicks = DefaultMaxTicks
	}
	s.index()
	return &s, nil
}

// LoadScript reads a scenario from the filesystem.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadScriptFS reads a scenario from fsys.
func LoadScriptFS(fsys fs.FS, name string) (*Script, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", name, err)
	}
	return ParseScript(data)
}

func (s *Script) index() {
	steps := append([]ScriptStep(nil), s.Steps...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })
	s.byTick = make(map[uint64][]Command, len(steps))
	for _, st := range steps {
		s.byTick[st.At] = append(s.byTick[st.At], st.Command)
	}
}

// Commands returns the commands due before tick.
func (s *Script) Commands(tick uint64) []Command {
	if s.byTick == nil {
		s.index()
	}
	return s.byTick[tick]
}

// Outcome — итог прогона.
type Outcome string

const (
	OutcomeVictory  Outcome = "victory"
	OutcomeGameOver Outcome = "game_over"
	OutcomeTimeout  Outcome = "timeout"
)

// Result — сводка законченного прогона.
type Result struct {
	Scenario     string  `yaml:"scenario"`
	Seed         int64   `yaml:"seed"`
	Outcome      Outcome `yaml:"outcome"`
	WavesCleared int     `yaml:"waves_cleared"`
	Lives        int     `yaml:"lives"`
	Gold         int     `yaml:"gold"`
	Ticks        uint64  `yaml:"ticks"`
	GameTime     float64 `yaml:"game_time"`
	Rejected     int     `yaml:"rejected"`
}

// Run plays the script on a fixed step until victory, game over, the tick
// limit or ctx cancellation. onTick, when set, sees every snapshot.
func (g *Game) Run(ctx context.Context, s *Script, onTick func(Snapshot)) (Result, error) {
	dt := g.Config.FixedDelta()
	rejected := 0
	for g.TickCount() < s.MaxTicks {
		if err := ctx.Err(); err != nil {
			return g.result(s, OutcomeTimeout, rejected), err
		}
		snap := g.Step(dt, s.Commands(g.TickCount()))
		for _, ev := range snap.Events {
			if ev.Type == event.CommandRejected {
				rejected++
			}
		}
		if onTick != nil {
			onTick(snap)
		}
		switch g.Phase() {
		case system.PhaseVictory:
			return g.result(s, OutcomeVictory, rejected), nil
		case system.PhaseGameOver:
			return g.result(s, OutcomeGameOver, rejected), nil
		}
	}
	return g.result(s, OutcomeTimeout, rejected), nil
}

func (g *Game) result(s *Script, outcome Outcome, rejected int) Result {
	return Result{
		Scenario:     s.Name,
		Seed:         g.Rng.Seed(),
		Outcome:      outcome,
		WavesCleared: g.Systems.State.WavesCleared(),
		Lives:        g.Lives(),
		Gold:         g.Gold(),
		Ticks:        g.TickCount(),
		GameTime:     g.Time(),
		Rejected:     rejected,
	}
}
