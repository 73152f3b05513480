// internal/system/state.go
package system

import (
	"go-grid-defense/internal/event"
)

// MatchPhase — фаза матча с точки зрения хоста.
type MatchPhase string

const (
	PhaseBuild    MatchPhase = "build"
	PhaseWave     MatchPhase = "wave"
	PhaseVictory  MatchPhase = "victory"
	PhaseGameOver MatchPhase = "game_over"
)

// StateSystem следит за событиями волн и экономики и ведёт фазу матча.
type StateSystem struct {
	phase       MatchPhase
	wavesClosed int
}

func NewStateSystem(eventDispatcher *event.Dispatcher) *StateSystem {
	ss := &StateSystem{phase: PhaseBuild}
	eventDispatcher.Subscribe(event.WaveStarted, ss)
	eventDispatcher.Subscribe(event.WaveCompleted, ss)
	eventDispatcher.Subscribe(event.AllWavesCompleted, ss)
	eventDispatcher.Subscribe(event.GameOver, ss)
	return ss
}

func (s *StateSystem) OnEvent(e event.Event) {
	if s.phase == PhaseGameOver {
		return
	}
	switch e.Type {
	case event.WaveStarted:
		s.phase = PhaseWave
	case event.WaveCompleted:
		s.wavesClosed++
		s.phase = PhaseBuild
	case event.AllWavesCompleted:
		s.phase = PhaseVictory
	case event.GameOver:
		s.phase = PhaseGameOver
	}
}

// Phase returns the current match phase.
func (s *StateSystem) Phase() MatchPhase { return s.phase }

// WavesCleared returns how many waves were completed.
func (s *StateSystem) WavesCleared() int { return s.wavesClosed }
