// internal/state/session.go
package state

import (
	game "go-grid-defense/internal/app"
)

// maxStepsPerFrame — сколько тиков разрешено догонять за один кадр.
const maxStepsPerFrame = 8

// Session продвигает мир фиксированными тиками под переменный кадр хоста.
// Команды игрока копятся и применяются перед ближайшим тиком.
type Session struct {
	Game   *game.Game
	Speed  int
	Paused bool

	fixed    float64
	maxFrame float64
	acc      float64
	pending  []game.Command
	snap     game.Snapshot
}

// NewSession wraps a world; the first snapshot is taken immediately.
func NewSession(g *game.Game) *Session {
	return &Session{
		Game:     g,
		Speed:    1,
		fixed:    g.Config.FixedDelta(),
		maxFrame: g.Config.MaxDeltaTime,
		snap:     g.Snapshot(nil),
	}
}

// Queue ставит команду в очередь к следующему тику.
func (s *Session) Queue(cmd game.Command) {
	s.pending = append(s.pending, cmd)
}

// Pending returns the number of queued commands.
func (s *Session) Pending() int { return len(s.pending) }

// Snapshot returns the latest world snapshot.
func (s *Session) Snapshot() game.Snapshot { return s.snap }

// Advance накапливает время кадра и выполняет целые тики. Возвращает
// события всех выполненных тиков.
func (s *Session) Advance(frame float64) []game.Snapshot {
	if s.Paused {
		return nil
	}
	if s.maxFrame > 0 && frame > s.maxFrame {
		frame = s.maxFrame
	}
	speed := s.Speed
	if speed < 1 {
		speed = 1
	}
	s.acc += frame * float64(speed)

	var out []game.Snapshot
	limit := maxStepsPerFrame * speed
	for s.acc >= s.fixed && len(out) < limit {
		s.acc -= s.fixed
		s.snap = s.Game.Step(s.fixed, s.pending)
		s.pending = s.pending[:0]
		out = append(out, s.snap)
	}
	if len(out) == limit {
		// не догоняем бесконечно после долгого кадра
		s.acc = 0
	}
	return out
}
