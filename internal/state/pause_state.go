// internal/state/pause_state.go
package state

import (
	"image/color"

	"go-grid-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState замораживает мир и рисует поверх него затемнение.
type PauseState struct {
	stateMachine  *StateMachine
	previousState *GameState
}

func NewPauseState(sm *StateMachine, prevState *GameState) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
	}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		unpause = unpause || s.previousState.pause.Contains(x, y)
	}

	if unpause {
		// Enter матча снимает паузу с кнопки и мира
		s.stateMachine.Pop()
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previousState.Draw(screen)

	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrintAt(screen, "PAUSED", config.ScreenWidth/2-20, config.ScreenHeight/2-8)
	ebitenutil.DebugPrintAt(screen, "P / Esc to resume", config.ScreenWidth/2-50, config.ScreenHeight/2+10)
}

func (s *PauseState) Exit() {}
