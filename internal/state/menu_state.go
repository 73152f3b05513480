// internal/state/menu_state.go
package state

import (
	"fmt"
	"image/color"
	"strings"

	"go-grid-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MenuState — стартовый экран. Space создает новый матч.
type MenuState struct {
	sm      *StateMachine
	newGame func() (*GameState, error)
	err     error
}

func NewMenuState(sm *StateMachine, newGame func() (*GameState, error)) *MenuState {
	return &MenuState{sm: sm, newGame: newGame}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	if !inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return
	}
	gs, err := m.newGame()
	if err != nil {
		m.err = err
		return
	}
	m.sm.SetState(gs)
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255}) // Чёрный экран

	lines := []string{
		"GRID DEFENSE",
		"",
		"Space        start",
		"1-9 / Tab    pick tower / race",
		"LMB / RMB    build / sell",
		"Space        start waves",
		"P            pause",
	}
	if m.err != nil {
		lines = append(lines, "", fmt.Sprintf("error: %v", m.err))
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), config.ScreenWidth/2-100, config.ScreenHeight/2-60)
}

func (m *MenuState) Exit() {}
