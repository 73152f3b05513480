// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StateIndicator — кружок цвета текущей фазы матча. Клик по нему запускает волны.
type StateIndicator struct {
	X, Y          float32
	Radius        float32
	LastClickTime time.Time
}

func NewStateIndicator(x, y, radius float32) *StateIndicator {
	return &StateIndicator{
		X:      x,
		Y:      y,
		Radius: radius,
	}
}

// Draw отрисовывает индикатор
func (i *StateIndicator) Draw(screen *ebiten.Image, stateColor color.Color) {
	currentRadius := i.Radius * pulse(i.LastClickTime)
	vector.DrawFilledCircle(screen, i.X, i.Y, currentRadius, stateColor, true)
	vector.StrokeCircle(screen, i.X, i.Y, currentRadius, 1, color.White, true)
}

// Contains проверяет, был ли клик внутри индикатора
func (i *StateIndicator) Contains(x, y int) bool {
	return insideCircle(x, y, i.X, i.Y, i.Radius)
}

// HandleClick запоминает время клика для анимации.
func (i *StateIndicator) HandleClick() {
	i.LastClickTime = time.Now()
}

// pulse — масштаб короткой анимации после клика.
func pulse(since time.Time) float32 {
	elapsed := time.Since(since).Seconds()
	return float32(1.0 + 0.3*math.Exp(-elapsed*8))
}

func insideCircle(x, y int, cx, cy, r float32) bool {
	dx := float32(x) - cx
	dy := float32(y) - cy
	return dx*dx+dy*dy <= r*r
}
