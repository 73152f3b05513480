// internal/ui/pause_button.go
package ui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PauseButton — кнопка паузы: две полосы или треугольник «play».
type PauseButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	IsPaused       bool
	PauseColor     color.RGBA
	PlayColor      color.RGBA
}

func NewPauseButton(x, y, size float32, pauseColor, playColor color.RGBA) *PauseButton {
	return &PauseButton{
		X:          x,
		Y:          y,
		Size:       size,
		PauseColor: pauseColor,
		PlayColor:  playColor,
	}
}

func (b *PauseButton) Draw(screen *ebiten.Image) {
	rectSize := b.Size * pulse(b.LastClickTime)

	if b.IsPaused {
		var path vector.Path
		path.MoveTo(b.X-rectSize, b.Y-rectSize*1.2)
		path.LineTo(b.X-rectSize, b.Y+rectSize*1.2)
		path.LineTo(b.X+rectSize, b.Y)
		path.Close()
		fillPath(screen, &path, b.PlayColor)
		return
	}

	width := rectSize * 0.6
	height := rectSize * 2.0
	spacing := rectSize * 0.4
	vector.DrawFilledRect(screen, b.X-width-spacing/2, b.Y-height/2, width, height, b.PauseColor, false)
	vector.StrokeRect(screen, b.X-width-spacing/2, b.Y-height/2, width, height, 1, color.White, false)
	vector.DrawFilledRect(screen, b.X+spacing/2, b.Y-height/2, width, height, b.PauseColor, false)
	vector.StrokeRect(screen, b.X+spacing/2, b.Y-height/2, width, height, 1, color.White, false)
}

func (b *PauseButton) Contains(x, y int) bool {
	return insideCircle(x, y, b.X, b.Y, b.Size*1.5)
}

func (b *PauseButton) TogglePause() {
	b.IsPaused = !b.IsPaused
	b.LastClickTime = time.Now()
	b.LastToggleTime = time.Now()
}

func (b *PauseButton) SetPaused(paused bool) {
	b.IsPaused = paused
}
