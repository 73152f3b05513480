// internal/ui/player_health_indicator.go
package ui

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	HealthCols          = 10
	HealthCircleRadius  = 5.0
	HealthCircleSpacing = 3.0
)

var (
	healthFull  = color.RGBA{60, 110, 255, 255}
	healthLow   = color.RGBA{230, 40, 40, 255}
	healthEmpty = color.RGBA{0, 0, 0, 255}
)

// PlayerHealthIndicator отображает оставшиеся жизни сеткой кружков.
type PlayerHealthIndicator struct {
	X, Y float32
}

// NewPlayerHealthIndicator создает новый индикатор жизней.
func NewPlayerHealthIndicator(x, y float32) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{X: x, Y: y}
}

// cellColor: первая половина запаса синяя, после потери половины все красные.
func cellColor(j, lives, maxLives int) color.RGBA {
	if j >= lives {
		return healthEmpty
	}
	half := maxLives / 2
	if lives <= half || j >= lives-half {
		return healthLow
	}
	return healthFull
}

// Draw рисует индикатор жизней.
func (i *PlayerHealthIndicator) Draw(screen *ebiten.Image, face font.Face, lives, maxLives int) {
	step := float32(HealthCircleRadius*2 + HealthCircleSpacing)
	for j := 0; j < maxLives; j++ {
		row := j / HealthCols
		col := j % HealthCols
		cx := i.X + float32(col)*step + HealthCircleRadius
		cy := i.Y + float32(row)*step + HealthCircleRadius
		vector.DrawFilledCircle(screen, cx, cy, HealthCircleRadius, cellColor(j, lives, maxLives), true)
		vector.StrokeCircle(screen, cx, cy, HealthCircleRadius, 1, color.White, true)
	}

	label := strconv.Itoa(lives) + "/" + strconv.Itoa(maxLives)
	text.Draw(screen, label, face, int(i.X+float32(HealthCols)*step)+6, int(i.Y)+HealthCircleRadius*2, color.White)
}
