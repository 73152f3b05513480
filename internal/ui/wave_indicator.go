package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// WaveIndicator отображает номер текущей волны римскими цифрами.
type WaveIndicator struct {
	X, Y             float32
	Color            color.RGBA
	BossColor        color.RGBA
	OutlineColor     color.RGBA
	OutlineThickness int
}

// NewWaveIndicator создает новый индикатор волны.
func NewWaveIndicator(x, y float32, clr color.RGBA) *WaveIndicator {
	return &WaveIndicator{
		X:                x,
		Y:                y,
		Color:            clr,
		BossColor:        color.RGBA{255, 60, 60, 255},
		OutlineColor:     color.RGBA{255, 255, 255, 255},
		OutlineThickness: 1,
	}
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Label returns the indicator text: the wave number and, when known,
// how many adversaries of it are still alive.
func Label(waveNumber, alive, total int) string {
	if waveNumber <= 0 {
		return ""
	}
	if total <= 0 {
		return toRoman(waveNumber)
	}
	return fmt.Sprintf("%s  %d/%d", toRoman(waveNumber), alive, total)
}

// Draw отрисовывает индикатор на экране.
func (i *WaveIndicator) Draw(screen *ebiten.Image, face font.Face, waveNumber, alive, total int) {
	label := Label(waveNumber, alive, total)
	if label == "" {
		return
	}

	textColor := i.Color
	if waveNumber%10 == 0 {
		textColor = i.BossColor // Красный для босс-волн
	}

	b := text.BoundString(face, label)
	x := int(i.X) - b.Dx()/2
	y := int(i.Y)

	for dy := -i.OutlineThickness; dy <= i.OutlineThickness; dy++ {
		for dx := -i.OutlineThickness; dx <= i.OutlineThickness; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			text.Draw(screen, label, face, x+dx, y+dy, i.OutlineColor)
		}
	}
	text.Draw(screen, label, face, x, y, textColor)
}
