package ui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SpeedButton переключает множитель скорости симуляции.
type SpeedButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	StateColors    []color.RGBA
	Multipliers    []int
	CurrentState   int
}

func NewSpeedButton(x, y, size float32, stateColors []color.RGBA, multipliers []int) *SpeedButton {
	return &SpeedButton{
		X:            x,
		Y:            y,
		Size:         size,
		StateColors:  stateColors,
		Multipliers:  multipliers,
		CurrentState: 0,
	}
}

// Multiplier returns how many fixed steps run per frame.
func (b *SpeedButton) Multiplier() int {
	if len(b.Multipliers) == 0 {
		return 1
	}
	return b.Multipliers[b.CurrentState%len(b.Multipliers)]
}

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	triangleSize := b.Size * pulse(b.LastClickTime)
	clr := b.StateColors[b.CurrentState%len(b.StateColors)]

	// Параметры треугольников
	height := triangleSize * 1.2
	width := triangleSize
	offset := width * 0.8

	for _, dx := range []float32{0, offset} {
		var path vector.Path
		path.MoveTo(b.X-width+dx, b.Y-height/2)
		path.LineTo(b.X+dx, b.Y)
		path.LineTo(b.X-width+dx, b.Y+height/2)
		path.Close()
		fillPath(screen, &path, clr)
	}
}

func (b *SpeedButton) Contains(x, y int) bool {
	// Используем круг для определения попадания, так как форма сложная
	return insideCircle(x, y, b.X, b.Y, b.Size*1.5)
}

func (b *SpeedButton) ToggleState() {
	n := max(1, len(b.Multipliers))
	b.CurrentState = (b.CurrentState + 1) % n
	b.LastClickTime = time.Now()
	b.LastToggleTime = time.Now()
}

var whitePixel *ebiten.Image

// fillPath заливает замкнутый путь цветом.
func fillPath(screen *ebiten.Image, path *vector.Path, clr color.RGBA) {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(3, 3)
		whitePixel.Fill(color.White)
	}
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = float32(clr.A) / 255
	}
	screen.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
