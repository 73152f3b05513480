package ui

import (
	"fmt"
	"image"
	"image/color"

	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	bookRowHeight = 26
	bookPadding   = 10
)

var (
	bookBackground = color.RGBA{25, 35, 45, 230}
	bookSelected   = color.RGBA{70, 130, 180, 255}
	bookDisabled   = color.RGBA{110, 110, 110, 255}
)

// TowerBook — палитра построек выбранной расы.
type TowerBook struct {
	X, Y, Width int
	races       []string
	raceIdx     int
	Selected    string
}

// NewTowerBook creates a palette over the catalog races; the first tower of
// the first race is preselected.
func NewTowerBook(x, y, width int, catalog *defs.Catalog) *TowerBook {
	b := &TowerBook{X: x, Y: y, Width: width, races: catalog.Races()}
	b.selectFirst(catalog)
	return b
}

// Race returns the race the palette shows.
func (b *TowerBook) Race() string {
	if len(b.races) == 0 {
		return ""
	}
	return b.races[b.raceIdx]
}

// NextRace переключает палитру на следующую расу.
func (b *TowerBook) NextRace(catalog *defs.Catalog) {
	if len(b.races) == 0 {
		return
	}
	b.raceIdx = (b.raceIdx + 1) % len(b.races)
	b.selectFirst(catalog)
}

// SelectIndex выбирает i-ю (с нуля) постройку расы.
func (b *TowerBook) SelectIndex(catalog *defs.Catalog, i int) bool {
	ids := catalog.TowerIDs(b.Race())
	if i < 0 || i >= len(ids) {
		return false
	}
	b.Selected = ids[i]
	return true
}

func (b *TowerBook) selectFirst(catalog *defs.Catalog) {
	b.Selected = ""
	b.SelectIndex(catalog, 0)
}

// rowRect — прямоугольник i-й строки списка.
func (b *TowerBook) rowRect(i int) image.Rectangle {
	top := b.Y + bookPadding + bookRowHeight*(i+1)
	return image.Rect(b.X+bookPadding, top, b.X+b.Width-bookPadding, top+bookRowHeight-4)
}

// HandleClick выбирает постройку под курсором.
func (b *TowerBook) HandleClick(catalog *defs.Catalog, x, y int) bool {
	for i := range catalog.TowerIDs(b.Race()) {
		if image.Pt(x, y).In(b.rowRect(i)) {
			return b.SelectIndex(catalog, i)
		}
	}
	return false
}

// Contains сообщает, попадает ли точка в панель.
func (b *TowerBook) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y
}

// Draw рисует палитру. Недоступные по золоту постройки затемнены.
func (b *TowerBook) Draw(screen *ebiten.Image, face font.Face, catalog *defs.Catalog, gold int) {
	height := config.ScreenHeight - b.Y
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(height), bookBackground, false)

	title := fmt.Sprintf("Race: %s  [Tab]", b.Race())
	text.Draw(screen, title, face, b.X+bookPadding, b.Y+bookPadding+14, config.TextLightColor)

	for i, id := range catalog.TowerIDs(b.Race()) {
		def, ok := catalog.Tower(b.Race(), id)
		if !ok {
			continue
		}
		r := b.rowRect(i)
		if id == b.Selected {
			vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, bookSelected, false)
		}
		clr := config.TextLightColor
		if def.Cost > gold {
			clr = bookDisabled
		}
		label := fmt.Sprintf("%d. %s", i+1, def.Name)
		text.Draw(screen, label, face, r.Min.X+6, r.Max.Y-7, clr)

		cost := fmt.Sprintf("%d", def.Cost)
		cb := text.BoundString(face, cost)
		costClr := config.GoldTextColor
		if def.Cost > gold {
			costClr = bookDisabled
		}
		text.Draw(screen, cost, face, r.Max.X-6-cb.Dx(), r.Max.Y-7, costClr)
	}
}
