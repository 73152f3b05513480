package render

import (
	"image/color"
	"math"
	"slices"
	"strings"

	"go-grid-defense/internal/app"
	"go-grid-defense/internal/component"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/grid"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// GridRenderer рисует снимок мира поверх предрендеренной карты.
type GridRenderer struct {
	width, height int
	cellSize      float64
	offsetX       float64
	offsetY       float64
	mapColors     MapColors
	colors        EntityColors
	fontFace      font.Face
	mapImage      *ebiten.Image // Предрендеренная карта
	lastCells     []grid.CellState
	spawn         grid.Rect
	objective     grid.Rect
}

// NewGridRenderer creates a renderer for a width×height map drawn at the offset.
func NewGridRenderer(width, height int, cellSize, offsetX, offsetY float64, spawn, objective grid.Rect, face font.Face, mapColors MapColors, colors EntityColors) *GridRenderer {
	return &GridRenderer{
		width:     width,
		height:    height,
		cellSize:  cellSize,
		offsetX:   offsetX,
		offsetY:   offsetY,
		mapColors: mapColors,
		colors:    colors,
		fontFace:  face,
		mapImage:  ebiten.NewImage(int(float64(width)*cellSize), int(float64(height)*cellSize)),
		spawn:     spawn,
		objective: objective,
	}
}

// CellAt maps a screen point onto the grid.
func (r *GridRenderer) CellAt(x, y int) (grid.Cell, bool) {
	c := grid.CellAt(float64(x)-r.offsetX, float64(y)-r.offsetY, r.cellSize)
	ok := c.X >= 0 && c.Y >= 0 && c.X < r.width && c.Y < r.height
	return c, ok
}

// screen переводит мировые пиксели в экранные.
func (r *GridRenderer) screen(p component.Position) (float32, float32) {
	return float32(p.X + r.offsetX), float32(p.Y + r.offsetY)
}

// ScreenPos переводит мировую позицию в координаты экрана.
func (r *GridRenderer) ScreenPos(p component.Position) (float64, float64) {
	return p.X + r.offsetX, p.Y + r.offsetY
}

// RenderMapImage перерисовывает фон, только если клетки изменились.
func (r *GridRenderer) RenderMapImage(cells []grid.CellState) {
	if slices.Equal(cells, r.lastCells) {
		return
	}
	r.lastCells = append(r.lastCells[:0], cells...)
	r.mapImage.Fill(r.mapColors.Background)

	size := float32(r.cellSize)
	for i, state := range cells {
		c := grid.Cell{X: i % r.width, Y: i / r.width}
		fill := r.mapColors.Free
		switch {
		case r.spawn.Contains(c):
			fill = r.mapColors.Spawn
		case r.objective.Contains(c):
			fill = r.mapColors.Objective
		case state == grid.Blocked:
			fill = r.mapColors.Blocked
		case state == grid.Restricted:
			fill = r.mapColors.Restricted
		}
		x, y := float32(c.X)*size, float32(c.Y)*size
		vector.DrawFilledRect(r.mapImage, x, y, size, size, fill, false)
		vector.StrokeRect(r.mapImage, x, y, size, size, r.mapColors.StrokeWidth, LightenColor(fill, 40), false)
	}
}

// Draw рисует карту и все сущности снимка.
func (r *GridRenderer) Draw(screen *ebiten.Image, snap app.Snapshot) {
	r.RenderMapImage(snap.Grid)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(r.offsetX, r.offsetY)
	screen.DrawImage(r.mapImage, op)

	enemies := make(map[types.EntityID]app.EnemyView, len(snap.Enemies))
	for _, e := range snap.Enemies {
		enemies[e.ID] = e
	}

	for _, fx := range snap.Effects {
		if fx.Kind == component.EffectGroundZone.String() {
			r.drawZone(screen, fx)
		}
	}
	for _, t := range snap.Towers {
		r.drawTower(screen, t, enemies)
	}
	for _, e := range snap.Enemies {
		r.drawEnemy(screen, e)
	}
	for _, p := range snap.Projectiles {
		x, y := r.screen(p.Pos)
		radius := float32(3)
		if p.Kind == "splash" {
			radius = 5
		}
		vector.DrawFilledCircle(screen, x, y, radius, r.colors.Projectile, true)
	}
	for _, o := range snap.Orbiters {
		x, y := r.screen(o.Pos)
		vector.DrawFilledCircle(screen, x, y, 5, r.colors.Orbiter, true)
	}
	for _, x := range snap.Exploders {
		sx, sy := r.screen(x.Pos)
		vector.DrawFilledCircle(screen, sx, sy, 6, r.colors.Projectile, true)
		vector.StrokeCircle(screen, sx, sy, 8, 1, r.colors.Text, true)
	}
	for _, fx := range snap.Effects {
		r.drawEffect(screen, fx)
	}
}

func (r *GridRenderer) drawTower(screen *ebiten.Image, t app.TowerView, enemies map[types.EntityID]app.EnemyView) {
	size := float32(r.cellSize)
	x := float32(t.Footprint.Min.X)*size + float32(r.offsetX)
	y := float32(t.Footprint.Min.Y)*size + float32(r.offsetY)
	w := float32(t.Footprint.Max.X-t.Footprint.Min.X) * size
	h := float32(t.Footprint.Max.Y-t.Footprint.Min.Y) * size

	stroke := r.colors.TowerStroke
	if !t.Blocking {
		stroke = DarkenColor(stroke)
	}
	vector.StrokeRect(screen, x+2, y+2, w-4, h-4, 2, stroke, false)

	// Инициал башни
	name := t.Key
	if i := strings.IndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if name != "" {
		label := strings.ToUpper(name[:1])
		b := text.BoundString(r.fontFace, label)
		cx, cy := r.screen(t.Center)
		text.Draw(screen, label, r.fontFace, int(cx)-b.Dx()/2, int(cy)+b.Dy()/2, r.colors.Text)
	}

	cx, cy := r.screen(t.Center)
	if t.BeamActive {
		for _, id := range t.Beam {
			if e, ok := enemies[id]; ok {
				ex, ey := r.screen(e.Pos)
				vector.StrokeLine(screen, cx, cy, ex, ey, 2, r.colors.Beam, true)
			}
		}
	}
	if e, ok := enemies[t.Painting]; ok && t.Painting != types.NoEntity {
		ex, ey := r.screen(e.Pos)
		vector.StrokeLine(screen, cx, cy, ex, ey, 1, Fade(r.colors.Beam, 0.5), true)
	}
	for i := 0; i < t.Stacks && i < 10; i++ {
		vector.DrawFilledRect(screen, x+3+float32(i)*3, y+h-5, 2, 2, r.colors.Gold, false)
	}
}

func (r *GridRenderer) drawEnemy(screen *ebiten.Image, e app.EnemyView) {
	x, y := r.screen(e.Pos)
	radius := float32(r.cellSize * 0.3)
	fill := r.colors.GroundEnemy
	if e.Type == types.Air {
		fill = r.colors.AirEnemy
	}
	vector.DrawFilledCircle(screen, x, y, radius, fill, true)

	for _, s := range e.Statuses {
		switch component.StatusKind(s) {
		case component.StatusStun:
			vector.StrokeCircle(screen, x, y, radius+2, 2, r.colors.Text, true)
		case component.StatusSlow:
			vector.StrokeCircle(screen, x, y, radius+2, 1, r.colors.Chain, true)
		case component.StatusMarkedForDeath:
			vector.StrokeCircle(screen, x, y, radius+4, 1, r.colors.Beam, true)
		}
	}
	if len(e.DoTs) > 0 {
		vector.DrawFilledCircle(screen, x+radius, y-radius, 2, r.colors.Beam, false)
	}

	// Полоска здоровья
	if e.MaxHealth > 0 {
		frac := e.Health / e.MaxHealth
		barW := radius * 2
		vector.DrawFilledRect(screen, x-radius, y-radius-5, barW, 3, DarkenColor(r.mapColors.Restricted), false)
		vector.DrawFilledRect(screen, x-radius, y-radius-5, barW*float32(frac), 3, HealthColor(frac), false)
	}
}

func (r *GridRenderer) drawZone(screen *ebiten.Image, fx app.EffectView) {
	x, y := r.screen(fx.Pos)
	vector.DrawFilledCircle(screen, x, y, float32(fx.Radius), Fade(r.colors.Beam, 0.25*(1-fx.Progress)), true)
}

func (r *GridRenderer) drawEffect(screen *ebiten.Image, fx app.EffectView) {
	fade := 1 - fx.Progress
	switch fx.Kind {
	case component.EffectChainPath.String():
		for i := 1; i < len(fx.Points); i++ {
			x0, y0 := r.screen(fx.Points[i-1])
			x1, y1 := r.screen(fx.Points[i])
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, Fade(r.colors.Chain, fade), true)
		}
	case component.EffectPulseCircle.String():
		x, y := r.screen(fx.Pos)
		vector.StrokeCircle(screen, x, y, float32(fx.Radius*fx.Progress), 2, Fade(r.colors.Pulse, fade), true)
	case component.EffectExplosion.String():
		x, y := r.screen(fx.Pos)
		vector.DrawFilledCircle(screen, x, y, float32(fx.Radius*math.Sqrt(fx.Progress)), Fade(r.colors.Projectile, 0.6*fade), true)
	case component.EffectFloatingText.String():
		x, y := r.screen(fx.Pos)
		b := text.BoundString(r.fontFace, fx.Text)
		rise := int(20 * fx.Progress)
		var clr color.Color = Fade(r.colors.Gold, fade)
		text.Draw(screen, fx.Text, r.fontFace, int(x)-b.Dx()/2, int(y)-rise, clr)
	}
}

// DrawHover обводит клетки будущей постройки.
func (r *GridRenderer) DrawHover(screen *ebiten.Image, rect grid.Rect, allowed bool) {
	size := float32(r.cellSize)
	clr := r.mapColors.Spawn
	if !allowed {
		clr = r.mapColors.Objective
	}
	x := float32(rect.Min.X)*size + float32(r.offsetX)
	y := float32(rect.Min.Y)*size + float32(r.offsetY)
	w := float32(rect.Max.X-rect.Min.X) * size
	h := float32(rect.Max.Y-rect.Min.Y) * size
	vector.StrokeRect(screen, x, y, w, h, 2, clr, false)
}

// DrawRange рисует радиус атаки вокруг центра.
func (r *GridRenderer) DrawRange(screen *ebiten.Image, center component.Position, radius float64) {
	if radius <= 0 {
		return
	}
	x, y := r.screen(center)
	vector.StrokeCircle(screen, x, y, float32(radius), 1, Fade(r.colors.Text, 0.4), true)
}
