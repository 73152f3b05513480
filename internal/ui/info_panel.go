// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"go-grid-defense/internal/app"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelHeight    = 130
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 18
	columnSpacing  = 200
	titleOffset    = 18
)

// Button представляет кликабельную кнопку в UI.
type Button struct {
	Rect image.Rectangle
	Text string
}

// InfoPanel displays information about a selected tower or enemy.
type InfoPanel struct {
	IsVisible     bool
	TargetEntity  types.EntityID
	fontFace      font.Face
	titleFontFace font.Face
	currentY      float64
	targetY       float64
	SellButton    Button
	refundRatio   float64
}

// NewInfoPanel creates a new information panel.
func NewInfoPanel(face, titleFace font.Face, refundRatio float64) *InfoPanel {
	return &InfoPanel{
		fontFace:      face,
		titleFontFace: titleFace,
		currentY:      config.ScreenHeight,
		targetY:       config.ScreenHeight,
		refundRatio:   refundRatio,
	}
}

func (p *InfoPanel) SetTarget(entityID types.EntityID) {
	p.TargetEntity = entityID
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Update анимирует панель. Возвращает true, если нажата кнопка продажи.
func (p *InfoPanel) Update() bool {
	if p.currentY != p.targetY {
		diff := p.targetY - p.currentY
		if math.Abs(diff) < animationSpeed {
			p.currentY = p.targetY
		} else if diff > 0 {
			p.currentY += animationSpeed
		} else {
			p.currentY -= animationSpeed
		}

		if p.currentY >= config.ScreenHeight {
			p.IsVisible = false
			p.TargetEntity = types.NoEntity
		}
	}

	if !p.IsVisible || p.SellButton.Rect.Empty() || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	x, y := ebiten.CursorPosition()
	return image.Pt(x, y).In(p.SellButton.Rect)
}

// Contains сообщает, лежит ли точка на видимой панели.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

func (p *InfoPanel) Draw(screen *ebiten.Image, snap app.Snapshot, catalog *defs.Catalog) {
	if !p.IsVisible && p.currentY >= config.ScreenHeight {
		return
	}
	p.SellButton.Rect = image.Rectangle{}

	panelRect := image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-config.PanelWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)

	bgColor := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), bgColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, borderColor, true)

	if p.TargetEntity == types.NoEntity {
		return
	}

	x, y := panelRect.Min.X+15, panelRect.Min.Y+15+titleOffset
	for _, t := range snap.Towers {
		if t.ID == p.TargetEntity {
			p.drawTowerInfo(screen, t, catalog, x, y)
			p.drawSellButton(screen, panelRect, t, catalog)
			return
		}
	}
	for _, e := range snap.Enemies {
		if e.ID == p.TargetEntity {
			p.drawEnemyInfo(screen, e, catalog, x, y)
			return
		}
	}
	// Цель исчезла из мира
	text.Draw(screen, "Gone", p.titleFontFace, x, y, config.TextLightColor)
}

func towerDef(catalog *defs.Catalog, key string) (*defs.TowerDefinition, bool) {
	race, id, ok := strings.Cut(key, "/")
	if !ok {
		return nil, false
	}
	return catalog.Tower(race, id)
}

func (p *InfoPanel) drawSellButton(screen *ebiten.Image, panelRect image.Rectangle, t app.TowerView, catalog *defs.Catalog) {
	def, ok := towerDef(catalog, t.Key)
	if !ok {
		return
	}
	btnWidth := 150
	btnHeight := 36
	p.SellButton.Rect = image.Rect(
		panelRect.Max.X-btnWidth-20,
		panelRect.Max.Y-btnHeight-20,
		panelRect.Max.X-20,
		panelRect.Max.Y-20,
	)
	p.SellButton.Text = fmt.Sprintf("Sell +%d", int(float64(def.Cost)*p.refundRatio))

	btnColor := color.RGBA{R: 180, G: 140, B: 20, A: 255} // Золотой цвет
	r := p.SellButton.Rect
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(btnWidth), float32(btnHeight), btnColor, true)

	textBounds := text.BoundString(p.fontFace, p.SellButton.Text)
	textX := r.Min.X + (btnWidth-textBounds.Dx())/2
	textY := r.Min.Y + (btnHeight-textBounds.Dy())/2 - textBounds.Min.Y
	text.Draw(screen, p.SellButton.Text, p.fontFace, textX, textY, color.White)
}

func (p *InfoPanel) drawTowerInfo(screen *ebiten.Image, t app.TowerView, catalog *defs.Catalog, startX, startY int) {
	def, ok := towerDef(catalog, t.Key)
	if !ok {
		text.Draw(screen, t.Key, p.titleFontFace, startX, startY, config.TextLightColor)
		return
	}
	text.Draw(screen, def.Name, p.titleFontFace, startX, startY, config.TextLightColor)

	y := startY + lineHeight
	col2X := startX + columnSpacing
	if def.Attacks() {
		text.Draw(screen, fmt.Sprintf("Damage: %.0f-%.0f", def.DamageMin, def.DamageMax), p.fontFace, startX, y, config.TextLightColor)
		text.Draw(screen, fmt.Sprintf("Interval: %.2fs", def.AttackInterval), p.fontFace, col2X, y, config.TextLightColor)
		y += lineHeight
		text.Draw(screen, fmt.Sprintf("Range: %.0f", def.Range), p.fontFace, startX, y, config.TextLightColor)
		text.Draw(screen, fmt.Sprintf("Damage Type: %s", def.DamageType), p.fontFace, col2X, y, config.TextLightColor)
		y += lineHeight
	}
	if len(def.Special) > 0 {
		tags := make([]string, 0, len(def.Special))
		for _, s := range def.Special {
			tags = append(tags, string(s.Tag()))
		}
		text.Draw(screen, "Special: "+strings.Join(tags, ", "), p.fontFace, startX, y, config.TextLightColor)
		y += lineHeight
	}
	if t.Stacks > 0 {
		text.Draw(screen, fmt.Sprintf("Stacks: %d", t.Stacks), p.fontFace, startX, y, config.GoldTextColor)
	}
}

func (p *InfoPanel) drawEnemyInfo(screen *ebiten.Image, e app.EnemyView, catalog *defs.Catalog, startX, startY int) {
	title := e.DefID
	armorType := ""
	if def, ok := catalog.Enemies[e.DefID]; ok {
		title = def.Name
		armorType = def.ArmorType
	}
	text.Draw(screen, title, p.titleFontFace, startX, startY, config.TextLightColor)

	y := startY + lineHeight
	col2X := startX + columnSpacing
	text.Draw(screen, fmt.Sprintf("Health: %.0f / %.0f", e.Health, e.MaxHealth), p.fontFace, startX, y, config.TextLightColor)
	text.Draw(screen, fmt.Sprintf("Speed: %.1f", e.Speed), p.fontFace, col2X, y, config.TextLightColor)
	y += lineHeight
	text.Draw(screen, fmt.Sprintf("Armor: %.1f %s", e.Armor, armorType), p.fontFace, startX, y, config.TextLightColor)
	if e.Wave >= 0 {
		text.Draw(screen, fmt.Sprintf("Wave: %d", e.Wave+1), p.fontFace, col2X, y, config.TextLightColor)
	}
	y += lineHeight
	if effects := append(append([]string(nil), e.Statuses...), e.DoTs...); len(effects) > 0 {
		text.Draw(screen, "Effects: "+strings.Join(effects, ", "), p.fontFace, startX, y, config.TextLightColor)
	}
}
