// internal/state/game_state.go
package state

import (
	"fmt"
	"image/color"
	"math"
	"time"

	game "go-grid-defense/internal/app"
	"go-grid-defense/internal/assets"
	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/system"
	"go-grid-defense/internal/types"
	"go-grid-defense/internal/ui"
	"go-grid-defense/pkg/grid"
	"go-grid-defense/pkg/render"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	indicatorRadius = 12
	buttonSize      = 10
	clickCooldown   = 200 * time.Millisecond
	messageLifetime = 2 * time.Second
)

var (
	buildPhaseColor = color.RGBA{0, 200, 0, 255}
	wavePhaseColor  = color.RGBA{200, 0, 0, 255}
	victoryColor    = color.RGBA{255, 215, 0, 255}
	gameOverColor   = color.RGBA{80, 80, 80, 255}
	speedColors     = []color.RGBA{{90, 160, 90, 255}, {200, 160, 40, 255}, {220, 80, 40, 255}}
	hudColor        = color.RGBA{25, 35, 45, 255}
)

// hover — закэшированная проверка постройки под курсором.
type hover struct {
	cell    grid.Cell
	race    string
	tower   string
	tick    uint64
	rect    grid.Rect
	allowed bool
	valid   bool
}

// GameState — состояние игры
type GameState struct {
	sm        *StateMachine
	session   *Session
	logger    *log.Logger
	renderer  *render.GridRenderer
	indicator *ui.StateIndicator
	speed     *ui.SpeedButton
	pause     *ui.PauseButton
	waveInd   *ui.WaveIndicator
	livesInd  *ui.PlayerHealthIndicator
	infoPanel *ui.InfoPanel
	book      *ui.TowerBook
	face      font.Face
	titleFace font.Face

	hover       hover
	message     string
	messageTime time.Time
}

// NewGameState builds the playing screen around a fresh world.
func NewGameState(sm *StateMachine, g *game.Game, fonts *assets.FontManager, logger *log.Logger) *GameState {
	face := fonts.MustFace(13, false)
	titleFace := fonts.MustFace(16, true)

	cellSize := g.Config.GridSize
	mapWidth := float64(g.Grid.Width()) * cellSize
	offsetX := math.Max(0, (float64(config.ScreenWidth-config.PanelWidth)-mapWidth)/2)
	offsetY := float64(config.HUDHeight)

	mapColors := render.MapColors{
		Background:  config.BackgroundColor,
		Free:        config.FreeColor,
		Blocked:     config.BlockedColor,
		Restricted:  config.RestrictedColor,
		Spawn:       config.SpawnColor,
		Objective:   config.ObjectiveColor,
		StrokeWidth: 1,
	}
	colors := render.EntityColors{
		TowerStroke: config.TowerStrokeColor,
		GroundEnemy: config.GroundEnemyColor,
		AirEnemy:    config.AirEnemyColor,
		Projectile:  config.ProjectileColor,
		Orbiter:     config.OrbiterColor,
		Beam:        config.BeamColor,
		Chain:       config.ChainColor,
		Pulse:       config.PulseColor,
		Text:        config.TextLightColor,
		Gold:        config.GoldTextColor,
	}
	renderer := render.NewGridRenderer(g.Grid.Width(), g.Grid.Height(), cellSize, offsetX, offsetY,
		g.Grid.Spawn, g.Grid.Objective, face, mapColors, colors)

	hudMid := float32(config.HUDHeight) / 2
	right := float32(config.ScreenWidth)
	return &GameState{
		sm:        sm,
		session:   NewSession(g),
		logger:    logger,
		renderer:  renderer,
		indicator: ui.NewStateIndicator(right-30, hudMid, indicatorRadius),
		speed:     ui.NewSpeedButton(right-70, hudMid, buttonSize, speedColors, []int{1, 2, 4}),
		pause:     ui.NewPauseButton(right-105, hudMid, buttonSize, config.TextLightColor, buildPhaseColor),
		waveInd:   ui.NewWaveIndicator(600, hudMid+6, config.TextLightColor),
		livesInd:  ui.NewPlayerHealthIndicator(260, 6),
		infoPanel: ui.NewInfoPanel(face, titleFace, g.Config.Economy.SellRefundRatio),
		book:      ui.NewTowerBook(config.ScreenWidth-config.PanelWidth, config.HUDHeight, config.PanelWidth, g.Catalog),
		face:      face,
		titleFace: titleFace,
	}
}

// Game exposes the hosted world.
func (g *GameState) Game() *game.Game { return g.session.Game }

func (g *GameState) Enter() {
	g.session.Paused = false
	g.pause.SetPaused(false)
}

func (g *GameState) Update(deltaTime float64) {
	world := g.session.Game
	if g.infoPanel.Update() {
		g.sellSelected()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.openPause()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.Queue(game.StartWavesCmd())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.book.NextRace(world.Catalog)
	}
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9} {
		if inpututil.IsKeyJustPressed(key) {
			g.book.SelectIndex(world.Catalog, i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.infoPanel.Hide()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if g.isClickOnUI(x, y) {
			g.handleUIClick(x, y)
		} else {
			g.handleGameClick(x, y, ebiten.MouseButtonLeft)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		g.handleGameClick(x, y, ebiten.MouseButtonRight)
	}

	g.session.Speed = g.speed.Multiplier()
	for _, snap := range g.session.Advance(deltaTime) {
		g.handleEvents(snap.Events)
	}
}

// handleEvents логирует ключевые события и показывает отказы на экране.
func (g *GameState) handleEvents(events []event.Event) {
	for _, e := range events {
		switch e.Type {
		case event.CommandRejected:
			if d, ok := e.Data.(event.RejectedData); ok {
				g.flash(fmt.Sprintf("%s: %s", d.Command, d.Reason))
			}
		case event.WaveStarted:
			if d, ok := e.Data.(event.WaveData); ok {
				g.logger.Info("wave started", "wave", d.Index+1)
			}
		case event.WaveCompleted:
			if d, ok := e.Data.(event.WaveData); ok {
				g.logger.Info("wave completed", "wave", d.Index+1, "bonus", d.Bonus)
			}
		case event.AllWavesCompleted:
			g.flash("All waves cleared!")
		case event.GameOver:
			g.flash("Game over")
		}
	}
}

func (g *GameState) flash(msg string) {
	g.message = msg
	g.messageTime = time.Now()
}

// isClickOnUI проверяет, был ли клик по какому-либо элементу UI
func (g *GameState) isClickOnUI(x, y int) bool {
	return y < config.HUDHeight ||
		g.book.Contains(x, y) ||
		g.infoPanel.Contains(x, y)
}

// handleUIClick обрабатывает клики, которые точно попали в UI
func (g *GameState) handleUIClick(x, y int) {
	switch {
	case g.speed.Contains(x, y):
		g.speed.ToggleState()
	case g.pause.Contains(x, y):
		if time.Since(g.pause.LastToggleTime) >= clickCooldown {
			g.openPause()
		}
	case g.indicator.Contains(x, y):
		if time.Since(g.indicator.LastClickTime) >= clickCooldown {
			g.indicator.HandleClick()
			g.session.Queue(game.StartWavesCmd())
		}
	case g.book.Contains(x, y):
		g.book.HandleClick(g.session.Game.Catalog, x, y)
	}
	// Клик по инфо-панели обрабатывается внутри самой панели
}

func (g *GameState) openPause() {
	g.pause.TogglePause()
	g.session.Paused = true
	g.sm.Push(NewPauseState(g.sm, g))
}

func (g *GameState) sellSelected() {
	snap := g.session.Snapshot()
	for _, t := range snap.Towers {
		if t.ID == g.infoPanel.TargetEntity {
			g.session.Queue(game.SellTowerCmd(t.Footprint.Min))
			g.infoPanel.Hide()
			return
		}
	}
}

// findEntityAt ищет башню под клеткой или противника рядом с точкой.
func (g *GameState) findEntityAt(x, y int, cell grid.Cell) (types.EntityID, bool) {
	snap := g.session.Snapshot()
	for _, t := range snap.Towers {
		if t.Footprint.Contains(cell) {
			return t.ID, true
		}
	}
	radius := g.session.Game.Config.GridSize * 0.5
	best, bestDist := types.NoEntity, math.MaxFloat64
	for _, e := range snap.Enemies {
		ex, ey := g.renderer.ScreenPos(e.Pos)
		d := math.Hypot(ex-float64(x), ey-float64(y))
		if d < radius && d < bestDist {
			best, bestDist = e.ID, d
		}
	}
	return best, best != types.NoEntity
}

func (g *GameState) handleGameClick(x, y int, button ebiten.MouseButton) {
	cell, ok := g.renderer.CellAt(x, y)
	if !ok {
		return // Клик вне карты
	}

	switch button {
	case ebiten.MouseButtonLeft:
		if id, found := g.findEntityAt(x, y, cell); found {
			g.infoPanel.SetTarget(id)
			return
		}
		g.infoPanel.Hide()
		if g.book.Selected != "" {
			g.session.Queue(game.PlaceTowerCmd(cell, g.book.Race(), g.book.Selected))
		}
	case ebiten.MouseButtonRight:
		g.session.Queue(game.SellTowerCmd(cell))
	}
}

// updateHover пересчитывает подсветку, только когда что-то поменялось.
func (g *GameState) updateHover() {
	x, y := ebiten.CursorPosition()
	cell, ok := g.renderer.CellAt(x, y)
	if !ok || g.isClickOnUI(x, y) || g.book.Selected == "" {
		g.hover.valid = false
		return
	}
	world := g.session.Game
	tick := world.TickCount()
	h := g.hover
	if h.valid && h.cell == cell && h.race == g.book.Race() && h.tower == g.book.Selected && h.tick == tick {
		return
	}
	def, ok := world.Catalog.Tower(g.book.Race(), g.book.Selected)
	if !ok {
		g.hover.valid = false
		return
	}
	g.hover = hover{
		cell:    cell,
		race:    g.book.Race(),
		tower:   g.book.Selected,
		tick:    tick,
		rect:    game.Footprint(cell, def.GridWidth, def.GridHeight),
		allowed: world.CanPlace(cell, g.book.Race(), g.book.Selected) == nil,
		valid:   true,
	}
}

func (g *GameState) phaseColor(phase system.MatchPhase) color.Color {
	switch phase {
	case system.PhaseWave:
		return wavePhaseColor
	case system.PhaseVictory:
		return victoryColor
	case system.PhaseGameOver:
		return gameOverColor
	}
	return buildPhaseColor
}

func (g *GameState) Draw(screen *ebiten.Image) {
	world := g.session.Game
	snap := g.session.Snapshot()

	screen.Fill(config.BackgroundColor)
	g.renderer.Draw(screen, snap)

	g.updateHover()
	if g.hover.valid {
		g.renderer.DrawHover(screen, g.hover.rect, g.hover.allowed)
		if def, ok := world.Catalog.Tower(g.hover.race, g.hover.tower); ok && def.Range > 0 {
			cx, cy := grid.RectCenter(g.hover.rect, world.Config.GridSize)
			g.renderer.DrawRange(screen, component.Position{X: cx, Y: cy}, world.Config.UnitsToPixels(def.Range))
		}
	}

	g.drawHUD(screen, snap)
	g.book.Draw(screen, g.face, world.Catalog, snap.Gold)
	g.infoPanel.Draw(screen, snap, world.Catalog)

	if g.message != "" && time.Since(g.messageTime) < messageLifetime {
		b := text.BoundString(g.titleFace, g.message)
		x := (config.ScreenWidth - config.PanelWidth - b.Dx()) / 2
		text.Draw(screen, g.message, g.titleFace, x, config.HUDHeight+30, config.GoldTextColor)
	}
}

func (g *GameState) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.HUDHeight, hudColor, false)

	gold := fmt.Sprintf("Gold: %d", snap.Gold)
	text.Draw(screen, gold, g.titleFace, 12, 26, config.GoldTextColor)
	text.Draw(screen, fmt.Sprintf("T %.1fs", snap.Time), g.face, 130, 26, config.TextLightColor)

	g.livesInd.Draw(screen, g.face, snap.Lives, g.session.Game.Config.Economy.StartingLives)
	g.waveInd.Draw(screen, g.titleFace, snap.Wave.Index+1, snap.Wave.Alive, snap.Wave.Total)

	g.indicator.Draw(screen, g.phaseColor(snap.Phase))
	g.speed.Draw(screen)
	g.pause.Draw(screen)
}

func (g *GameState) Exit() {}
