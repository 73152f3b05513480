package config

import (
	"image/color"

	"go-grid-defense/pkg/grid"
)

// Config holds every tunable of the simulation.
type Config struct {
	GridSize            float64 `yaml:"grid_size"`          // pixels per cell
	RangeUnitDivisor    float64 `yaml:"range_unit_divisor"` // range units per GridSize pixels
	ArmorConstant       float64 `yaml:"armor_constant"`
	ArmorFloor          float64 `yaml:"armor_floor"`
	MarkMultiplier      float64 `yaml:"mark_multiplier"`
	WanderRadius        float64 `yaml:"wander_radius"`
	WanderChange        float64 `yaml:"wander_change"`
	EnemyRadius         float64 `yaml:"enemy_radius"`
	ProjectileHitRadius float64 `yaml:"projectile_hit_radius"`
	SlowAuraRefresh     float64 `yaml:"slow_aura_refresh"` // lifetime of a re-applied aura slow, seconds

	Map     MapConfig     `yaml:"map"`
	Economy EconomyConfig `yaml:"economy"`

	Seed         int64   `yaml:"seed"`
	TickRate     int     `yaml:"tick_rate"`
	MaxDeltaTime float64 `yaml:"max_delta_time"`
	LogLevel     string  `yaml:"log_level"`
}

// MapConfig describes the generated map.
type MapConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	BorderRows  int `yaml:"border_rows"`
	BorderCols  int `yaml:"border_cols"`
	AnchorWidth int `yaml:"anchor_width"`
}

// EconomyConfig describes the starting purse.
type EconomyConfig struct {
	StartingGold    int     `yaml:"starting_gold"`
	StartingLives   int     `yaml:"starting_lives"`
	SellRefundRatio float64 `yaml:"sell_refund_ratio"`
}

// Default returns the built-in tunables.
func Default() Config {
	return Config{
		GridSize:            32,
		RangeUnitDivisor:    200,
		ArmorConstant:       0.06,
		ArmorFloor:          -20,
		MarkMultiplier:      1.5,
		WanderRadius:        10,
		WanderChange:        0.5,
		EnemyRadius:         10,
		ProjectileHitRadius: 8,
		SlowAuraRefresh:     0.2,
		Map: MapConfig{
			Width:       24,
			Height:      20,
			BorderRows:  2,
			BorderCols:  1,
			AnchorWidth: 3,
		},
		Economy: EconomyConfig{
			StartingGold:    100,
			StartingLives:   20,
			SellRefundRatio: 0.5,
		},
		Seed:         1,
		TickRate:     60,
		MaxDeltaTime: 0.06,
		LogLevel:     "info",
	}
}

// UnitsToPixels converts catalog range units into pixels.
func (c Config) UnitsToPixels(units float64) float64 {
	if c.RangeUnitDivisor == 0 {
		return units
	}
	return units * c.GridSize / c.RangeUnitDivisor
}

// Layout returns the grid layout described by the map section.
func (c Config) Layout() grid.Layout {
	return grid.Layout{
		Width:       c.Map.Width,
		Height:      c.Map.Height,
		BorderRows:  c.Map.BorderRows,
		BorderCols:  c.Map.BorderCols,
		AnchorWidth: c.Map.AnchorWidth,
	}
}

// FixedDelta returns the simulation step for the configured tick rate.
func (c Config) FixedDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// Константы окна просмотра (хост на ebiten).
const (
	ScreenWidth     = 1100
	ScreenHeight    = 720
	HUDHeight       = 40
	PanelWidth      = 300
	TowerStrokeSize = 2.0
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	FreeColor        = color.RGBA{70, 100, 120, 220}
	BlockedColor     = color.RGBA{150, 70, 70, 220}
	RestrictedColor  = color.RGBA{40, 40, 50, 255}
	SpawnColor       = color.RGBA{0, 255, 0, 255}
	ObjectiveColor   = color.RGBA{255, 0, 0, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	GroundEnemyColor = color.RGBA{230, 150, 60, 255}
	AirEnemyColor    = color.RGBA{140, 200, 255, 255}
	TowerStrokeColor = color.RGBA{255, 255, 255, 255}
	ProjectileColor  = color.RGBA{255, 230, 0, 255}
	OrbiterColor     = color.RGBA{180, 50, 230, 255}
	BeamColor        = color.RGBA{255, 80, 80, 200}
	ChainColor       = color.RGBA{120, 200, 255, 255}
	PulseColor       = color.RGBA{255, 255, 255, 90}
	GoldTextColor    = color.RGBA{255, 215, 0, 255}
)
