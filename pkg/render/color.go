// pkg/render/color.go
package render

import (
	"image/color"

	"go-grid-defense/pkg/utils"
)

// MapColors holds the colors of the static map background.
type MapColors struct {
	Background  color.RGBA
	Free        color.RGBA
	Blocked     color.RGBA
	Restricted  color.RGBA
	Spawn       color.RGBA
	Objective   color.RGBA
	StrokeWidth float32
}

// EntityColors holds the colors of everything drawn over the map.
type EntityColors struct {
	TowerStroke color.RGBA
	GroundEnemy color.RGBA
	AirEnemy    color.RGBA
	Projectile  color.RGBA
	Orbiter     color.RGBA
	Beam        color.RGBA
	Chain       color.RGBA
	Pulse       color.RGBA
	Text        color.RGBA
	Gold        color.RGBA
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// LightenColor brightens each channel by delta, saturating at 255.
func LightenColor(c color.RGBA, delta int) color.RGBA {
	return color.RGBA{
		R: uint8(min(255, int(c.R)+delta)),
		G: uint8(min(255, int(c.G)+delta)),
		B: uint8(min(255, int(c.B)+delta)),
		A: c.A,
	}
}

// Fade scales the alpha channel by k in [0, 1]. Channels stay premultiplied.
func Fade(c color.RGBA, k float64) color.RGBA {
	k = utils.Clamp(k, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: uint8(float64(c.A) * k),
	}
}

// HealthColor goes from green at full health to red at zero.
func HealthColor(frac float64) color.RGBA {
	frac = utils.Clamp(frac, 0, 1)
	return color.RGBA{R: uint8(255 * (1 - frac)), G: uint8(200 * frac), B: 40, A: 255}
}
