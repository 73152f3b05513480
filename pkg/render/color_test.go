package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorHelpers(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}

	assert.Equal(t, color.RGBA{100, 50, 25, 255}, DarkenColor(c))
	assert.Equal(t, color.RGBA{255, 140, 90, 255}, LightenColor(c, 40))
	assert.Equal(t, color.RGBA{100, 50, 25, 127}, Fade(c, 0.5))
	assert.Equal(t, color.RGBA{}, Fade(c, -1))
	assert.Equal(t, c, Fade(c, 3))
}

func TestHealthColor(t *testing.T) {
	assert.Equal(t, color.RGBA{0, 200, 40, 255}, HealthColor(1))
	assert.Equal(t, color.RGBA{255, 0, 40, 255}, HealthColor(0))
	assert.Equal(t, HealthColor(0), HealthColor(-2))
}
