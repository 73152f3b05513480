package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVecBasics(t *testing.T) {
	v := Vec2{3, 4}
	assert.Equal(t, 5.0, v.Len())
	assert.InDelta(t, 1.0, v.Normalize().Len(), 1e-12)
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
	assert.Equal(t, Vec2{-4, 3}, v.Perp())
	assert.Equal(t, 25.0, Vec2{}.DistSq(v))
}

func TestSegmentDistSq(t *testing.T) {
	a, b := Vec2{0, 0}, Vec2{10, 0}
	assert.Equal(t, 9.0, SegmentDistSq(Vec2{5, 3}, a, b))
	assert.Equal(t, 4.0, SegmentDistSq(Vec2{-2, 0}, a, b), "clamped to the start point")
	assert.Equal(t, 1.0, SegmentDistSq(Vec2{1, 1}, a, a), "degenerate segment")
}

func TestAngles(t *testing.T) {
	assert.InDelta(t, 0.0, NormalizeAngle(2*math.Pi), 1e-12)
	assert.InDelta(t, -math.Pi/2, NormalizeAngle(3*math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi/2, NormalizeAngle(-3*math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi, EqualSpacing(1, 2), 1e-12)
	d := FromAngle(math.Pi / 2)
	assert.InDelta(t, 1.0, d.Y, 1e-12)
	assert.InDelta(t, 0.0, d.X, 1e-12)
}
