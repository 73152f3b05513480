package utils

import "math"

// Vec2 is a point or a direction in pixel space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2             { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2             { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2        { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Dot(o Vec2) float64          { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSq() float64              { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64                { return math.Sqrt(v.LenSq()) }
func (v Vec2) DistSq(o Vec2) float64       { return v.Sub(o).LenSq() }
func (v Vec2) Dist(o Vec2) float64         { return v.Sub(o).Len() }
func (v Vec2) Perp() Vec2                  { return Vec2{-v.Y, v.X} }
func (v Vec2) Angle() float64              { return math.Atan2(v.Y, v.X) }
func (v Vec2) Lerp(o Vec2, t float64) Vec2 { return v.Add(o.Sub(v).Scale(t)) }

// Normalize returns the unit vector, or the zero vector for zero input.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// FromAngle returns the unit vector pointing at angle (radians).
func FromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// SegmentDistSq returns the squared distance from p to the segment a-b.
func SegmentDistSq(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	l := ab.LenSq()
	if l == 0 {
		return p.DistSq(a)
	}
	t := p.Sub(a).Dot(ab) / l
	t = math.Max(0, math.Min(1, t))
	return p.DistSq(a.Add(ab.Scale(t)))
}
