// Package math2d provides the engine's 2D vector/transform/camera math.
package math2d

import "math"

// Vec2 is a 2D vector or point.
type Vec2 struct {
	X, Y float32
}

// Add returns a+b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

// Sub returns a-b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Scale returns a scaled by s.
func (a Vec2) Scale(s float32) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Mul returns the component-wise product of a and b.
func (a Vec2) Mul(b Vec2) Vec2 { return Vec2{a.X * b.X, a.Y * b.Y} }

// Dot returns the dot product of a and b.
func (a Vec2) Dot(b Vec2) float32 { return a.X*b.X + a.Y*b.Y }

// Length returns the Euclidean length of a.
func (a Vec2) Length() float32 {
	return float32(math.Sqrt(float64(a.X*a.X + a.Y*a.Y)))
}

// Normalized returns a unit vector in the direction of a, or the zero
// vector if a is zero-length.
func (a Vec2) Normalized() Vec2 {
	l := a.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// Lerp interpolates between a and b by t in [0,1].
func (a Vec2) Lerp(b Vec2, t float32) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// FromAngle returns a unit vector pointing at the given angle in radians.
func FromAngle(radians float32) Vec2 {
	s, c := math.Sincos(float64(radians))
	return Vec2{float32(c), float32(s)}
}

// Min returns the component-wise minimum of a and b.
func (a Vec2) Min(b Vec2) Vec2 {
	return Vec2{minf(a.X, b.X), minf(a.Y, b.Y)}
}

// Max returns the component-wise maximum of a and b.
func (a Vec2) Max(b Vec2) Vec2 {
	return Vec2{maxf(a.X, b.X), maxf(a.Y, b.Y)}
}

// Abs returns the component-wise absolute value of a.
func (a Vec2) Abs() Vec2 {
	return Vec2{absf(a.X), absf(a.Y)}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func absf(a float32) float32 {
	if a < 0 {
		return -a
	}
	return a
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
