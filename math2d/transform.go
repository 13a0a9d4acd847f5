package math2d

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Transform2D is a 2D affine pose: position, rotation (radians), and
// non-uniform scale.
type Transform2D struct {
	Position Vec2
	Rotation float32
	Scale    Vec2
}

// Identity returns a Transform2D at the origin with unit scale.
func Identity() Transform2D {
	return Transform2D{Scale: Vec2{1, 1}}
}

// ToMatrix returns the 3x3 homogeneous matrix translate * rotate *
// scale(baseSize * Scale), matching the composition order used to
// place a sprite of logical size baseSize in world space.
func (t Transform2D) ToMatrix(baseSize Vec2) *mat.Dense {
	sx := baseSize.X * t.Scale.X
	sy := baseSize.Y * t.Scale.Y
	c := math.Cos(float64(t.Rotation))
	s := math.Sin(float64(t.Rotation))

	m := mat.NewDense(3, 3, []float64{
		c * sx, -s * sy, float64(t.Position.X),
		s * sx, c * sy, float64(t.Position.Y),
		0, 0, 1,
	})
	return m
}

// TransformPoint applies t's affine transform (scale-1 baseSize) to a
// local-space point.
func (t Transform2D) TransformPoint(p Vec2) Vec2 {
	m := t.ToMatrix(Vec2{1, 1})
	v := mat.NewVecDense(3, []float64{float64(p.X), float64(p.Y), 1})
	var out mat.VecDense
	out.MulVec(m, v)
	return Vec2{float32(out.AtVec(0)), float32(out.AtVec(1))}
}
