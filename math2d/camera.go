package math2d

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Shake describes a decaying screen-shake effect.
type Shake struct {
	Intensity float32
	Timer     float32
	Seed      int64
}

// Bounds clamps the camera's position to a world-space rectangle.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float32
}

// Camera2D is the engine's 2D view: position (view center), zoom,
// rotation, an additive screen-space offset, a decaying shake applied
// to the view center, a smoothed
// target-zoom transition, and an optional world-space position clamp.
// Grounded on the teacher's camera idiom (position/zoom/viewport) with
// spec-mandated rotation, shake, and zoom smoothing added and the
// teacher's toroidal wraparound dropped.
type Camera2D struct {
	Position   Vec2
	Zoom       float32
	Rotation   float32
	Offset     Vec2
	TargetZoom float32
	ZoomSpeed  float32
	Shake      Shake
	Bounds     *Bounds

	rng *rand.Rand
}

// NewCamera2D returns a camera centered at the origin with zoom 1.
func NewCamera2D() *Camera2D {
	return &Camera2D{
		Zoom:       1,
		TargetZoom: 1,
		ZoomSpeed:  4,
	}
}

// StartShake begins a shake effect of the given intensity and duration.
func (c *Camera2D) StartShake(intensity, duration float32, seed int64) {
	c.Shake = Shake{Intensity: intensity, Timer: duration, Seed: seed}
	c.rng = rand.New(rand.NewSource(seed))
}

// Update decays shake, advances zoom toward TargetZoom, and clamps
// Position into Bounds if set.
func (c *Camera2D) Update(dt float32) {
	if c.Shake.Timer > 0 {
		c.Shake.Timer -= dt
		if c.Shake.Timer < 0 {
			c.Shake.Timer = 0
		}
	}

	if c.Zoom != c.TargetZoom {
		step := c.ZoomSpeed * dt
		if c.Zoom < c.TargetZoom {
			c.Zoom = minf(c.Zoom+step, c.TargetZoom)
		} else {
			c.Zoom = maxf(c.Zoom-step, c.TargetZoom)
		}
	}

	if c.Bounds != nil {
		c.Position.X = clampf(c.Position.X, c.Bounds.MinX, c.Bounds.MaxX)
		c.Position.Y = clampf(c.Position.Y, c.Bounds.MinY, c.Bounds.MaxY)
	}
}

// shakeOffset returns the current frame's shake displacement.
func (c *Camera2D) shakeOffset() Vec2 {
	if c.Shake.Timer <= 0 || c.rng == nil {
		return Vec2{}
	}
	mag := c.Shake.Intensity * (c.Shake.Timer)
	return Vec2{
		X: (c.rng.Float32()*2 - 1) * mag,
		Y: (c.rng.Float32()*2 - 1) * mag,
	}
}

// effectivePosition returns Position plus the current shake offset.
func (c *Camera2D) effectivePosition() Vec2 {
	return c.Position.Add(c.shakeOffset())
}

// EffectivePosition returns Position plus the current shake offset,
// for callers (e.g. package camera) outside math2d that need the
// actually-rendered camera center.
func (c *Camera2D) EffectivePosition() Vec2 {
	return c.effectivePosition()
}

// ViewProjection returns the camera's 3x3 view matrix for a viewport of
// size (w,h): translate(screen center + Offset) * scale(Zoom) *
// rotate(Rotation) * translate(-effective position). It maps world
// points to screen pixels; no orthographic (clip-space) projection is
// applied.
func (c *Camera2D) ViewProjection(w, h float32) *mat.Dense {
	pos := c.effectivePosition()

	translateToOrigin := mat.NewDense(3, 3, []float64{
		1, 0, float64(-pos.X),
		0, 1, float64(-pos.Y),
		0, 0, 1,
	})

	cosT := math.Cos(float64(c.Rotation))
	sinT := math.Sin(float64(c.Rotation))
	rotate := mat.NewDense(3, 3, []float64{
		cosT, -sinT, 0,
		sinT, cosT, 0,
		0, 0, 1,
	})

	zoom := float64(c.Zoom)
	scale := mat.NewDense(3, 3, []float64{
		zoom, 0, 0,
		0, zoom, 0,
		0, 0, 1,
	})

	cx := w/2 + c.Offset.X
	cy := h/2 + c.Offset.Y
	translateToScreen := mat.NewDense(3, 3, []float64{
		1, 0, float64(cx),
		0, 1, float64(cy),
		0, 0, 1,
	})

	var m mat.Dense
	m.Mul(scale, rotate)
	var m2 mat.Dense
	m2.Mul(&m, translateToOrigin)
	var m3 mat.Dense
	m3.Mul(translateToScreen, &m2)
	return &m3
}

// WorldToScreen projects a world-space point into screen space for a
// viewport of size (w,h).
func (c *Camera2D) WorldToScreen(p Vec2, w, h float32) Vec2 {
	vp := c.ViewProjection(w, h)
	v := mat.NewVecDense(3, []float64{float64(p.X), float64(p.Y), 1})
	var out mat.VecDense
	out.MulVec(vp, v)
	return Vec2{float32(out.AtVec(0)), float32(out.AtVec(1))}
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera2D) ScreenToWorld(p Vec2, w, h float32) Vec2 {
	vp := c.ViewProjection(w, h)
	var inv mat.Dense
	if err := inv.Inverse(vp); err != nil {
		return Vec2{}
	}
	v := mat.NewVecDense(3, []float64{float64(p.X), float64(p.Y), 1})
	var out mat.VecDense
	out.MulVec(&inv, v)
	return Vec2{float32(out.AtVec(0)), float32(out.AtVec(1))}
}
