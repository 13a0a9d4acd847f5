// Package camera adapts a math2d.Camera2D into raylib's own camera
// type and provides screen-space visibility culling, grounded on
// pthm-soup/camera/camera.go's WorldToScreen/IsVisible shape (the
// toroidal-world wraparound it implements has no SPEC_FULL.md
// equivalent — this engine's world is bounded, not wrapping — so it is
// dropped in favor of math2d.Camera2D.Bounds clamping).
package camera

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/forge2d/forge2d/math2d"
)

// ToRaylib converts c into an rl.Camera2D for use with
// rl.BeginMode2D/EndMode2D, applying c's shake offset via
// math2d.Camera2D's own effective-position resolution.
func ToRaylib(c *math2d.Camera2D, viewportW, viewportH float32) rl.Camera2D {
	pos := c.EffectivePosition()
	return rl.Camera2D{
		Offset:   rl.Vector2{X: viewportW/2 + c.Offset.X, Y: viewportH/2 + c.Offset.Y},
		Target:   rl.Vector2{X: pos.X, Y: pos.Y},
		Rotation: c.Rotation * radToDeg,
		Zoom:     c.Zoom,
	}
}

const radToDeg = 180.0 / 3.14159265

// IsVisible reports whether a circle at (x,y) with the given radius
// could intersect the viewport, a conservative AABB check used to cull
// sprite/particle draws before they're queued into a Frame.
func IsVisible(c *math2d.Camera2D, x, y, radius, viewportW, viewportH float32) bool {
	pos := c.EffectivePosition()
	halfW := viewportW/(2*c.Zoom) + radius
	halfH := viewportH/(2*c.Zoom) + radius

	dx := x - pos.X
	dy := y - pos.Y
	return absf(dx) <= halfW && absf(dy) <= halfH
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
