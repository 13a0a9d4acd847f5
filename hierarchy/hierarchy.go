// Package hierarchy resolves entity parent/child transform chains,
// grounded on original_source/forge2d/src/hierarchy.rs. Transform.Parent
// zero means root; resolution walks iteratively, bounded by world.Len()
// hops, to guard against a malformed parent cycle.
package hierarchy

import (
	"github.com/forge2d/forge2d/components"
	"github.com/forge2d/forge2d/internal/ecsworld"
	"github.com/forge2d/forge2d/math2d"
)

// Parent returns e's parent entity, or 0 if e is a root or has no
// Transform.
func Parent(w *ecsworld.World, e ecsworld.EntityID) ecsworld.EntityID {
	t, ok := ecsworld.Get[components.Transform](w, e)
	if !ok {
		return 0
	}
	return t.Parent
}

// SetParent reparents e to parent (0 means root). If e has no
// Transform yet, one is created at the default position.
func SetParent(w *ecsworld.World, e, parent ecsworld.EntityID) {
	t := ecsworld.GetPtr[components.Transform](w, e)
	if t != nil {
		t.Parent = parent
		return
	}
	fresh := components.DefaultTransform()
	fresh.Parent = parent
	ecsworld.Insert(w, e, fresh)
}

// Children returns every entity whose Transform.Parent is e.
func Children(w *ecsworld.World, e ecsworld.EntityID) []ecsworld.EntityID {
	var out []ecsworld.EntityID
	for _, pair := range ecsworld.Query[components.Transform](w) {
		if pair.Value.Parent == e {
			out = append(out, pair.Entity)
		}
	}
	return out
}

// Root walks up the parent chain and returns the top-most ancestor,
// bounded by w.Len() hops.
func Root(w *ecsworld.World, e ecsworld.EntityID) ecsworld.EntityID {
	current := e
	for i := 0; i < w.Len(); i++ {
		parent := Parent(w, current)
		if parent == 0 {
			return current
		}
		current = parent
	}
	return current
}

// WorldTransform composes e's local Transform with every ancestor's,
// in the order translate outward from e to root, bounded by w.Len()
// hops against a malformed cycle. A chain that exceeds the bound yields
// the identity transform.
func WorldTransform(w *ecsworld.World, e ecsworld.EntityID) math2d.Transform2D {
	t, ok := ecsworld.Get[components.Transform](w, e)
	if !ok {
		return math2d.Identity()
	}

	result := math2d.Transform2D{
		Position: math2d.Vec2{X: t.Position.X, Y: t.Position.Y},
		Rotation: t.Rotation,
		Scale:    math2d.Vec2{X: t.Scale.X, Y: t.Scale.Y},
	}

	current := t.Parent
	for i := 0; current != 0; i++ {
		if i >= w.Len() {
			return math2d.Identity()
		}
		pt, ok := ecsworld.Get[components.Transform](w, current)
		if !ok {
			break
		}

		// Compose result (child-local so far) on top of pt (next ancestor
		// out): rotate/scale the accumulated offset into the ancestor's
		// frame, then translate by the ancestor's own position.
		cos, sin := cosf(pt.Rotation), sinf(pt.Rotation)
		scaledX := result.Position.X * pt.Scale.X
		scaledY := result.Position.Y * pt.Scale.Y
		rotatedX := scaledX*cos - scaledY*sin
		rotatedY := scaledX*sin + scaledY*cos

		result.Position = math2d.Vec2{
			X: pt.Position.X + rotatedX,
			Y: pt.Position.Y + rotatedY,
		}
		result.Rotation += pt.Rotation
		result.Scale = math2d.Vec2{X: result.Scale.X * pt.Scale.X, Y: result.Scale.Y * pt.Scale.Y}

		current = pt.Parent
	}

	return result
}
