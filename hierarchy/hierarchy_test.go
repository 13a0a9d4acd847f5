package hierarchy

import (
	"testing"

	"github.com/forge2d/forge2d/components"
	"github.com/forge2d/forge2d/internal/ecsworld"
)

func TestWorldTransformChain(t *testing.T) {
	w := ecsworld.New()

	parent := w.Spawn()
	ecsworld.Insert(w, parent, components.Transform{
		Position: components.Vec2{X: 10, Y: 0},
		Scale:    components.Vec2{X: 1, Y: 1},
	})

	child := w.Spawn()
	ecsworld.Insert(w, child, components.Transform{
		Position: components.Vec2{X: 5, Y: 0},
		Scale:    components.Vec2{X: 1, Y: 1},
		Parent:   parent,
	})

	wt := WorldTransform(w, child)
	if wt.Position.X != 15 || wt.Position.Y != 0 {
		t.Fatalf("world position = %+v, want (15,0)", wt.Position)
	}
}

func TestWorldTransformNoParentIsLocal(t *testing.T) {
	w := ecsworld.New()
	e := w.Spawn()
	ecsworld.Insert(w, e, components.Transform{
		Position: components.Vec2{X: 3, Y: 4},
		Scale:    components.Vec2{X: 1, Y: 1},
	})

	wt := WorldTransform(w, e)
	if wt.Position.X != 3 || wt.Position.Y != 4 {
		t.Fatalf("world position = %+v, want (3,4)", wt.Position)
	}
}

func TestChildrenAndRoot(t *testing.T) {
	w := ecsworld.New()
	root := w.Spawn()
	ecsworld.Insert(w, root, components.DefaultTransform())

	mid := w.Spawn()
	SetParent(w, mid, root)

	leaf := w.Spawn()
	SetParent(w, leaf, mid)

	if got := Root(w, leaf); got != root {
		t.Fatalf("Root = %v, want %v", got, root)
	}

	kids := Children(w, root)
	if len(kids) != 1 || kids[0] != mid {
		t.Fatalf("Children(root) = %v, want [%v]", kids, mid)
	}
}

func TestWorldTransformBoundsOnCycle(t *testing.T) {
	w := ecsworld.New()
	a := w.Spawn()
	b := w.Spawn()
	ecsworld.Insert(w, a, components.Transform{Parent: b, Scale: components.Vec2{X: 1, Y: 1}})
	ecsworld.Insert(w, b, components.Transform{Parent: a, Scale: components.Vec2{X: 1, Y: 1}})

	done := make(chan struct{})
	go func() {
		WorldTransform(w, a)
		close(done)
	}()
	<-done
}
