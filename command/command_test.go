package command

import (
	"testing"

	"github.com/forge2d/forge2d/components"
	"github.com/forge2d/forge2d/internal/ecsworld"
)

func TestScenarioS2(t *testing.T) {
	w := ecsworld.New()
	h := NewHistory(3)

	createA := &CreateEntity{}
	if err := h.Execute(w, createA); err != nil {
		t.Fatalf("create A: %v", err)
	}
	a := createA.ID()

	createB := &CreateEntity{}
	if err := h.Execute(w, createB); err != nil {
		t.Fatalf("create B: %v", err)
	}

	setA := &SetTransform{Entity: a, New: components.Transform{Position: components.Vec2{X: 10}, Scale: components.Vec2{X: 1, Y: 1}}}
	if err := h.Execute(w, setA); err != nil {
		t.Fatalf("set transform: %v", err)
	}

	tr, _ := ecsworld.Get[components.Transform](w, a)
	if tr.Position.X != 10 {
		t.Fatalf("A.X = %v, want 10", tr.Position.X)
	}

	if err := h.Undo(w); err != nil {
		t.Fatalf("undo 1: %v", err)
	}
	if err := h.Undo(w); err != nil {
		t.Fatalf("undo 2: %v", err)
	}

	tr, _ = ecsworld.Get[components.Transform](w, a)
	if tr.Position.X != 0 {
		t.Fatalf("A.X after 2 undos = %v, want 0", tr.Position.X)
	}
	if w.Len() != 1 {
		t.Fatalf("len after 2 undos = %d, want 1 (only A alive)", w.Len())
	}

	// The first redo re-creates B; the second re-applies SetTransform on A.
	if err := h.Redo(w); err != nil {
		t.Fatalf("redo 1: %v", err)
	}
	if err := h.Redo(w); err != nil {
		t.Fatalf("redo 2: %v", err)
	}
	tr, _ = ecsworld.Get[components.Transform](w, a)
	if tr.Position.X != 10 {
		t.Fatalf("A.X after redo = %v, want 10", tr.Position.X)
	}

	createC := &CreateEntity{}
	if err := h.Execute(w, createC); err != nil {
		t.Fatalf("create C: %v", err)
	}
	if h.Len() != 3 {
		t.Fatalf("history len = %d, want 3", h.Len())
	}
	if h.Cursor() != 3 {
		t.Fatalf("cursor = %d, want 3", h.Cursor())
	}
}

func TestUndoRedoBounds(t *testing.T) {
	w := ecsworld.New()
	h := NewHistory(2)

	if err := h.Undo(w); err == nil {
		t.Fatalf("expected NothingToUndo on empty history")
	}
	if err := h.Redo(w); err == nil {
		t.Fatalf("expected NothingToRedo on empty history")
	}
}

func TestDeleteEntityPreservesIdentity(t *testing.T) {
	w := ecsworld.New()
	reg := newTestRegistry()
	h := NewHistory(10)

	create := &CreateEntity{}
	h.Execute(w, create)
	e := create.ID()
	ecsworld.Insert(w, e, components.Transform{Position: components.Vec2{X: 7, Y: 8}, Scale: components.Vec2{X: 1, Y: 1}})

	del := NewDeleteEntity(e, reg)
	if err := h.Execute(w, del); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if w.IsAlive(e) {
		t.Fatalf("entity should be dead after delete")
	}

	if err := h.Undo(w); err != nil {
		t.Fatalf("undo delete: %v", err)
	}
	if !w.IsAlive(e) {
		t.Fatalf("entity should be alive after undo, with the SAME id")
	}
	tr, ok := ecsworld.Get[components.Transform](w, e)
	if !ok || tr.Position.X != 7 {
		t.Fatalf("transform not restored: %v %v", tr, ok)
	}
}
