package command

import (
	"encoding/json"
	"fmt"

	"github.com/forge2d/forge2d/components"
	"github.com/forge2d/forge2d/internal/ecsworld"
	"github.com/forge2d/forge2d/internal/engerr"
	"github.com/forge2d/forge2d/metadata"
)

// CreateEntity spawns a fresh entity on first Execute and tolerates a
// second Execute (the in-history re-application pattern): it restores
// the captured id via World.RestoreEntity rather than spawning again,
// so the entity's identity survives truncation/redo cycles.
type CreateEntity struct {
	id      ecsworld.EntityID
	created bool
}

func (c *CreateEntity) Execute(w *ecsworld.World) error {
	if !c.created {
		c.id = w.Spawn()
		c.created = true
		return nil
	}
	w.RestoreEntity(c.id)
	return nil
}

func (c *CreateEntity) Undo(w *ecsworld.World) error {
	w.Despawn(c.id)
	return nil
}

func (c *CreateEntity) Description() string { return "Create Entity" }

// ID returns the entity id captured by Execute (valid after the first
// Execute call).
func (c *CreateEntity) ID() ecsworld.EntityID { return c.id }

// DeleteEntity snapshots every component the metadata registry knows
// about before despawning, and restores both the components and the
// original identity on undo via World.RestoreEntity — fixing the
// original implementation's identity-loss defect (SPEC_FULL.md §12,
// Open Question: option (b)).
type DeleteEntity struct {
	Entity   ecsworld.EntityID
	registry *metadata.Registry

	snapshot map[string]json.RawMessage
}

// NewDeleteEntity returns a DeleteEntity command using reg to snapshot
// and restore components.
func NewDeleteEntity(e ecsworld.EntityID, reg *metadata.Registry) *DeleteEntity {
	return &DeleteEntity{Entity: e, registry: reg}
}

func (c *DeleteEntity) Execute(w *ecsworld.World) error {
	if !w.IsAlive(c.Entity) {
		return fmt.Errorf("command: delete entity: %w", engerr.ErrEntityNotFound)
	}
	c.snapshot = c.registry.SnapshotEntity(w, c.Entity)
	w.Despawn(c.Entity)
	return nil
}

func (c *DeleteEntity) Undo(w *ecsworld.World) error {
	w.RestoreEntity(c.Entity)
	return c.registry.RestoreEntity(w, c.Entity, c.snapshot)
}

func (c *DeleteEntity) Description() string { return "Delete Entity" }

// SetTransform stores the entity's prior transform on first Execute
// and swaps between old/new on subsequent undo/redo.
type SetTransform struct {
	Entity ecsworld.EntityID
	New    components.Transform

	hasOld bool
	old    components.Transform
}

func (c *SetTransform) Execute(w *ecsworld.World) error {
	if !c.hasOld {
		if old, ok := ecsworld.Get[components.Transform](w, c.Entity); ok {
			c.old = old
		} else {
			c.old = components.DefaultTransform()
		}
		c.hasOld = true
	}
	ecsworld.Insert(w, c.Entity, c.New)
	return nil
}

func (c *SetTransform) Undo(w *ecsworld.World) error {
	ecsworld.Insert(w, c.Entity, c.old)
	return nil
}

func (c *SetTransform) Description() string { return "Set Transform" }

// AddComponent inserts a component of type T, capturing any prior
// value so Undo can restore it exactly (Go generics let this snapshot
// a real prior value by copy, unlike the original's clone-from-reference
// limitation).
type AddComponent[T any] struct {
	Entity ecsworld.EntityID
	Value  T

	hadOld bool
	old    T
}

func (c *AddComponent[T]) Execute(w *ecsworld.World) error {
	if old, ok := ecsworld.Get[T](w, c.Entity); ok {
		c.old = old
		c.hadOld = true
	}
	ecsworld.Insert(w, c.Entity, c.Value)
	return nil
}

func (c *AddComponent[T]) Undo(w *ecsworld.World) error {
	if c.hadOld {
		ecsworld.Insert(w, c.Entity, c.old)
	} else {
		ecsworld.Remove[T](w, c.Entity)
	}
	return nil
}

func (c *AddComponent[T]) Description() string { return "Add Component" }

// RemoveComponent removes a component of type T, capturing it so Undo
// can restore it.
type RemoveComponent[T any] struct {
	Entity ecsworld.EntityID

	had bool
	old T
}

func (c *RemoveComponent[T]) Execute(w *ecsworld.World) error {
	old, ok := ecsworld.Remove[T](w, c.Entity)
	c.old = old
	c.had = ok
	return nil
}

func (c *RemoveComponent[T]) Undo(w *ecsworld.World) error {
	if c.had {
		ecsworld.Insert(w, c.Entity, c.old)
	}
	return nil
}

func (c *RemoveComponent[T]) Description() string { return "Remove Component" }
