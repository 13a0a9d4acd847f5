// Package metadata implements the component field-reflection registry
// used by editor tooling and by command snapshots: a mapping from a
// component type-name string to a capability record exposing its
// fields, a getter, and a setter.
//
// Grounded on pthm-soup/components/metadata.go's FieldDescriptor/
// Get*Value idiom and original_source/forge2d/src/component_metadata.rs's
// ComponentMetadata trait.
package metadata

import (
	"encoding/json"
	"fmt"

	"github.com/forge2d/forge2d/internal/ecsworld"
	"github.com/forge2d/forge2d/internal/engerr"
)

// FieldDescriptor describes one component field for UI/editor display.
type FieldDescriptor struct {
	ID           string
	Label        string
	Format       string
	Min          float32
	Max          float32
	IsCentered   bool
	IsBar        bool
	ShowWhenZero bool
	Group        string
}

// TypeRecord is the capability record registered for one component type.
type TypeRecord struct {
	Name   string
	Fields []FieldDescriptor

	snapshot func(w *ecsworld.World, e ecsworld.EntityID) (json.RawMessage, bool)
	restore  func(w *ecsworld.World, e ecsworld.EntityID, data json.RawMessage) error
	getField func(w *ecsworld.World, e ecsworld.EntityID, field string) (json.RawMessage, error)
	setField func(w *ecsworld.World, e ecsworld.EntityID, field string, value json.RawMessage) error
}

// Registry maps a type-name string to its TypeRecord.
type Registry struct {
	byName map[string]*TypeRecord
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*TypeRecord)}
}

// Register adds rec under rec.Name, overwriting any prior record of
// the same name.
func (r *Registry) Register(rec *TypeRecord) {
	if _, ok := r.byName[rec.Name]; !ok {
		r.order = append(r.order, rec.Name)
	}
	r.byName[rec.Name] = rec
}

// Get returns the TypeRecord for name, if registered.
func (r *Registry) Get(name string) (*TypeRecord, bool) {
	rec, ok := r.byName[name]
	return rec, ok
}

// TypeNames returns every registered type name in registration order.
func (r *Registry) TypeNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// SnapshotEntity captures every registered component currently present
// on e, keyed by type name, as opaque JSON.
func (r *Registry) SnapshotEntity(w *ecsworld.World, e ecsworld.EntityID) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage)
	for _, name := range r.order {
		rec := r.byName[name]
		if data, ok := rec.snapshot(w, e); ok {
			out[name] = data
		}
	}
	return out
}

// RestoreEntity re-inserts every component captured by SnapshotEntity
// onto e.
func (r *Registry) RestoreEntity(w *ecsworld.World, e ecsworld.EntityID, snapshot map[string]json.RawMessage) error {
	for name, data := range snapshot {
		rec, ok := r.byName[name]
		if !ok {
			continue
		}
		if err := rec.restore(w, e, data); err != nil {
			return fmt.Errorf("metadata: restore %s: %w", name, err)
		}
	}
	return nil
}

// GetField returns the current JSON value of field on e's component
// named typeName.
func (r *Registry) GetField(w *ecsworld.World, e ecsworld.EntityID, typeName, field string) (json.RawMessage, error) {
	rec, ok := r.byName[typeName]
	if !ok {
		return nil, fmt.Errorf("metadata: get field: %w", engerr.ErrComponentTypeMismatch)
	}
	return rec.getField(w, e, field)
}

// SetField applies value to field on e's component named typeName.
func (r *Registry) SetField(w *ecsworld.World, e ecsworld.EntityID, typeName, field string, value json.RawMessage) error {
	rec, ok := r.byName[typeName]
	if !ok {
		return fmt.Errorf("metadata: set field: %w", engerr.ErrComponentTypeMismatch)
	}
	return rec.setField(w, e, field, value)
}

// RegisterComponent wires a concrete component type T into the
// registry with generic JSON snapshot/restore and a field get/set pair
// implemented via getters/setters functions supplied by the caller.
func RegisterComponent[T any](
	r *Registry,
	name string,
	fields []FieldDescriptor,
	getField func(v T, field string) (json.RawMessage, error),
	setField func(v *T, field string, value json.RawMessage) error,
) {
	rec := &TypeRecord{Name: name, Fields: fields}

	rec.snapshot = func(w *ecsworld.World, e ecsworld.EntityID) (json.RawMessage, bool) {
		v, ok := ecsworld.Get[T](w, e)
		if !ok {
			return nil, false
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, false
		}
		return data, true
	}

	rec.restore = func(w *ecsworld.World, e ecsworld.EntityID, data json.RawMessage) error {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("%w", engerr.ErrComponentTypeMismatch)
		}
		ecsworld.Insert(w, e, v)
		return nil
	}

	rec.getField = func(w *ecsworld.World, e ecsworld.EntityID, field string) (json.RawMessage, error) {
		v, ok := ecsworld.Get[T](w, e)
		if !ok {
			return nil, fmt.Errorf("metadata: get field: %w", engerr.ErrEntityNotFound)
		}
		return getField(v, field)
	}

	rec.setField = func(w *ecsworld.World, e ecsworld.EntityID, field string, value json.RawMessage) error {
		v, ok := ecsworld.Get[T](w, e)
		if !ok {
			var zero T
			v = zero
		}
		if err := setField(&v, field, value); err != nil {
			return err
		}
		ecsworld.Insert(w, e, v)
		return nil
	}

	r.Register(rec)
}
