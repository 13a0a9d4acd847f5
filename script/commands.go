package script

import (
	"sync"

	"github.com/forge2d/forge2d/components"
	"github.com/forge2d/forge2d/internal/ecsworld"
	"github.com/forge2d/forge2d/math2d"
	"github.com/forge2d/forge2d/physics"
)

// SpawnBody describes the shape of entity a script asked to spawn.
type SpawnBody struct {
	Dynamic  bool // false: empty entity, only a Transform; true: also a dynamic rigid body
	Position math2d.Vec2
}

// SpawnRequest is one deferred spawn, applied before any other
// buffered command in a batch.
type SpawnRequest struct {
	Body            SpawnBody
	InitialVelocity *math2d.Vec2
	Tag             string
	HasTag          bool
}

type bufferedOp interface {
	apply(w *ecsworld.World, phys *physics.World)
}

type setTransformOp struct {
	entity   ecsworld.EntityID
	position *math2d.Vec2
	rotation *float32
	scale    *math2d.Vec2
}

func (op setTransformOp) apply(w *ecsworld.World, phys *physics.World) {
	t, ok := ecsworld.Get[components.Transform](w, op.entity)
	if !ok {
		return
	}
	if op.position != nil {
		t.Position = components.Vec2{X: op.position.X, Y: op.position.Y}
		phys.SetPosition(physics.EntityID(op.entity), *op.position)
	}
	if op.rotation != nil {
		t.Rotation = *op.rotation
		phys.SetRotation(physics.EntityID(op.entity), *op.rotation)
	}
	if op.scale != nil {
		t.Scale = components.Vec2{X: op.scale.X, Y: op.scale.Y}
	}
	ecsworld.Insert(w, op.entity, t)
}

type setSpriteVisibilityOp struct {
	entity  ecsworld.EntityID
	visible bool
}

func (op setSpriteVisibilityOp) apply(w *ecsworld.World, phys *physics.World) {
	s, ok := ecsworld.Get[components.Sprite](w, op.entity)
	if !ok {
		return
	}
	s.Visible = op.visible
	ecsworld.Insert(w, op.entity, s)
}

type setSpriteTintOp struct {
	entity ecsworld.EntityID
	tint   [4]float32
}

func (op setSpriteTintOp) apply(w *ecsworld.World, phys *physics.World) {
	s, ok := ecsworld.Get[components.Sprite](w, op.entity)
	if !ok {
		return
	}
	s.Tint = op.tint
	ecsworld.Insert(w, op.entity, s)
}

type applyImpulseOp struct {
	entity  ecsworld.EntityID
	impulse math2d.Vec2
}

func (op applyImpulseOp) apply(w *ecsworld.World, phys *physics.World) {
	phys.ApplyImpulse(physics.EntityID(op.entity), op.impulse)
}

type setVelocityOp struct {
	entity   ecsworld.EntityID
	velocity math2d.Vec2
}

func (op setVelocityOp) apply(w *ecsworld.World, phys *physics.World) {
	phys.SetLinearVelocity(physics.EntityID(op.entity), op.velocity)
}

type despawnOp struct {
	entity ecsworld.EntityID
}

func (op despawnOp) apply(w *ecsworld.World, phys *physics.World) {
	phys.RemoveBody(physics.EntityID(op.entity))
	w.Despawn(op.entity)
}

// CommandBuffer accumulates script-issued world mutations during one
// lifecycle batch (all instances of one stage) and applies them
// atomically afterward, so a script's commands never observe another
// script's half-applied effects within the same batch. Safe for
// concurrent use from multiple facet calls within a batch.
type CommandBuffer struct {
	mu     sync.Mutex
	spawns []SpawnRequest
	ops    []bufferedOp
}

// NewCommandBuffer returns an empty buffer.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

func (b *CommandBuffer) SetTransform(e ecsworld.EntityID, position *math2d.Vec2, rotation *float32, scale *math2d.Vec2) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = append(b.ops, setTransformOp{entity: e, position: position, rotation: rotation, scale: scale})
}

func (b *CommandBuffer) SetSpriteVisibility(e ecsworld.EntityID, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = append(b.ops, setSpriteVisibilityOp{entity: e, visible: visible})
}

func (b *CommandBuffer) SetSpriteTint(e ecsworld.EntityID, tint [4]float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = append(b.ops, setSpriteTintOp{entity: e, tint: tint})
}

func (b *CommandBuffer) ApplyImpulse(e ecsworld.EntityID, impulse math2d.Vec2) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = append(b.ops, applyImpulseOp{entity: e, impulse: impulse})
}

func (b *CommandBuffer) SetVelocity(e ecsworld.EntityID, velocity math2d.Vec2) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = append(b.ops, setVelocityOp{entity: e, velocity: velocity})
}

func (b *CommandBuffer) Despawn(e ecsworld.EntityID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = append(b.ops, despawnOp{entity: e})
}

func (b *CommandBuffer) Spawn(req SpawnRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.spawns = append(b.spawns, req)
}

// Apply drains pending spawns (in submission order), then pending
// mutation/despawn ops (in submission order), against w and phys.
func (b *CommandBuffer) Apply(w *ecsworld.World, phys *physics.World) {
	b.mu.Lock()
	spawns := b.spawns
	ops := b.ops
	b.spawns = nil
	b.ops = nil
	b.mu.Unlock()

	for _, req := range spawns {
		e := w.Spawn()
		ecsworld.Insert(w, e, components.Transform{
			Position: components.Vec2{X: req.Body.Position.X, Y: req.Body.Position.Y},
			Scale:    components.Vec2{X: 1, Y: 1},
		})
		if req.Body.Dynamic {
			phys.CreateBody(physics.EntityID(e), physics.Dynamic, req.Body.Position, 0)
		}
		if req.InitialVelocity != nil {
			phys.SetLinearVelocity(physics.EntityID(e), *req.InitialVelocity)
		}
		if req.HasTag {
			ecsworld.Insert(w, e, Tag{Value: req.Tag})
		}
	}

	for _, op := range ops {
		op.apply(w, phys)
	}
}
