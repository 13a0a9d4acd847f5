// Package physics is the engine's facade over a rigid-body simulation,
// built on github.com/ByteArena/box2d. It owns the bidirectional
// entity<->body mapping, synthesizes an edge-triggered collision-event
// stream, and exposes raycasts and point queries.
//
// Grounded on original_source/forge2d/src/physics.rs, translated from
// rapier2d onto box2d.
package physics

import (
	"fmt"
	"sort"

	"github.com/ByteArena/box2d"

	"github.com/forge2d/forge2d/internal/engerr"
	"github.com/forge2d/forge2d/math2d"
)

// EntityID mirrors ecsworld.EntityID without importing that package,
// keeping physics independent of the World's internals.
type EntityID uint32

// BodyKind is the rigid-body motion type.
type BodyKind int

const (
	Dynamic BodyKind = iota
	Kinematic
	Fixed
)

func (k BodyKind) box2dType() uint8 {
	switch k {
	case Fixed:
		return 0
	case Kinematic:
		return 1
	default:
		return 2
	}
}

// Shape is a collider's local geometry.
type Shape struct {
	Kind      ShapeKind
	HalfWidth float32 // Box
	HalfHeigh float32 // Box
	Radius    float32 // Circle, CapsuleY
	Height    float32 // CapsuleY: full segment height between end caps
}

// ShapeKind enumerates the supported collider shapes.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
	ShapeCapsuleY
)

// Material carries a collider's physical response properties.
type Material struct {
	Density     float32
	Friction    float32
	Restitution float32
}

// ColliderHandle opaquely identifies one collider.
type ColliderHandle uint64

// Collider is a queryable snapshot of one collider's static description.
type Collider struct {
	Entity   EntityID
	Shape    Shape
	Offset   math2d.Vec2
	Material Material
	IsSensor bool
}

// EventKind distinguishes solid contact from sensor/trigger contact.
type EventKind int

const (
	CollisionEnter EventKind = iota
	CollisionExit
	TriggerEnter
	TriggerExit
)

// Event is one collision/trigger transition, with entities in
// canonical (lo,hi) order.
type Event struct {
	Kind EventKind
	A, B EntityID
}

type pairKey struct{ lo, hi EntityID }

func makePairKey(a, b EntityID) pairKey {
	if a <= b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// World wraps a box2d.B2World with the entity-facing facade described
// above.
type World struct {
	b2 box2d.B2World

	entityToBody map[EntityID]*box2d.B2Body
	bodyToEntity map[*box2d.B2Body]EntityID
	bodyKind     map[EntityID]BodyKind
	colliders    map[EntityID][]colliderEntry

	activeContacts  map[pairKey]int // count of touching fixture-pairs, any collider pair
	activeSensors   map[pairKey]int // count of touching fixture-pairs, at least one side a sensor
	pendingBegin    []pairTouch
	pendingEnd      []pairTouch
	events          []Event
	onCollision     []func(Event)
}

type pairTouch struct {
	a, b    EntityID
	sensor  bool
}

// colliderEntry pairs a live box2d fixture with the metadata needed to
// serialize it back out via package scene.
type colliderEntry struct {
	fixture *box2d.B2Fixture
	meta    Collider
}

// New returns a physics World with the given gravity.
func New(gravity math2d.Vec2) *World {
	w := &World{
		b2:             box2d.MakeB2World(box2d.MakeB2Vec2(float64v(gravity.X), float64v(gravity.Y))),
		entityToBody:   make(map[EntityID]*box2d.B2Body),
		bodyToEntity:   make(map[*box2d.B2Body]EntityID),
		bodyKind:       make(map[EntityID]BodyKind),
		colliders:      make(map[EntityID][]colliderEntry),
		activeContacts: make(map[pairKey]int),
		activeSensors:  make(map[pairKey]int),
	}
	w.b2.SetContactListener(&listener{w: w})
	return w
}

func float64v(f float32) float64 { return float64(f) }

// SetGravity updates the world gravity vector.
func (w *World) SetGravity(g math2d.Vec2) {
	w.b2.SetGravity(box2d.MakeB2Vec2(float64v(g.X), float64v(g.Y)))
}

// Gravity returns the world gravity vector.
func (w *World) Gravity() math2d.Vec2 {
	g := w.b2.GetGravity()
	return math2d.Vec2{X: float32(g.X), Y: float32(g.Y)}
}

// OnCollision registers a callback invoked for every event produced by
// the next Step.
func (w *World) OnCollision(cb func(Event)) {
	w.onCollision = append(w.onCollision, cb)
}

// CreateBody creates a rigid body for e, removing any prior body (and
// its colliders) for that entity first.
func (w *World) CreateBody(e EntityID, kind BodyKind, pos math2d.Vec2, rotation float32) {
	w.RemoveBody(e)

	def := box2d.NewB2BodyDef()
	def.Type = uint8(kind.box2dType())
	def.Position = box2d.MakeB2Vec2(float64v(pos.X), float64v(pos.Y))
	def.Angle = float64v(rotation)

	body := w.b2.CreateBody(def)
	w.entityToBody[e] = body
	w.bodyToEntity[body] = e
	w.bodyKind[e] = kind
}

// RemoveBody deletes e's body and every collider attached to it,
// removing both directions of the entity<->body mapping.
func (w *World) RemoveBody(e EntityID) {
	body, ok := w.entityToBody[e]
	if !ok {
		return
	}
	delete(w.entityToBody, e)
	delete(w.bodyToEntity, body)
	delete(w.colliders, e)
	delete(w.bodyKind, e)
	w.b2.DestroyBody(body)
}

// Entities returns every entity that currently has a body.
func (w *World) Entities() []EntityID {
	out := make([]EntityID, 0, len(w.entityToBody))
	for e := range w.entityToBody {
		out = append(out, e)
	}
	return out
}

// KindOf returns e's body kind.
func (w *World) KindOf(e EntityID) BodyKind { return w.bodyKind[e] }

// HasBody reports whether e currently has a body.
func (w *World) HasBody(e EntityID) bool {
	_, ok := w.entityToBody[e]
	return ok
}

// CollidersOf returns the collider metadata attached to e's body.
func (w *World) CollidersOf(e EntityID) []Collider {
	entries := w.colliders[e]
	out := make([]Collider, len(entries))
	for i, c := range entries {
		out[i] = c.meta
	}
	return out
}

func shapeToBox2d(s Shape) box2d.B2ShapeInterface {
	switch s.Kind {
	case ShapeCircle:
		c := box2d.NewB2CircleShape()
		c.SetRadius(float64v(s.Radius))
		return c
	case ShapeCapsuleY:
		// box2d has no native capsule; approximate with a box whose
		// half-height spans the segment plus the cap radius, matching
		// the collider's bounding footprint closely enough for broad
		// gameplay use. A precise two-circle-plus-box composite is a
		// possible follow-up if a shape needs exact capsule contact.
		p := box2d.NewB2PolygonShape()
		p.SetAsBox(float64v(s.Radius), float64v(s.Height/2+s.Radius))
		return p
	default:
		p := box2d.NewB2PolygonShape()
		p.SetAsBox(float64v(s.HalfWidth), float64v(s.HalfHeigh))
		return p
	}
}

// AddCollider attaches a collider to e's body using the given density
// and default friction/restitution.
func (w *World) AddCollider(e EntityID, shape Shape, offset math2d.Vec2, density float32) (ColliderHandle, error) {
	return w.AddColliderWithMaterial(e, shape, offset, Material{Density: density, Friction: 0.3, Restitution: 0})
}

// AddColliderWithMaterial attaches a collider with explicit friction
// and restitution.
func (w *World) AddColliderWithMaterial(e EntityID, shape Shape, offset math2d.Vec2, mat Material) (ColliderHandle, error) {
	body, ok := w.entityToBody[e]
	if !ok {
		return 0, fmt.Errorf("physics: add collider: %w", engerr.ErrPhysicsConstraintFailed)
	}

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = shapeToBox2d(shape)
	fd.Density = float64v(mat.Density)
	fd.Friction = float64v(mat.Friction)
	fd.Restitution = float64v(mat.Restitution)

	fixture := body.CreateFixtureFromDef(&fd)
	entry := colliderEntry{
		fixture: fixture,
		meta: Collider{
			Entity:   e,
			Shape:    shape,
			Offset:   offset,
			Material: mat,
			IsSensor: false,
		},
	}
	w.colliders[e] = append(w.colliders[e], entry)
	return ColliderHandle(len(w.colliders[e])), nil
}

// AddSensor attaches a non-colliding trigger collider.
func (w *World) AddSensor(e EntityID, shape Shape, offset math2d.Vec2) (ColliderHandle, error) {
	body, ok := w.entityToBody[e]
	if !ok {
		return 0, fmt.Errorf("physics: add sensor: %w", engerr.ErrPhysicsConstraintFailed)
	}
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = shapeToBox2d(shape)
	fd.IsSensor = true
	fixture := body.CreateFixtureFromDef(&fd)
	entry := colliderEntry{
		fixture: fixture,
		meta: Collider{
			Entity:   e,
			Shape:    shape,
			Offset:   offset,
			IsSensor: true,
		},
	}
	w.colliders[e] = append(w.colliders[e], entry)
	return ColliderHandle(len(w.colliders[e])), nil
}

// SetLinearVelocity sets e's body linear velocity.
func (w *World) SetLinearVelocity(e EntityID, v math2d.Vec2) {
	if b, ok := w.entityToBody[e]; ok {
		b.SetLinearVelocity(box2d.MakeB2Vec2(float64v(v.X), float64v(v.Y)))
	}
}

// SetAngularVelocity sets e's body angular velocity.
func (w *World) SetAngularVelocity(e EntityID, v float32) {
	if b, ok := w.entityToBody[e]; ok {
		b.SetAngularVelocity(float64v(v))
	}
}

// LinearVelocity returns e's body linear velocity, or zero if absent.
func (w *World) LinearVelocity(e EntityID) math2d.Vec2 {
	if b, ok := w.entityToBody[e]; ok {
		v := b.GetLinearVelocity()
		return math2d.Vec2{X: float32(v.X), Y: float32(v.Y)}
	}
	return math2d.Vec2{}
}

// AngularVelocity returns e's body angular velocity, or zero if absent.
func (w *World) AngularVelocity(e EntityID) float32 {
	if b, ok := w.entityToBody[e]; ok {
		return float32(b.GetAngularVelocity())
	}
	return 0
}

// Position returns e's body position, or zero if absent.
func (w *World) Position(e EntityID) math2d.Vec2 {
	if b, ok := w.entityToBody[e]; ok {
		p := b.GetPosition()
		return math2d.Vec2{X: float32(p.X), Y: float32(p.Y)}
	}
	return math2d.Vec2{}
}

// Rotation returns e's body rotation in radians, or zero if absent.
func (w *World) Rotation(e EntityID) float32 {
	if b, ok := w.entityToBody[e]; ok {
		return float32(b.GetAngle())
	}
	return 0
}

// SetPosition teleports e's body to pos, keeping its current rotation.
func (w *World) SetPosition(e EntityID, pos math2d.Vec2) {
	if b, ok := w.entityToBody[e]; ok {
		b.SetTransform(box2d.MakeB2Vec2(float64v(pos.X), float64v(pos.Y)), b.GetAngle())
	}
}

// SetRotation teleports e's body to rotation radians, keeping its
// current position.
func (w *World) SetRotation(e EntityID, rotation float32) {
	if b, ok := w.entityToBody[e]; ok {
		b.SetTransform(b.GetPosition(), float64v(rotation))
	}
}

// SetLinearDamping sets e's body linear damping.
func (w *World) SetLinearDamping(e EntityID, d float32) {
	if b, ok := w.entityToBody[e]; ok {
		b.SetLinearDamping(float64v(d))
	}
}

// SetAngularDamping sets e's body angular damping.
func (w *World) SetAngularDamping(e EntityID, d float32) {
	if b, ok := w.entityToBody[e]; ok {
		b.SetAngularDamping(float64v(d))
	}
}

// LockRotations fixes e's body rotation.
func (w *World) LockRotations(e EntityID, locked bool) {
	if b, ok := w.entityToBody[e]; ok {
		b.SetFixedRotation(locked)
	}
}

// ApplyImpulse applies a linear impulse at the body's center of mass,
// waking it.
func (w *World) ApplyImpulse(e EntityID, impulse math2d.Vec2) {
	if b, ok := w.entityToBody[e]; ok {
		b.ApplyLinearImpulseToCenter(box2d.MakeB2Vec2(float64v(impulse.X), float64v(impulse.Y)), true)
	}
}

// ApplyForce applies a force at the body's center of mass, waking it.
func (w *World) ApplyForce(e EntityID, force math2d.Vec2) {
	if b, ok := w.entityToBody[e]; ok {
		b.ApplyForceToCenter(box2d.MakeB2Vec2(float64v(force.X), float64v(force.Y)), true)
	}
}

// ApplyForceAtPoint applies a force at a world-space point, waking the
// body.
func (w *World) ApplyForceAtPoint(e EntityID, force, point math2d.Vec2) {
	if b, ok := w.entityToBody[e]; ok {
		b.ApplyForce(
			box2d.MakeB2Vec2(float64v(force.X), float64v(force.Y)),
			box2d.MakeB2Vec2(float64v(point.X), float64v(point.Y)),
			true,
		)
	}
}

// CreateRevoluteJoint pins bodyA and bodyB together at their respective
// local anchors.
func (w *World) CreateRevoluteJoint(a, b EntityID, anchorA, anchorB math2d.Vec2) error {
	bodyA, ok := w.entityToBody[a]
	if !ok {
		return fmt.Errorf("physics: create joint: %w", engerr.ErrPhysicsConstraintFailed)
	}
	bodyB, ok := w.entityToBody[b]
	if !ok {
		return fmt.Errorf("physics: create joint: %w", engerr.ErrPhysicsConstraintFailed)
	}
	jd := box2d.MakeB2RevoluteJointDef()
	jd.BodyA = bodyA
	jd.BodyB = bodyB
	jd.LocalAnchorA = box2d.MakeB2Vec2(float64v(anchorA.X), float64v(anchorA.Y))
	jd.LocalAnchorB = box2d.MakeB2Vec2(float64v(anchorB.X), float64v(anchorB.Y))
	w.b2.CreateJoint(&jd)
	return nil
}

// Step advances the simulation by dt, then refreshes the synthesized
// collision-event stream and dispatches it to registered callbacks.
// The broad/narrow-phase query structures box2d maintains internally
// are current only after Step returns, matching the facade's "queries
// observe the new frame only after integration" invariant.
func (w *World) Step(dt float32, velocityIterations, positionIterations int) []Event {
	w.pendingBegin = w.pendingBegin[:0]
	w.pendingEnd = w.pendingEnd[:0]

	w.b2.Step(float64v(dt), velocityIterations, positionIterations)

	return w.resolveContactEvents()
}

// resolveContactEvents turns the fixture-pair Begin/End touches recorded
// this step into body-pair Enter/Exit events, keyed on w.activeContacts
// and w.activeSensors. box2d fires Begin/End per touching fixture-pair,
// not per body-pair, so a body-pair with several colliders can have more
// than one fixture-pair touching at once: each pair key is reference
// counted and Enter/Exit only fires on the 0<->1 transition.
func (w *World) resolveContactEvents() []Event {
	w.events = w.events[:0]
	for _, t := range w.pendingBegin {
		key := makePairKey(t.a, t.b)
		if t.sensor {
			w.activeSensors[key]++
			if w.activeSensors[key] == 1 {
				w.events = append(w.events, Event{Kind: TriggerEnter, A: key.lo, B: key.hi})
			}
		} else {
			w.activeContacts[key]++
			if w.activeContacts[key] == 1 {
				w.events = append(w.events, Event{Kind: CollisionEnter, A: key.lo, B: key.hi})
			}
		}
	}
	for _, t := range w.pendingEnd {
		key := makePairKey(t.a, t.b)
		if t.sensor {
			if w.activeSensors[key] > 0 {
				w.activeSensors[key]--
				if w.activeSensors[key] == 0 {
					delete(w.activeSensors, key)
					w.events = append(w.events, Event{Kind: TriggerExit, A: key.lo, B: key.hi})
				}
			}
		} else {
			if w.activeContacts[key] > 0 {
				w.activeContacts[key]--
				if w.activeContacts[key] == 0 {
					delete(w.activeContacts, key)
					w.events = append(w.events, Event{Kind: CollisionExit, A: key.lo, B: key.hi})
				}
			}
		}
	}

	sort.Slice(w.events, func(i, j int) bool {
		if w.events[i].A != w.events[j].A {
			return w.events[i].A < w.events[j].A
		}
		return w.events[i].B < w.events[j].B
	})

	for _, ev := range w.events {
		for _, cb := range w.onCollision {
			cb(ev)
		}
	}

	return w.events
}

// DrainEvents returns the events produced by the most recent Step.
func (w *World) DrainEvents() []Event {
	out := w.events
	w.events = nil
	return out
}

// RayHit is one CastRay result.
type RayHit struct {
	Entity EntityID
	Point  math2d.Vec2
	Toi    float32
}

// CastRay returns the nearest hit along the ray from origin in the
// given direction up to maxToi, or false if nothing was hit. Sensors
// are included in hits (Open Question, resolved: sensors participate
// in ray/point queries so trigger-style pickups remain queryable
// without a second code path).
func (w *World) CastRay(origin, dir math2d.Vec2, maxToi float32) (RayHit, bool) {
	d := dir.Normalized()
	end := origin.Add(d.Scale(maxToi))

	var best RayHit
	found := false
	bestFraction := float32(2)

	callback := &rayCastCallback{
		world: w,
		report: func(e EntityID, point math2d.Vec2, fraction float32) float32 {
			if fraction < bestFraction {
				bestFraction = fraction
				best = RayHit{Entity: e, Point: point, Toi: fraction * maxToi}
				found = true
			}
			return 1 // keep searching for the globally nearest fraction
		},
	}
	w.b2.RayCast(callback,
		box2d.MakeB2Vec2(float64v(origin.X), float64v(origin.Y)),
		box2d.MakeB2Vec2(float64v(end.X), float64v(end.Y)),
	)
	return best, found
}

type rayCastCallback struct {
	world  *World
	report func(e EntityID, point math2d.Vec2, fraction float32) float32
}

func (c *rayCastCallback) ReportFixture(fixture *box2d.B2Fixture, point box2d.B2Vec2, normal box2d.B2Vec2, fraction float64) float64 {
	e, ok := c.world.bodyToEntity[fixture.GetBody()]
	if !ok {
		return -1
	}
	ret := c.report(e, math2d.Vec2{X: float32(point.X), Y: float32(point.Y)}, float32(fraction))
	return float64(ret)
}

// PointQuery returns the entity whose collider contains p, if any.
// Sensors are included per the CastRay policy above.
func (w *World) PointQuery(p math2d.Vec2) (EntityID, bool) {
	point := box2d.MakeB2Vec2(float64v(p.X), float64v(p.Y))
	for e, entries := range w.colliders {
		for _, c := range entries {
			if c.fixture.TestPoint(point) {
				return e, true
			}
		}
	}
	return EntityID(0), false
}

// listener adapts box2d's contact callbacks into pendingBegin/pendingEnd
// diffs, mirroring physics.rs's before/after active-set comparison
// (box2d's listener, like rapier's, gives no ordered structure either).
type listener struct {
	w *World
}

func (l *listener) BeginContact(contact box2d.B2ContactInterface) {
	l.record(contact, &l.w.pendingBegin)
}

func (l *listener) EndContact(contact box2d.B2ContactInterface) {
	l.record(contact, &l.w.pendingEnd)
}

func (l *listener) record(contact box2d.B2ContactInterface, dst *[]pairTouch) {
	fa := contact.GetFixtureA()
	fb := contact.GetFixtureB()
	ea, ok := l.w.bodyToEntity[fa.GetBody()]
	if !ok {
		return
	}
	eb, ok := l.w.bodyToEntity[fb.GetBody()]
	if !ok {
		return
	}
	sensor := fa.IsSensor() || fb.IsSensor()
	*dst = append(*dst, pairTouch{a: ea, b: eb, sensor: sensor})
}

func (l *listener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}
func (l *listener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {}
