package scene

import (
	"fmt"

	"github.com/forge2d/forge2d/internal/engerr"
	"github.com/forge2d/forge2d/math2d"
	"github.com/forge2d/forge2d/physics"
)

// CreateScene produces a Scene containing p's gravity and the full set
// of bodies and colliders. Entity component data is left empty; callers
// that also want component snapshots merge them into s.Entities via
// package metadata before writing the file.
func CreateScene(p *physics.World) *Scene {
	s := &Scene{Version: Version}
	s.Physics.Gravity = p.Gravity()

	for _, e := range p.Entities() {
		s.Physics.Bodies = append(s.Physics.Bodies, Body{
			Entity:          uint32(e),
			BodyType:        bodyTypeName(p.KindOf(e)),
			Position:        p.Position(e),
			Rotation:        p.Rotation(e),
			LinearVelocity:  p.LinearVelocity(e),
			AngularVelocity: p.AngularVelocity(e),
		})
		for _, c := range p.CollidersOf(e) {
			s.Physics.Colliders = append(s.Physics.Colliders, Collider{
				Entity:      uint32(e),
				Shape:       ShapeJSON{c.Shape},
				Offset:      c.Offset,
				Density:     c.Material.Density,
				Friction:    c.Material.Friction,
				Restitution: c.Material.Restitution,
				IsSensor:    c.IsSensor,
			})
		}
	}

	return s
}

// RestoreScenePhysics wipes every body/collider in p and recreates them
// from s by preserved entity id.
func RestoreScenePhysics(p *physics.World, s *Scene) error {
	return RestoreScenePhysicsPreserve(p, s, nil)
}

// RestoreScenePhysicsPreserve restores s into p, leaving the listed
// entities untouched so static scenery can persist across load.
// Ordering (mirrors original_source/forge2d/src/scene.rs precisely):
//  1. remove all non-preserved existing bodies
//  2. restore gravity
//  3. create bodies (without colliders) for all non-preserved body data
//  4. attach colliders, verified against the just-created body set
//  5. zero velocities and apply dynamic damping defaults on affected bodies
//  6. (wake-up is implicit: box2d bodies default to awake on creation)
func RestoreScenePhysicsPreserve(p *physics.World, s *Scene, preserve []uint32) error {
	preserveSet := make(map[uint32]bool, len(preserve))
	for _, e := range preserve {
		preserveSet[e] = true
	}

	for _, e := range p.Entities() {
		if preserveSet[uint32(e)] {
			continue
		}
		p.RemoveBody(e)
	}

	p.SetGravity(s.Physics.Gravity)

	createdBodies := make(map[uint32]bool)
	for _, b := range s.Physics.Bodies {
		if preserveSet[b.Entity] {
			continue
		}
		p.CreateBody(physics.EntityID(b.Entity), bodyTypeFromName(b.BodyType), b.Position, b.Rotation)
		createdBodies[b.Entity] = true
	}

	for _, c := range s.Physics.Colliders {
		if preserveSet[c.Entity] {
			continue
		}
		if !createdBodies[c.Entity] {
			return fmt.Errorf("scene: collider references missing body %d: %w", c.Entity, engerr.ErrSceneRestoreFailed)
		}
		var err error
		if c.IsSensor {
			_, err = p.AddSensor(physics.EntityID(c.Entity), c.Shape.Shape, c.Offset)
		} else {
			_, err = p.AddColliderWithMaterial(physics.EntityID(c.Entity), c.Shape.Shape, c.Offset, physics.Material{
				Density:     c.Density,
				Friction:    c.Friction,
				Restitution: c.Restitution,
			})
		}
		if err != nil {
			return fmt.Errorf("scene: attach collider: %w", err)
		}
	}

	for _, b := range s.Physics.Bodies {
		if preserveSet[b.Entity] {
			continue
		}
		e := physics.EntityID(b.Entity)
		p.SetLinearVelocity(e, math2d.Vec2{})
		p.SetAngularVelocity(e, 0)
		if bodyTypeFromName(b.BodyType) == physics.Dynamic {
			p.SetLinearDamping(e, 0.1)
			p.SetAngularDamping(e, 0.2)
		}
	}

	return nil
}
