package physics

import (
	"testing"

	"github.com/forge2d/forge2d/math2d"
)

func TestDynamicBodyFallsUnderGravity(t *testing.T) {
	w := New(math2d.Vec2{X: 0, Y: 10})
	w.CreateBody(1, Dynamic, math2d.Vec2{X: 0, Y: 0}, 0)
	if _, err := w.AddCollider(1, Shape{Kind: ShapeCircle, Radius: 1}, math2d.Vec2{}, 1); err != nil {
		t.Fatalf("add collider: %v", err)
	}

	start := w.Position(1)
	for i := 0; i < 30; i++ {
		w.Step(1.0/60, 8, 3)
	}
	end := w.Position(1)

	if end.Y <= start.Y {
		t.Fatalf("expected body to fall: start=%v end=%v", start, end)
	}
}

func TestFixedBodyDoesNotMove(t *testing.T) {
	w := New(math2d.Vec2{X: 0, Y: 10})
	w.CreateBody(1, Fixed, math2d.Vec2{X: 5, Y: 5}, 0)
	if _, err := w.AddCollider(1, Shape{Kind: ShapeBox, HalfWidth: 1, HalfHeigh: 1}, math2d.Vec2{}, 1); err != nil {
		t.Fatalf("add collider: %v", err)
	}

	for i := 0; i < 30; i++ {
		w.Step(1.0/60, 8, 3)
	}

	pos := w.Position(1)
	if pos.X != 5 || pos.Y != 5 {
		t.Fatalf("fixed body moved: %v", pos)
	}
}

func TestCollisionEnterEventOnLanding(t *testing.T) {
	w := New(math2d.Vec2{})
	w.CreateBody(1, Fixed, math2d.Vec2{X: 0, Y: 10}, 0)
	if _, err := w.AddCollider(1, Shape{Kind: ShapeBox, HalfWidth: 50, HalfHeigh: 1}, math2d.Vec2{}, 1); err != nil {
		t.Fatalf("add ground collider: %v", err)
	}
	w.CreateBody(2, Dynamic, math2d.Vec2{X: 0, Y: 0}, 0)
	if _, err := w.AddCollider(2, Shape{Kind: ShapeCircle, Radius: 1}, math2d.Vec2{}, 1); err != nil {
		t.Fatalf("add falling collider: %v", err)
	}
	w.SetGravity(math2d.Vec2{X: 0, Y: 20})

	var sawEnter bool
	for i := 0; i < 120 && !sawEnter; i++ {
		for _, ev := range w.Step(1.0/60, 8, 3) {
			if ev.Kind == CollisionEnter {
				sawEnter = true
			}
		}
	}
	if !sawEnter {
		t.Fatal("expected a CollisionEnter event once the falling body lands")
	}
}

func TestSensorReportsTriggerEvents(t *testing.T) {
	w := New(math2d.Vec2{})
	w.CreateBody(1, Fixed, math2d.Vec2{X: 0, Y: 0}, 0)
	if _, err := w.AddSensor(1, Shape{Kind: ShapeBox, HalfWidth: 5, HalfHeigh: 5}, math2d.Vec2{}); err != nil {
		t.Fatalf("add sensor: %v", err)
	}
	w.CreateBody(2, Dynamic, math2d.Vec2{X: 0, Y: -20}, 0)
	if _, err := w.AddCollider(2, Shape{Kind: ShapeCircle, Radius: 1}, math2d.Vec2{}, 1); err != nil {
		t.Fatalf("add falling collider: %v", err)
	}
	w.SetGravity(math2d.Vec2{X: 0, Y: 30})

	var sawTriggerEnter bool
	for i := 0; i < 180 && !sawTriggerEnter; i++ {
		for _, ev := range w.Step(1.0/60, 8, 3) {
			if ev.Kind == TriggerEnter {
				sawTriggerEnter = true
			}
		}
	}
	if !sawTriggerEnter {
		t.Fatal("expected a TriggerEnter event once the falling body enters the sensor")
	}
}

func TestMultiColliderPairDoesNotExitWhileOneFixturePairStillTouches(t *testing.T) {
	w := New(math2d.Vec2{})

	// Two fixture-pairs begin touching between the same body-pair (e.g.
	// body 1 has two colliders, both overlapping body 2's collider).
	w.pendingBegin = append(w.pendingBegin,
		pairTouch{a: 1, b: 2, sensor: false},
		pairTouch{a: 1, b: 2, sensor: false},
	)
	events := w.resolveContactEvents()
	if len(events) != 1 || events[0].Kind != CollisionEnter {
		t.Fatalf("events after two begins = %+v, want exactly one CollisionEnter", events)
	}
	if w.activeContacts[makePairKey(1, 2)] != 2 {
		t.Fatalf("active contact count = %d, want 2", w.activeContacts[makePairKey(1, 2)])
	}

	// Only one of the two fixture-pairs separates; the body-pair is
	// still touching through the other one, so no Exit should fire.
	w.pendingBegin = nil
	w.pendingEnd = append(w.pendingEnd, pairTouch{a: 1, b: 2, sensor: false})
	events = w.resolveContactEvents()
	if len(events) != 0 {
		t.Fatalf("events after first end = %+v, want none (pair still touching)", events)
	}
	if w.activeContacts[makePairKey(1, 2)] != 1 {
		t.Fatalf("active contact count after first end = %d, want 1", w.activeContacts[makePairKey(1, 2)])
	}

	// The last fixture-pair separates: now the body-pair is fully apart.
	w.pendingEnd = []pairTouch{{a: 1, b: 2, sensor: false}}
	events = w.resolveContactEvents()
	if len(events) != 1 || events[0].Kind != CollisionExit {
		t.Fatalf("events after second end = %+v, want exactly one CollisionExit", events)
	}
	if _, stillActive := w.activeContacts[makePairKey(1, 2)]; stillActive {
		t.Fatalf("pair key should be cleared once fully separated")
	}
}

func TestCastRayHitsNearestCollider(t *testing.T) {
	w := New(math2d.Vec2{})
	w.CreateBody(1, Fixed, math2d.Vec2{X: 10, Y: 0}, 0)
	if _, err := w.AddCollider(1, Shape{Kind: ShapeCircle, Radius: 1}, math2d.Vec2{}, 1); err != nil {
		t.Fatalf("add collider: %v", err)
	}

	hit, ok := w.CastRay(math2d.Vec2{X: 0, Y: 0}, math2d.Vec2{X: 1, Y: 0}, 20)
	if !ok {
		t.Fatal("expected a ray hit")
	}
	if hit.Entity != 1 {
		t.Fatalf("hit entity = %d, want 1", hit.Entity)
	}
}

func TestPointQueryFindsContainingEntity(t *testing.T) {
	w := New(math2d.Vec2{})
	w.CreateBody(1, Fixed, math2d.Vec2{X: 0, Y: 0}, 0)
	if _, err := w.AddCollider(1, Shape{Kind: ShapeBox, HalfWidth: 5, HalfHeigh: 5}, math2d.Vec2{}, 1); err != nil {
		t.Fatalf("add collider: %v", err)
	}

	e, ok := w.PointQuery(math2d.Vec2{X: 1, Y: 1})
	if !ok || e != 1 {
		t.Fatalf("point query = (%d, %v), want (1, true)", e, ok)
	}

	if _, ok := w.PointQuery(math2d.Vec2{X: 100, Y: 100}); ok {
		t.Fatal("expected no hit far outside the collider")
	}
}
