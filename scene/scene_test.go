package scene

import (
	"testing"

	"github.com/forge2d/forge2d/math2d"
	"github.com/forge2d/forge2d/physics"
)

func TestSceneRoundTrip(t *testing.T) {
	p := physics.New(math2d.Vec2{X: 0, Y: 400})
	p.CreateBody(1, physics.Fixed, math2d.Vec2{X: 0, Y: 100}, 0)
	p.AddColliderWithMaterial(1, physics.Shape{Kind: physics.ShapeBox, HalfWidth: 100, HalfHeigh: 10}, math2d.Vec2{}, physics.Material{Density: 1})

	p.CreateBody(2, physics.Dynamic, math2d.Vec2{X: 0, Y: 0}, 0)
	p.AddColliderWithMaterial(2, physics.Shape{Kind: physics.ShapeBox, HalfWidth: 10, HalfHeigh: 10}, math2d.Vec2{}, physics.Material{Density: 1})

	s := CreateScene(p)
	data, err := s.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}

	parsed, err := FromJSON(data)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}

	fresh := physics.New(math2d.Vec2{})
	if err := RestoreScenePhysics(fresh, parsed); err != nil {
		t.Fatalf("restore: %v", err)
	}

	if len(fresh.Entities()) != 2 {
		t.Fatalf("restored entity count = %d, want 2", len(fresh.Entities()))
	}
	if fresh.Gravity() != s.Physics.Gravity {
		t.Fatalf("gravity mismatch: %v vs %v", fresh.Gravity(), s.Physics.Gravity)
	}
	pos := fresh.Position(1)
	if pos.Y != 100 {
		t.Fatalf("restored body 1 position = %v, want y=100", pos)
	}
}

func TestShapeJSONVariants(t *testing.T) {
	cases := []physics.Shape{
		{Kind: physics.ShapeBox, HalfWidth: 1, HalfHeigh: 2},
		{Kind: physics.ShapeCircle, Radius: 3},
		{Kind: physics.ShapeCapsuleY, Radius: 1, Height: 4},
	}
	for _, shape := range cases {
		sj := ShapeJSON{shape}
		data, err := sj.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back ShapeJSON
		if err := back.UnmarshalJSON(data); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if back.Shape != shape {
			t.Fatalf("round trip mismatch: got %+v, want %+v", back.Shape, shape)
		}
	}
}
