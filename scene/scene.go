// Package scene implements the deterministic JSON scene snapshot and
// its physics round-trip, grounded on
// original_source/forge2d/src/scene.rs.
package scene

import (
	"encoding/json"
	"fmt"

	"github.com/forge2d/forge2d/internal/engerr"
	"github.com/forge2d/forge2d/math2d"
	"github.com/forge2d/forge2d/physics"
)

// Version is the current scene file format version.
const Version = 1

// Body is the serializable form of one physics body.
type Body struct {
	Entity          uint32      `json:"entity"`
	BodyType        string      `json:"body_type"`
	Position        math2d.Vec2 `json:"position"`
	Rotation        float32     `json:"rotation"`
	LinearVelocity  math2d.Vec2 `json:"linear_velocity"`
	AngularVelocity float32     `json:"angular_velocity"`
}

// Collider is the serializable form of one physics collider.
type Collider struct {
	Entity      uint32      `json:"entity"`
	Shape       ShapeJSON   `json:"shape"`
	Offset      math2d.Vec2 `json:"offset"`
	Density     float32     `json:"density"`
	Friction    float32     `json:"friction"`
	Restitution float32     `json:"restitution"`
	IsSensor    bool        `json:"is_sensor"`
}

// Component is an opaque, type-tagged component value.
type Component struct {
	TypeName string          `json:"type_name"`
	Data     json.RawMessage `json:"data"`
}

// Entity is one entity's id plus its opaque component list.
type Entity struct {
	ID         uint32      `json:"id"`
	Components []Component `json:"components"`
}

// Physics is the physics-subset of a Scene.
type Physics struct {
	Gravity   math2d.Vec2 `json:"gravity"`
	Bodies    []Body      `json:"bodies"`
	Colliders []Collider  `json:"colliders"`
}

// Scene is a serializable snapshot of physics state plus opaque
// per-entity component data. Scripts and other runtime-only state are
// never part of a Scene.
type Scene struct {
	Version  uint32   `json:"version"`
	Entities []Entity `json:"entities"`
	Physics  Physics  `json:"physics"`
}

// ToJSON marshals s as indented JSON.
func (s *Scene) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("scene: to json: %w", err)
	}
	return data, nil
}

// FromJSON parses data into a Scene.
func FromJSON(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: from json: %w: %v", engerr.ErrSceneParseFailed, err)
	}
	return &s, nil
}

func bodyTypeName(k physics.BodyKind) string {
	switch k {
	case physics.Fixed:
		return "Fixed"
	case physics.Kinematic:
		return "Kinematic"
	default:
		return "Dynamic"
	}
}

func bodyTypeFromName(name string) physics.BodyKind {
	switch name {
	case "Fixed":
		return physics.Fixed
	case "Kinematic":
		return physics.Kinematic
	default:
		return physics.Dynamic
	}
}
