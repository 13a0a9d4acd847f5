package scene

import (
	"encoding/json"
	"fmt"

	"github.com/forge2d/forge2d/internal/engerr"
	"github.com/forge2d/forge2d/physics"
)

// ShapeJSON is the tag-keyed collider shape variant described by
// spec.md §6: {"Box": {...}}, {"Circle": {...}}, {"CapsuleY": {...}}.
type ShapeJSON struct {
	physics.Shape
}

type boxShape struct {
	HX float32 `json:"hx"`
	HY float32 `json:"hy"`
}

type circleShape struct {
	Radius float32 `json:"radius"`
}

type capsuleYShape struct {
	HalfHeight float32 `json:"half_height"`
	Radius     float32 `json:"radius"`
}

func (s ShapeJSON) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case physics.ShapeBox:
		return json.Marshal(map[string]boxShape{"Box": {HX: s.HalfWidth, HY: s.HalfHeigh}})
	case physics.ShapeCircle:
		return json.Marshal(map[string]circleShape{"Circle": {Radius: s.Radius}})
	case physics.ShapeCapsuleY:
		return json.Marshal(map[string]capsuleYShape{"CapsuleY": {HalfHeight: s.Height / 2, Radius: s.Radius}})
	default:
		return nil, fmt.Errorf("scene: marshal shape: %w", engerr.ErrSceneParseFailed)
	}
}

func (s *ShapeJSON) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("scene: unmarshal shape: %w", engerr.ErrSceneParseFailed)
	}
	if v, ok := raw["Box"]; ok {
		var b boxShape
		if err := json.Unmarshal(v, &b); err != nil {
			return fmt.Errorf("scene: unmarshal shape: %w", engerr.ErrSceneParseFailed)
		}
		s.Shape = physics.Shape{Kind: physics.ShapeBox, HalfWidth: b.HX, HalfHeigh: b.HY}
		return nil
	}
	if v, ok := raw["Circle"]; ok {
		var c circleShape
		if err := json.Unmarshal(v, &c); err != nil {
			return fmt.Errorf("scene: unmarshal shape: %w", engerr.ErrSceneParseFailed)
		}
		s.Shape = physics.Shape{Kind: physics.ShapeCircle, Radius: c.Radius}
		return nil
	}
	if v, ok := raw["CapsuleY"]; ok {
		var c capsuleYShape
		if err := json.Unmarshal(v, &c); err != nil {
			return fmt.Errorf("scene: unmarshal shape: %w", engerr.ErrSceneParseFailed)
		}
		s.Shape = physics.Shape{Kind: physics.ShapeCapsuleY, Radius: c.Radius, Height: c.HalfHeight * 2}
		return nil
	}
	return fmt.Errorf("scene: unknown shape variant: %w", engerr.ErrSceneParseFailed)
}
