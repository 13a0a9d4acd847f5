package metadata

import (
	"encoding/json"
	"fmt"

	"github.com/forge2d/forge2d/components"
	"github.com/forge2d/forge2d/internal/engerr"
)

// RegisterDefaults wires the engine's built-in component types
// (Transform, Sprite) into r. Host games register their own types with
// RegisterComponent the same way.
func RegisterDefaults(r *Registry) {
	RegisterComponent[components.Transform](r, "Transform",
		[]FieldDescriptor{
			{ID: "position_x", Label: "Position X", Format: "%.1f", Group: "transform"},
			{ID: "position_y", Label: "Position Y", Format: "%.1f", Group: "transform"},
			{ID: "rotation", Label: "Rotation", Format: "%.2f", Group: "transform"},
			{ID: "scale_x", Label: "Scale X", Format: "%.2f", Group: "transform"},
			{ID: "scale_y", Label: "Scale Y", Format: "%.2f", Group: "transform"},
		},
		func(v components.Transform, field string) (json.RawMessage, error) {
			switch field {
			case "position_x":
				return json.Marshal(v.Position.X)
			case "position_y":
				return json.Marshal(v.Position.Y)
			case "rotation":
				return json.Marshal(v.Rotation)
			case "scale_x":
				return json.Marshal(v.Scale.X)
			case "scale_y":
				return json.Marshal(v.Scale.Y)
			}
			return nil, fmt.Errorf("transform: %w", engerr.ErrComponentTypeMismatch)
		},
		func(v *components.Transform, field string, value json.RawMessage) error {
			var f float32
			if err := json.Unmarshal(value, &f); err != nil {
				return fmt.Errorf("transform: %w", engerr.ErrComponentTypeMismatch)
			}
			switch field {
			case "position_x":
				v.Position.X = f
			case "position_y":
				v.Position.Y = f
			case "rotation":
				v.Rotation = f
			case "scale_x":
				v.Scale.X = f
			case "scale_y":
				v.Scale.Y = f
			default:
				return fmt.Errorf("transform: %w", engerr.ErrComponentTypeMismatch)
			}
			return nil
		},
	)

	RegisterComponent[components.Sprite](r, "Sprite",
		[]FieldDescriptor{
			{ID: "visible", Label: "Visible", Format: "%t", Group: "render"},
			{ID: "z_order", Label: "Z Order", Format: "%d", Group: "render"},
		},
		func(v components.Sprite, field string) (json.RawMessage, error) {
			switch field {
			case "visible":
				return json.Marshal(v.Visible)
			case "z_order":
				return json.Marshal(v.ZOrder)
			}
			return nil, fmt.Errorf("sprite: %w", engerr.ErrComponentTypeMismatch)
		},
		func(v *components.Sprite, field string, value json.RawMessage) error {
			switch field {
			case "visible":
				return json.Unmarshal(value, &v.Visible)
			case "z_order":
				return json.Unmarshal(value, &v.ZOrder)
			}
			return fmt.Errorf("sprite: %w", engerr.ErrComponentTypeMismatch)
		},
	)
}
