// Package components defines the engine's core data-only component
// types (§3 of the data model). They carry no behavior beyond field
// accessors; systems in package game/renderer/physics interpret them.
package components

import "github.com/forge2d/forge2d/internal/ecsworld"

// Transform is the pose every visible/physical entity carries: local
// position, rotation (radians), non-uniform scale, and an optional
// parent for hierarchy composition (see package hierarchy).
type Transform struct {
	Position Vec2
	Rotation float32
	Scale    Vec2
	Parent   ecsworld.EntityID // zero means no parent
}

// Vec2 mirrors math2d.Vec2 locally to avoid components depending on
// the math2d package purely for a field type; conversions are trivial.
type Vec2 struct {
	X, Y float32
}

// DefaultTransform returns an identity transform (unit scale, no parent).
func DefaultTransform() Transform {
	return Transform{Scale: Vec2{X: 1, Y: 1}}
}

// Sprite is a textured quad drawn each frame by the renderer.
type Sprite struct {
	Texture    uint32 // opaque texture handle, 0 = none
	UVRect     [4]float32
	Tint       [4]float32 `inspect:"color"`
	Visible    bool
	IsOccluder bool
	ZOrder     int32
}

// DefaultSprite returns a fully opaque, visible, non-occluding white sprite.
func DefaultSprite() Sprite {
	return Sprite{Tint: [4]float32{1, 1, 1, 1}, Visible: true}
}

// PhysicsBody links an entity to its physics-package rigid body. The
// physics World is the source of truth for pose/velocity once created;
// this component only records which kind of body the entity owns.
type PhysicsBody struct {
	Kind int // mirrors physics.BodyKind without importing the package
}

// Tilemap references a tileset texture and a grid of tile indices.
type Tilemap struct {
	Texture     uint32
	TileWidth   int32
	TileHeight  int32
	Columns     int
	Rows        int
	Tiles       []int32 // row-major, -1 = empty
	TilesetCols int     // columns in the source tileset texture
}

// TileAt returns the tile index at (col,row), or -1 if out of bounds.
func (t *Tilemap) TileAt(col, row int) int32 {
	if col < 0 || row < 0 || col >= t.Columns || row >= t.Rows {
		return -1
	}
	return t.Tiles[row*t.Columns+col]
}

// AudioSource is an interface-only facade over an OS mixer: a sound
// handle plus the playback knobs a game might toggle. Actual decoding
// and mixing is a host concern (spec.md §1 Non-goals).
type AudioSource struct {
	Sound   uint32
	Volume  float32 `inspect:"label,fmt:%.2f"`
	Loop    bool
	Playing bool
}

// CameraComponent tags the entity whose math2d.Camera2D drives the
// active view; the camera math itself lives in math2d.Camera2D.
type CameraComponent struct {
	Active bool
}

// Tag components: presence-only markers, data-free by design.
type (
	Player     struct{}
	Enemy      struct{}
	Collectible struct{}
)
