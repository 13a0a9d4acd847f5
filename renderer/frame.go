package renderer

import (
	"fmt"
	"sort"

	"github.com/forge2d/forge2d/internal/engerr"
)

// MaxSpritesPerFrame bounds how many sprite draws a single Frame
// accepts, standing in for the literal GPU uniform-buffer-offset
// allocator a wgpu backend would use: raylib draws immediately, so the
// budget is enforced as an explicit counter instead.
const MaxSpritesPerFrame = 8192

// commandKind distinguishes the four element kinds a Frame can queue.
type commandKind int

const (
	cmdShape commandKind = iota
	cmdSprite
	cmdText
	cmdLight
)

// ShapeKind selects which primitive a shape command draws.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
	ShapeLine
)

// Color is a normalized RGBA color, independent of any graphics
// backend's color type.
type Color struct {
	R, G, B, A float32
}

// White is fully opaque white, the default tint.
var White = Color{R: 1, G: 1, B: 1, A: 1}

type drawCommand struct {
	kind commandKind
	z    int32

	// shape
	shapeKind          ShapeKind
	x, y, w, h, radius float32
	rotation           float32
	color              Color

	// sprite
	texture uint32
	srcRect [4]float32 // normalized UV
	flipX   bool
	flipY   bool

	// text
	font uint32
	text string
	size float32

	// light
	intensity float32
	falloff   float32
}

// Frame collects a single frame's draw calls, queued in submission
// order and flushed sorted by z-order in Renderer.EndFrame.
type Frame struct {
	commands    []drawCommand
	spriteCount int
}

// newFrame returns an empty Frame ready to accept draw calls.
func newFrame() *Frame {
	return &Frame{}
}

// DrawRect queues a filled, optionally rotated rectangle.
func (f *Frame) DrawRect(x, y, w, h, rotation float32, c Color, z int32) {
	f.commands = append(f.commands, drawCommand{
		kind: cmdShape, shapeKind: ShapeRect,
		x: x, y: y, w: w, h: h, rotation: rotation, color: c, z: z,
	})
}

// DrawCircle queues a filled circle.
func (f *Frame) DrawCircle(x, y, radius float32, c Color, z int32) {
	f.commands = append(f.commands, drawCommand{
		kind: cmdShape, shapeKind: ShapeCircle,
		x: x, y: y, radius: radius, color: c, z: z,
	})
}

// DrawLine queues a line segment from (x,y) to (w,h) — reusing the
// rectangle fields as endpoints to avoid a second field set.
func (f *Frame) DrawLine(x1, y1, x2, y2 float32, c Color, z int32) {
	f.commands = append(f.commands, drawCommand{
		kind: cmdShape, shapeKind: ShapeLine,
		x: x1, y: y1, w: x2, h: y2, color: c, z: z,
	})
}

// DrawSprite queues a textured quad. Returns ErrFrameBudgetExceeded and
// drops the draw once MaxSpritesPerFrame has been queued this frame.
func (f *Frame) DrawSprite(texture uint32, srcRect [4]float32, x, y, w, h, rotation float32, tint Color, flipX, flipY bool, z int32) error {
	if f.spriteCount >= MaxSpritesPerFrame {
		return fmt.Errorf("renderer: frame sprite budget: %w", engerr.ErrFrameBudgetExceeded)
	}
	f.spriteCount++
	f.commands = append(f.commands, drawCommand{
		kind: cmdSprite, texture: texture, srcRect: srcRect,
		x: x, y: y, w: w, h: h, rotation: rotation, color: tint,
		flipX: flipX, flipY: flipY, z: z,
	})
	return nil
}

// DrawText queues a text draw at the given baseline position.
func (f *Frame) DrawText(font uint32, text string, x, y, size float32, c Color, z int32) {
	f.commands = append(f.commands, drawCommand{
		kind: cmdText, font: font, text: text,
		x: x, y: y, size: size, color: c, z: z,
	})
}

// DrawLight queues an additive point light for the lighting composite
// pass. Lights are not z-ordered against scene geometry; they flush
// into a separate offscreen target.
func (f *Frame) DrawLight(x, y, radius, intensity, falloff float32, c Color) {
	f.commands = append(f.commands, drawCommand{
		kind: cmdLight, x: x, y: y, radius: radius,
		intensity: intensity, falloff: falloff, color: c,
	})
}

// sortedSceneCommands returns the non-light commands sorted by z,
// stable so same-z draws keep submission order.
func (f *Frame) sortedSceneCommands() []drawCommand {
	scene := make([]drawCommand, 0, len(f.commands))
	for _, c := range f.commands {
		if c.kind != cmdLight {
			scene = append(scene, c)
		}
	}
	sort.SliceStable(scene, func(i, j int) bool { return scene[i].z < scene[j].z })
	return scene
}

func (f *Frame) lightCommands() []drawCommand {
	var lights []drawCommand
	for _, c := range f.commands {
		if c.kind == cmdLight {
			lights = append(lights, c)
		}
	}
	return lights
}
