// Package ui implements the screen-space HUD layer drawn after world
// rendering, grounded on original_source/forge2d/src/hud.rs and
// pthm-soup/ui/hud.go's Draw/z-ordered-append shape.
package ui

import "github.com/forge2d/forge2d/renderer"

// Text is a HUD text element positioned in screen-space pixels.
type Text struct {
	Value  string
	Font   uint32
	Size   float32
	X, Y   float32
	Color  renderer.Color
	ZOrder int32
}

// Sprite is a HUD sprite element positioned in screen-space pixels.
type Sprite struct {
	Texture uint32
	SrcRect [4]float32
	X, Y    float32
	W, H    float32
	Tint    renderer.Color
	ZOrder  int32
}

// Rect is a filled rectangle element, used for bars and panel
// backgrounds.
type Rect struct {
	X, Y, W, H float32
	Color      renderer.Color
	ZOrder     int32
}

type element struct {
	kind int // 0 text, 1 sprite, 2 rect
	text Text
	spr  Sprite
	rect Rect
}

// Layer accumulates HUD elements for one frame. Callers append via
// AddText/AddSprite/AddRect each frame and Clear before the next one —
// Layer never clears itself, matching the explicit-clear contract.
type Layer struct {
	elements []element
}

// NewLayer returns an empty HUD layer.
func NewLayer() *Layer {
	return &Layer{}
}

// Clear removes every queued element.
func (l *Layer) Clear() {
	l.elements = l.elements[:0]
}

// AddText queues a text element.
func (l *Layer) AddText(t Text) {
	l.elements = append(l.elements, element{kind: 0, text: t})
}

// AddSprite queues a sprite element.
func (l *Layer) AddSprite(s Sprite) {
	l.elements = append(l.elements, element{kind: 1, spr: s})
}

// AddRect queues a filled rectangle element.
func (l *Layer) AddRect(r Rect) {
	l.elements = append(l.elements, element{kind: 2, rect: r})
}

// Len reports how many elements are currently queued.
func (l *Layer) Len() int { return len(l.elements) }

// Draw flushes every queued element into f, in screen space (the
// caller's frame should already use an identity HUD camera, or the
// engine draws the HUD after the world pass with raw pixel coords).
func (l *Layer) Draw(f *renderer.Frame) error {
	for _, e := range l.elements {
		switch e.kind {
		case 0:
			f.DrawText(e.text.Font, e.text.Value, e.text.X, e.text.Y, e.text.Size, e.text.Color, e.text.ZOrder)
		case 1:
			if err := f.DrawSprite(e.spr.Texture, e.spr.SrcRect, e.spr.X, e.spr.Y, e.spr.W, e.spr.H, 0, e.spr.Tint, false, false, e.spr.ZOrder); err != nil {
				return err
			}
		case 2:
			f.DrawRect(e.rect.X+e.rect.W/2, e.rect.Y+e.rect.H/2, e.rect.W, e.rect.H, 0, e.rect.Color, e.rect.ZOrder)
		}
	}
	return nil
}
