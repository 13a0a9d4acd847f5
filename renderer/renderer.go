// Package renderer implements frame batching, the sprite/shape/text
// draw queue, and the multi-pass lighting composite, grounded on
// pthm-soup/renderer/*.go for package shape (one file per concern) and
// original_source/forge2d/src/render/*.rs for batching/emission
// semantics. Built on raylib immediate-mode drawing as the batching
// substrate: draws are queued into a Frame and flushed in EndFrame
// against offscreen rl.RenderTexture2D targets.
package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/forge2d/forge2d/internal/engerr"
)

// Renderer owns the window, loaded textures/fonts, and the offscreen
// targets used for the lighting composite.
type Renderer struct {
	width, height int32
	ambient       Color

	scene rl.RenderTexture2D
	light rl.RenderTexture2D

	textures   map[uint32]rl.Texture2D
	nextTexID  uint32
	fonts      map[uint32]rl.Font
	nextFontID uint32
}

// New creates the window (if one isn't already open) and allocates the
// scene/light offscreen targets at width x height.
func New(width, height int32, title string, ambient Color) (*Renderer, error) {
	if !rl.IsWindowReady() {
		rl.InitWindow(width, height, title)
	}

	scene := rl.LoadRenderTexture(width, height)
	light := rl.LoadRenderTexture(width, height)

	r := &Renderer{
		width: width, height: height, ambient: ambient,
		scene: scene, light: light,
		textures: make(map[uint32]rl.Texture2D),
		fonts:    make(map[uint32]rl.Font),
	}
	return r, nil
}

// Resize reallocates the offscreen targets for a new window size.
func (r *Renderer) Resize(width, height int32) {
	rl.UnloadRenderTexture(r.scene)
	rl.UnloadRenderTexture(r.light)
	r.width, r.height = width, height
	r.scene = rl.LoadRenderTexture(width, height)
	r.light = rl.LoadRenderTexture(width, height)
}

// LoadTexture loads an image file and returns an opaque handle.
func (r *Renderer) LoadTexture(path string) (uint32, error) {
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return 0, fmt.Errorf("renderer: load texture %q: %w", path, engerr.ErrAssetLoadFailed)
	}
	r.nextTexID++
	id := r.nextTexID
	r.textures[id] = tex
	return id, nil
}

// LoadFont loads a TTF/OTF font at the given base size.
func (r *Renderer) LoadFont(path string, size int32) (uint32, error) {
	font := rl.LoadFontEx(path, size, nil, 0)
	if font.Texture.ID == 0 {
		return 0, fmt.Errorf("renderer: load font %q: %w", path, engerr.ErrAssetLoadFailed)
	}
	r.nextFontID++
	id := r.nextFontID
	r.fonts[id] = font
	return id, nil
}

// BeginFrame returns a fresh Frame ready to accept draw calls.
func (r *Renderer) BeginFrame() *Frame {
	return newFrame()
}

// EndFrame flushes f through the clear -> shapes+sprites+text -> lights
// -> composite pipeline and presents the result.
//
// Composite is multiplicative (scene.rgb * (ambient + lightmap.rgb)):
// the light target is cleared to the ambient color and every queued
// light is added onto it. With zero lights queued the light target is
// cleared to white instead, so a no-light frame passes through
// unchanged.
func (r *Renderer) EndFrame(f *Frame, clear Color) {
	rl.BeginTextureMode(r.scene)
	rl.ClearBackground(toRL(clear))
	for _, c := range f.sortedSceneCommands() {
		r.drawScene(c)
	}
	rl.EndTextureMode()

	lights := f.lightCommands()
	lightClear := r.ambient
	if len(lights) == 0 {
		lightClear = White
	}

	rl.BeginTextureMode(r.light)
	rl.ClearBackground(toRL(lightClear))
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, c := range lights {
		rl.DrawCircleGradient(int32(c.x), int32(c.y), c.radius, toRL(scaleColor(c.color, c.intensity)), rl.Color{})
	}
	rl.EndBlendMode()
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	full := rl.Rectangle{X: 0, Y: 0, Width: float32(r.width), Height: -float32(r.height)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(r.width), Height: float32(r.height)}
	rl.DrawTexturePro(r.scene.Texture, full, dst, rl.Vector2{}, 0, rl.White)
	rl.BeginBlendMode(rl.BlendMultiplied)
	rl.DrawTexturePro(r.light.Texture, full, dst, rl.Vector2{}, 0, rl.White)
	rl.EndBlendMode()
	rl.EndDrawing()
}

func (r *Renderer) drawScene(c drawCommand) {
	switch c.kind {
	case cmdShape:
		r.drawShape(c)
	case cmdSprite:
		r.drawSprite(c)
	case cmdText:
		r.drawText(c)
	}
}

func (r *Renderer) drawShape(c drawCommand) {
	col := toRL(c.color)
	switch c.shapeKind {
	case ShapeRect:
		rect := rl.Rectangle{X: c.x, Y: c.y, Width: c.w, Height: c.h}
		origin := rl.Vector2{X: c.w / 2, Y: c.h / 2}
		rl.DrawRectanglePro(rect, origin, c.rotation, col)
	case ShapeCircle:
		rl.DrawCircleV(rl.Vector2{X: c.x, Y: c.y}, c.radius, col)
	case ShapeLine:
		rl.DrawLineV(rl.Vector2{X: c.x, Y: c.y}, rl.Vector2{X: c.w, Y: c.h}, col)
	}
}

func (r *Renderer) drawSprite(c drawCommand) {
	tex, ok := r.textures[c.texture]
	if !ok {
		return
	}

	srcW := c.srcRect[2] * float32(tex.Width)
	srcH := c.srcRect[3] * float32(tex.Height)
	if c.flipX {
		srcW = -srcW
	}
	if c.flipY {
		srcH = -srcH
	}

	src := rl.Rectangle{
		X: c.srcRect[0] * float32(tex.Width), Y: c.srcRect[1] * float32(tex.Height),
		Width: srcW, Height: srcH,
	}
	dst := rl.Rectangle{X: c.x, Y: c.y, Width: c.w, Height: c.h}
	origin := rl.Vector2{X: c.w / 2, Y: c.h / 2}
	rl.DrawTexturePro(tex, src, dst, origin, c.rotation*radToDeg, toRL(c.color))
}

func (r *Renderer) drawText(c drawCommand) {
	col := toRL(c.color)
	if font, ok := r.fonts[c.font]; ok {
		rl.DrawTextEx(font, c.text, rl.Vector2{X: c.x, Y: c.y}, c.size, 1, col)
		return
	}
	rl.DrawText(c.text, int32(c.x), int32(c.y), int32(c.size), col)
}

// Unload releases every loaded texture/font and both offscreen targets.
func (r *Renderer) Unload() {
	for _, t := range r.textures {
		rl.UnloadTexture(t)
	}
	for _, f := range r.fonts {
		rl.UnloadFont(f)
	}
	rl.UnloadRenderTexture(r.scene)
	rl.UnloadRenderTexture(r.light)
}

const radToDeg = 180.0 / 3.14159265

func toRL(c Color) rl.Color {
	return rl.Color{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func scaleColor(c Color, s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
