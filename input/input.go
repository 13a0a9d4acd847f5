// Package input provides edge-triggered keyboard/mouse state, polled
// once per frame and exposed as three parallel boolean tables
// (down/pressed/released) per spec.
package input

import (
	"github.com/forge2d/forge2d/math2d"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Key identifies a keyboard key using raylib's key codes.
type Key int32

// MouseButton identifies a mouse button using raylib's button codes.
type MouseButton int32

// Sampler abstracts the platform input source so State's edge logic is
// testable without a live window.
type Sampler interface {
	IsKeyDown(key int32) bool
	IsMouseButtonDown(button int32) bool
	MousePosition() math2d.Vec2
}

// raylibSampler samples input from an active raylib window.
type raylibSampler struct{}

func (raylibSampler) IsKeyDown(key int32) bool          { return rl.IsKeyDown(key) }
func (raylibSampler) IsMouseButtonDown(b int32) bool     { return rl.IsMouseButtonDown(b) }
func (raylibSampler) MousePosition() math2d.Vec2 {
	p := rl.GetMousePosition()
	return math2d.Vec2{X: p.X, Y: p.Y}
}

// State tracks current and edge-triggered input for one frame.
type State struct {
	sampler Sampler

	down     map[Key]bool
	pressed  map[Key]bool
	released map[Key]bool

	mouseDown     map[MouseButton]bool
	mousePressed  map[MouseButton]bool
	mouseReleased map[MouseButton]bool

	MousePos math2d.Vec2
}

// New returns an empty input State backed by raylib.
func New() *State {
	return NewWithSampler(raylibSampler{})
}

// NewWithSampler returns an empty input State backed by the given
// Sampler, primarily for testing.
func NewWithSampler(s Sampler) *State {
	return &State{
		sampler:       s,
		down:          make(map[Key]bool),
		pressed:       make(map[Key]bool),
		released:      make(map[Key]bool),
		mouseDown:     make(map[MouseButton]bool),
		mousePressed:  make(map[MouseButton]bool),
		mouseReleased: make(map[MouseButton]bool),
	}
}

// BeginFrame clears edge flags (pressed/released) while preserving the
// down state, then samples the platform for this frame's key and mouse
// state restricted to the watched sets.
func (s *State) BeginFrame(watched []Key, watchedButtons []MouseButton) {
	for k := range s.pressed {
		delete(s.pressed, k)
	}
	for k := range s.released {
		delete(s.released, k)
	}
	for b := range s.mousePressed {
		delete(s.mousePressed, b)
	}
	for b := range s.mouseReleased {
		delete(s.mouseReleased, b)
	}

	for _, k := range watched {
		wasDown := s.down[k]
		isDown := s.sampler.IsKeyDown(int32(k))
		if isDown && !wasDown {
			s.pressed[k] = true
		}
		if !isDown && wasDown {
			s.released[k] = true
		}
		s.down[k] = isDown
	}

	for _, b := range watchedButtons {
		wasDown := s.mouseDown[b]
		isDown := s.sampler.IsMouseButtonDown(int32(b))
		if isDown && !wasDown {
			s.mousePressed[b] = true
		}
		if !isDown && wasDown {
			s.mouseReleased[b] = true
		}
		s.mouseDown[b] = isDown
	}

	s.MousePos = s.sampler.MousePosition()
}

// Down reports whether k is currently held. Unknown keys return false.
func (s *State) Down(k Key) bool { return s.down[k] }

// Pressed reports whether k transitioned up->down this frame.
func (s *State) Pressed(k Key) bool { return s.pressed[k] }

// Released reports whether k transitioned down->up this frame.
func (s *State) Released(k Key) bool { return s.released[k] }

// MouseDown reports whether b is currently held.
func (s *State) MouseDown(b MouseButton) bool { return s.mouseDown[b] }

// MousePressed reports whether b transitioned up->down this frame.
func (s *State) MousePressed(b MouseButton) bool { return s.mousePressed[b] }

// MouseReleased reports whether b transitioned down->up this frame.
func (s *State) MouseReleased(b MouseButton) bool { return s.mouseReleased[b] }
