package game

import (
	"testing"

	"github.com/forge2d/forge2d/input"
	"github.com/forge2d/forge2d/math2d"
)

type fakeSampler struct {
	down map[input.Key]bool
}

func (f fakeSampler) IsKeyDown(key int32) bool     { return f.down[input.Key(key)] }
func (f fakeSampler) IsMouseButtonDown(int32) bool { return false }
func (f fakeSampler) MousePosition() math2d.Vec2   { return math2d.Vec2{} }

func TestInputAdapterForwardsEdgeState(t *testing.T) {
	sampler := fakeSampler{down: map[input.Key]bool{input.Key(65): true}}
	in := input.NewWithSampler(sampler)
	in.BeginFrame([]input.Key{65}, nil)

	adp := inputAdapter{s: in}
	if !adp.Down(65) {
		t.Fatal("expected key 65 to be down")
	}
	if !adp.Pressed(65) {
		t.Fatal("expected key 65 to have just been pressed")
	}
	if adp.Released(65) {
		t.Fatal("did not expect key 65 to be released")
	}

	// Second frame with the key still down: pressed should clear.
	in.BeginFrame([]input.Key{65}, nil)
	if adp.Pressed(65) {
		t.Fatal("expected pressed to clear on the following frame")
	}
	if !adp.Down(65) {
		t.Fatal("expected key 65 to still be down")
	}
}

func TestInputAdapterUnknownKeyIsFalse(t *testing.T) {
	in := input.New()
	adp := inputAdapter{s: in}
	if adp.Down(999) || adp.Pressed(999) || adp.Released(999) {
		t.Fatal("expected an unwatched key to report false for every edge")
	}
}
