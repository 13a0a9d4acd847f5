package ui

import (
	"testing"

	"github.com/forge2d/forge2d/renderer"
)

func TestLayerClearAndDraw(t *testing.T) {
	l := NewLayer()
	l.AddText(Text{Value: "hi", X: 1, Y: 2, Color: renderer.White})
	l.AddRect(Rect{X: 0, Y: 0, W: 10, H: 10, Color: renderer.White})
	if l.Len() != 2 {
		t.Fatalf("len = %d, want 2", l.Len())
	}

	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("len after clear = %d, want 0", l.Len())
	}
}

func TestLayerDrawQueuesIntoFrame(t *testing.T) {
	l := NewLayer()
	l.AddText(Text{Value: "score"})
	l.AddRect(Rect{W: 4, H: 4})

	f := &renderer.Frame{}
	if err := l.Draw(f); err != nil {
		t.Fatalf("draw: %v", err)
	}
}
