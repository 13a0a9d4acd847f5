package camera

import (
	"testing"

	"github.com/forge2d/forge2d/math2d"
)

func TestToRaylibUsesZoomAndOffset(t *testing.T) {
	c := math2d.NewCamera2D()
	c.Position = math2d.Vec2{X: 100, Y: 50}
	c.Zoom = 2

	rc := ToRaylib(c, 800, 600)
	if rc.Zoom != 2 {
		t.Fatalf("zoom = %v, want 2", rc.Zoom)
	}
	if rc.Target.X != 100 || rc.Target.Y != 50 {
		t.Fatalf("target = %+v, want (100,50)", rc.Target)
	}
	if rc.Offset.X != 400 || rc.Offset.Y != 300 {
		t.Fatalf("offset = %+v, want (400,300)", rc.Offset)
	}
}

func TestToRaylibAppliesRotationAndExtraOffset(t *testing.T) {
	c := math2d.NewCamera2D()
	c.Offset = math2d.Vec2{X: 10, Y: -5}
	c.Rotation = 3.14159265 / 2

	rc := ToRaylib(c, 800, 600)
	if rc.Offset.X != 410 || rc.Offset.Y != 295 {
		t.Fatalf("offset = %+v, want (410,295)", rc.Offset)
	}
	if rc.Rotation < 89 || rc.Rotation > 91 {
		t.Fatalf("rotation = %v, want ~90 degrees", rc.Rotation)
	}
}

func TestIsVisible(t *testing.T) {
	c := math2d.NewCamera2D()
	c.Position = math2d.Vec2{X: 0, Y: 0}
	c.Zoom = 1

	if !IsVisible(c, 10, 10, 5, 800, 600) {
		t.Fatal("expected point near origin to be visible")
	}
	if IsVisible(c, 10000, 10000, 5, 800, 600) {
		t.Fatal("expected far point to be culled")
	}
}

func TestIsVisibleScalesWithZoom(t *testing.T) {
	c := math2d.NewCamera2D()
	c.Zoom = 4

	if IsVisible(c, 500, 0, 5, 800, 600) {
		t.Fatal("expected point outside zoomed-in viewport to be culled")
	}
	if !IsVisible(c, 90, 0, 5, 800, 600) {
		t.Fatal("expected point inside zoomed-in viewport to be visible")
	}
}
