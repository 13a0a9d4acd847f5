package components

import "testing"

func TestDefaultTransformIsUnitScale(t *testing.T) {
	tr := DefaultTransform()
	if tr.Scale.X != 1 || tr.Scale.Y != 1 {
		t.Fatalf("default scale = %v, want {1 1}", tr.Scale)
	}
	if tr.Parent != 0 {
		t.Fatalf("default parent = %v, want 0 (no parent)", tr.Parent)
	}
}

func TestDefaultSpriteIsOpaqueAndVisible(t *testing.T) {
	s := DefaultSprite()
	if !s.Visible {
		t.Fatal("default sprite should be visible")
	}
	if s.Tint != [4]float32{1, 1, 1, 1} {
		t.Fatalf("default tint = %v, want opaque white", s.Tint)
	}
}

func TestTileAtBoundsChecking(t *testing.T) {
	tm := Tilemap{
		TileWidth: 16, TileHeight: 16,
		Columns: 2, Rows: 2,
		Tiles: []int32{0, 1, 2, 3},
	}

	if got := tm.TileAt(1, 1); got != 3 {
		t.Fatalf("tile at (1,1) = %d, want 3", got)
	}
	if got := tm.TileAt(-1, 0); got != -1 {
		t.Fatalf("tile at negative column = %d, want -1", got)
	}
	if got := tm.TileAt(2, 0); got != -1 {
		t.Fatalf("tile at out-of-range column = %d, want -1", got)
	}
}
