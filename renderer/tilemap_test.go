package renderer

import (
	"testing"

	"github.com/forge2d/forge2d/components"
)

func TestTileUVRect(t *testing.T) {
	rect, ok := TileUVRect(0, 4)
	if !ok || rect != (([4]float32{0, 0, 0.25, 0.25})) {
		t.Fatalf("tile 0 rect = %+v, ok=%v", rect, ok)
	}

	rect, ok = TileUVRect(5, 4)
	if !ok || rect != (([4]float32{0.25, 0.25, 0.25, 0.25})) {
		t.Fatalf("tile 5 rect = %+v, ok=%v", rect, ok)
	}

	if _, ok := TileUVRect(-1, 4); ok {
		t.Fatal("expected empty tile to report false")
	}
}

func TestDrawTilemapSkipsEmpty(t *testing.T) {
	tm := &components.Tilemap{
		Texture: 1, TileWidth: 16, TileHeight: 16,
		Columns: 2, Rows: 1, TilesetCols: 2,
		Tiles: []int32{-1, 0},
	}
	f := newFrame()
	if err := DrawTilemap(f, tm, 0, 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.spriteCount != 1 {
		t.Fatalf("sprite count = %d, want 1", f.spriteCount)
	}
}
