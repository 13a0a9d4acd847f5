package renderer

import "github.com/forge2d/forge2d/components"

// TileUVRect returns the normalized source rectangle for tileID within
// a tileset of tilesetCols columns, or false for the empty tile (id
// -1, per components.Tilemap.TileAt). Assumes a square tileset grid
// (rows inferred from cols), since components.Tilemap tracks only
// TilesetCols.
func TileUVRect(tileID int32, tilesetCols int) ([4]float32, bool) {
	if tileID < 0 || tilesetCols <= 0 {
		return [4]float32{}, false
	}
	col := int(tileID) % tilesetCols
	row := int(tileID) / tilesetCols
	uvW := 1.0 / float32(tilesetCols)
	return [4]float32{float32(col) * uvW, float32(row) * uvW, uvW, uvW}, true
}

// DrawTilemap queues one sprite per non-empty tile in t, positioned
// with (originX, originY) as the top-left world corner.
func DrawTilemap(f *Frame, t *components.Tilemap, originX, originY float32, z int32) error {
	for row := 0; row < t.Rows; row++ {
		for col := 0; col < t.Columns; col++ {
			id := t.TileAt(col, row)
			if id < 0 {
				continue
			}
			uv, ok := TileUVRect(id, t.TilesetCols)
			if !ok {
				continue
			}
			// DrawSprite centers the quad on (x, y), so offset by half a tile.
			x := originX + float32(col)*float32(t.TileWidth) + float32(t.TileWidth)/2
			y := originY + float32(row)*float32(t.TileHeight) + float32(t.TileHeight)/2
			if err := f.DrawSprite(t.Texture, uv, x, y, float32(t.TileWidth), float32(t.TileHeight), 0, White, false, false, z); err != nil {
				return err
			}
		}
	}
	return nil
}
