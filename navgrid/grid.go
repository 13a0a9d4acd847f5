// Package navgrid provides a dense uniform-cell grid and 8-connected
// A* pathfinding over boolean walkability, plus a local steering probe
// kept from the teacher for smooth agent avoidance.
//
// Grounded on original_source/forge2d/src/grid.rs and pathfinding.rs
// for the Grid<T>/A* contract, and pthm-soup/systems/pathfinding.go
// for the steering-probe idiom.
package navgrid

import "github.com/forge2d/forge2d/math2d"

// Grid is a dense row-major array of W*H cells of the given cell size.
type Grid[T any] struct {
	Width, Height int
	CellSize      float32
	cells         []T
}

// NewGrid returns a grid of width*height cells, zero-valued.
func NewGrid[T any](width, height int, cellSize float32) *Grid[T] {
	return &Grid[T]{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		cells:    make([]T, width*height),
	}
}

// InBounds reports whether (col,row) is a valid cell.
func (g *Grid[T]) InBounds(col, row int) bool {
	return col >= 0 && col < g.Width && row >= 0 && row < g.Height
}

// At returns the value at (col,row).
func (g *Grid[T]) At(col, row int) T {
	return g.cells[row*g.Width+col]
}

// Set stores v at (col,row).
func (g *Grid[T]) Set(col, row int, v T) {
	g.cells[row*g.Width+col] = v
}

// WorldToGrid converts a world point to grid coordinates via
// floor(world/cell) per axis.
func (g *Grid[T]) WorldToGrid(p math2d.Vec2) (int, int) {
	return int(floorf(p.X / g.CellSize)), int(floorf(p.Y / g.CellSize))
}

// GridToWorld returns the world-space center of cell (col,row).
func (g *Grid[T]) GridToWorld(col, row int) math2d.Vec2 {
	return math2d.Vec2{
		X: (float32(col) + 0.5) * g.CellSize,
		Y: (float32(row) + 0.5) * g.CellSize,
	}
}

func floorf(v float32) float32 {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return float32(i)
}

// PathfindingGrid specializes Grid[bool] for walkability.
type PathfindingGrid struct {
	Grid[bool]
}

// NewPathfindingGrid returns a grid with every cell walkable.
func NewPathfindingGrid(width, height int, cellSize float32) *PathfindingGrid {
	g := &PathfindingGrid{Grid: *NewGrid[bool](width, height, cellSize)}
	for i := range g.cells {
		g.cells[i] = true
	}
	return g
}

// SetWalkable marks (col,row) walkable or blocked.
func (g *PathfindingGrid) SetWalkable(col, row int, walkable bool) {
	g.Set(col, row, walkable)
}

// IsWalkable reports whether (col,row) is in bounds and walkable.
func (g *PathfindingGrid) IsWalkable(col, row int) bool {
	return g.InBounds(col, row) && g.At(col, row)
}

// FillRect marks every cell in [col0,col1] x [row0,row1] (inclusive)
// walkable or blocked.
func (g *PathfindingGrid) FillRect(col0, row0, col1, row1 int, walkable bool) {
	for r := row0; r <= row1; r++ {
		for c := col0; c <= col1; c++ {
			if g.InBounds(c, r) {
				g.SetWalkable(c, r, walkable)
			}
		}
	}
}
