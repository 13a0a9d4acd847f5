package navgrid

import (
	"container/heap"

	"golang.org/x/exp/slices"

	"github.com/forge2d/forge2d/math2d"
)

const (
	cardinalCost = 10
	diagonalCost = 14
)

type cell struct{ col, row int }

var neighborOffsets = [8]cell{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func stepCost(dc, dr int) int {
	if dc != 0 && dr != 0 {
		return diagonalCost
	}
	return cardinalCost
}

// manhattan scales the Manhattan distance by half the diagonal cost, so
// a diagonal step (2 units, cost 14) and a cardinal step (1 unit, cost
// 10) are never overestimated.
func manhattan(a, b cell) int {
	return (abs(a.col-b.col) + abs(a.row-b.row)) * (diagonalCost / 2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type openEntry struct {
	c        cell
	f        int
	order    int
	heapIdx  int
}

type openHeap []*openEntry

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	// Tie-break on insertion order, per spec: stable priority-queue order.
	return h[i].order < h[j].order
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIdx = i
	h[j].heapIdx = j
}
func (h *openHeap) Push(x any) {
	e := x.(*openEntry)
	e.heapIdx = len(*h)
	*h = append(*h, e)
}
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// FindPath runs 8-connected A* with 10/14 move costs and a Manhattan
// heuristic (admissible on that metric). Returns false if start or
// goal is non-walkable. start==goal returns a two-point path at that
// cell's center.
func (g *PathfindingGrid) FindPath(start, goal math2d.Vec2) ([]math2d.Vec2, bool) {
	sc, sr := g.WorldToGrid(start)
	gc, gr := g.WorldToGrid(goal)
	startCell := cell{sc, sr}
	goalCell := cell{gc, gr}

	if !g.IsWalkable(startCell.col, startCell.row) || !g.IsWalkable(goalCell.col, goalCell.row) {
		return nil, false
	}
	if startCell == goalCell {
		p := g.GridToWorld(sc, sr)
		return []math2d.Vec2{p, p}, true
	}

	gScore := map[cell]int{startCell: 0}
	cameFrom := map[cell]cell{}
	inOpen := map[cell]*openEntry{}

	h := &openHeap{}
	heap.Init(h)
	order := 0
	start0 := &openEntry{c: startCell, f: manhattan(startCell, goalCell), order: order}
	order++
	heap.Push(h, start0)
	inOpen[startCell] = start0

	closed := map[cell]bool{}

	for h.Len() > 0 {
		cur := heap.Pop(h).(*openEntry)
		delete(inOpen, cur.c)
		if closed[cur.c] {
			continue
		}
		closed[cur.c] = true

		if cur.c == goalCell {
			return reconstructPath(g, cameFrom, goalCell), true
		}

		for _, off := range neighborOffsets {
			n := cell{cur.c.col + off.col, cur.c.row + off.row}
			if !g.IsWalkable(n.col, n.row) || closed[n] {
				continue
			}
			tentative := gScore[cur.c] + stepCost(off.col, off.row)
			if existing, ok := gScore[n]; ok && tentative >= existing {
				continue
			}
			gScore[n] = tentative
			cameFrom[n] = cur.c
			f := tentative + manhattan(n, goalCell)
			if e, ok := inOpen[n]; ok {
				e.f = f
				e.order = order
				order++
				heap.Fix(h, e.heapIdx)
			} else {
				e := &openEntry{c: n, f: f, order: order}
				order++
				heap.Push(h, e)
				inOpen[n] = e
			}
		}
	}

	return nil, false
}

func reconstructPath(g *PathfindingGrid, cameFrom map[cell]cell, goal cell) []math2d.Vec2 {
	path := []cell{goal}
	cur := goal
	for {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	slices.Reverse(path) // path was goal..start; want start..goal.
	out := make([]math2d.Vec2, len(path))
	for i, c := range path {
		out[i] = g.GridToWorld(c.col, c.row)
	}
	return out
}
