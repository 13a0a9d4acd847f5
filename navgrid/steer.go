package navgrid

import (
	"math"

	"github.com/forge2d/forge2d/math2d"
)

// SteerParams tunes the local probe-ray avoidance used by Steer.
// Grounded on pthm-soup/systems/pathfinding.go's context-steering
// approach, kept as an additive capability alongside FindPath rather
// than a replacement for it.
type SteerParams struct {
	ProbeCount   int
	ProbeLength  float32
	FieldOfView  float32 // radians, centered on the desired heading
}

// DefaultSteerParams mirrors the teacher's tuned defaults.
func DefaultSteerParams() SteerParams {
	return SteerParams{
		ProbeCount:  7,
		ProbeLength: 2.0,
		FieldOfView: math.Pi,
	}
}

// Steer returns a steering direction close to desiredHeading that
// avoids blocked cells, probing ProbeCount rays spread across
// FieldOfView centered on desiredHeading. Falls back to desiredHeading
// if every probe is blocked.
func (g *PathfindingGrid) Steer(pos math2d.Vec2, desiredHeading float32, params SteerParams) float32 {
	if params.ProbeCount <= 1 {
		return desiredHeading
	}

	bestAngle := desiredHeading
	bestScore := float32(-1)

	half := params.FieldOfView / 2
	step := params.FieldOfView / float32(params.ProbeCount-1)

	for i := 0; i < params.ProbeCount; i++ {
		angle := desiredHeading - half + step*float32(i)
		dir := math2d.FromAngle(angle)
		end := pos.Add(dir.Scale(params.ProbeLength * g.CellSize))

		clear := g.isSegmentClear(pos, end)
		if !clear {
			continue
		}

		// Prefer directions closer to the desired heading.
		delta := angularDistance(angle, desiredHeading)
		score := 1 - delta/(math.Pi)
		if score > bestScore {
			bestScore = score
			bestAngle = angle
		}
	}

	return bestAngle
}

func (g *PathfindingGrid) isSegmentClear(a, b math2d.Vec2) bool {
	const samples = 8
	for i := 0; i <= samples; i++ {
		t := float32(i) / samples
		p := a.Lerp(b, t)
		c, r := g.WorldToGrid(p)
		if !g.IsWalkable(c, r) {
			return false
		}
	}
	return true
}

func angularDistance(a, b float32) float32 {
	d := a - b
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	if d < 0 {
		d = -d
	}
	return d
}
