package route

import (
	"schem/core"
	"schem/grid"
)

// escapeLimit caps how many cells the axial escape walks in each cardinal
// direction before giving up.
const escapeLimit = 30

// escapePath converts a pin cell that may lie inside an obstacle into a
// usable routing endpoint outside all obstacles. It walks outward along
// each cardinal direction, keeping the perpendicular coordinate fixed so
// the bridging segment is a straight line, and picks the shortest exit.
//
// Returns the cell path from the pin to the escape cell inclusive, and
// whether an escape was found. When the pin is already free the path is
// just the pin cell. When no direction escapes within the limit the
// original cell is returned unchanged and escaped is false; the relaxed
// search pass can still attempt a route from inside the obstacle.
//
// Deterministic and read-only: the grid is never mutated here.
func escapePath(g *grid.Grid, pin core.Point) (path []core.Point, escaped bool) {
	if g.IsFree(pin) {
		return []core.Point{pin}, true
	}

	bestDir := core.DirNone
	bestSteps := escapeLimit + 1
	for _, dir := range core.Directions {
		d := dir.Delta()
		for step := 1; step <= escapeLimit; step++ {
			c := core.Point{X: pin.X + d.X*step, Y: pin.Y + d.Y*step}
			if !g.InBounds(c) {
				break
			}
			if g.IsFree(c) {
				if step < bestSteps {
					bestSteps = step
					bestDir = dir
				}
				break
			}
		}
	}

	if bestDir == core.DirNone {
		return []core.Point{pin}, false
	}

	d := bestDir.Delta()
	path = make([]core.Point, 0, bestSteps+1)
	for step := 0; step <= bestSteps; step++ {
		path = append(path, core.Point{X: pin.X + d.X*step, Y: pin.Y + d.Y*step})
	}
	return path, true
}
