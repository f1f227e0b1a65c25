package route

import "schem/core"

// Simplify collapses a raw cell-by-cell path into direction-change
// waypoints and cleans up routing artifacts: exact back-and-forth
// reversals, self-intersecting loops, and consecutive collinear segments.
// The passes run until nothing changes (cutting a loop can expose a new
// reversal), so running Simplify on its own output is a fixed point.
func Simplify(points []core.Point) []core.Point {
	pts := reduceToTurns(points)
	for {
		next := collapseCycles(pts)
		next = removeBacktracks(next)
		next = reduceToTurns(next)
		if equalPoints(next, pts) {
			return next
		}
		pts = next
	}
}

func equalPoints(a, b []core.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// reduceToTurns keeps only the endpoints and the points where the path
// changes direction. Duplicate consecutive points are dropped, and
// consecutive collinear segments moving the same way merge into one.
func reduceToTurns(points []core.Point) []core.Point {
	if len(points) <= 2 {
		return dedupe(points)
	}

	points = dedupe(points)
	if len(points) <= 2 {
		return points
	}

	out := []core.Point{points[0]}
	for i := 1; i < len(points)-1; i++ {
		in := core.DirectionBetween(points[i-1], points[i])
		next := core.DirectionBetween(points[i], points[i+1])
		if in != next {
			out = append(out, points[i])
		}
	}
	return append(out, points[len(points)-1])
}

// dedupe removes consecutive duplicate points.
func dedupe(points []core.Point) []core.Point {
	if len(points) == 0 {
		return points
	}
	out := points[:1]
	for _, p := range points[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// removeBacktracks drops waypoints where the path reverses exactly along
// the segment it just traversed (A -> B -> back toward A).
func removeBacktracks(points []core.Point) []core.Point {
	changed := true
	for changed && len(points) > 2 {
		changed = false
		for i := 1; i < len(points)-1; i++ {
			in := core.DirectionBetween(points[i-1], points[i])
			out := core.DirectionBetween(points[i], points[i+1])
			if in != core.DirNone && out == in.Opposite() {
				points = append(points[:i], points[i+1:]...)
				changed = true
				break
			}
		}
	}
	return points
}

// collapseCycles removes loops: when an earlier waypoint coincides with a
// later waypoint, or lies exactly on a later segment, everything between
// is cut out.
func collapseCycles(points []core.Point) []core.Point {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(points)-1 && !changed; i++ {
			// Coincident waypoint later in the path.
			for j := len(points) - 1; j > i; j-- {
				if points[j] == points[i] {
					points = append(points[:i+1], points[j+1:]...)
					changed = true
					break
				}
			}
			if changed {
				break
			}
			// Earlier waypoint sitting on a later segment.
			for j := i + 1; j < len(points)-1; j++ {
				if onSegment(points[i], points[j], points[j+1]) {
					points = append(points[:i+1], points[j+1:]...)
					changed = true
					break
				}
			}
		}
	}
	return points
}

// onSegment reports whether p lies strictly within the axis-aligned
// segment a-b (endpoints excluded, those are handled as coincidences).
func onSegment(p, a, b core.Point) bool {
	if p == a || p == b {
		return false
	}
	if a.X == b.X && p.X == a.X {
		lo, hi := a.Y, b.Y
		if lo > hi {
			lo, hi = hi, lo
		}
		return p.Y > lo && p.Y < hi
	}
	if a.Y == b.Y && p.Y == a.Y {
		lo, hi := a.X, b.X
		if lo > hi {
			lo, hi = hi, lo
		}
		return p.X > lo && p.X < hi
	}
	return false
}
