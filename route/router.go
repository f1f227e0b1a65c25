package route

import (
	"errors"
	"fmt"

	"schem/core"
	"schem/grid"
)

// Routing failure reasons. Failures are local to one request: the router
// never enters an invalid state and stays usable after any of these.
var (
	// ErrNoPath means both the strict and the relaxed search pass
	// exhausted their search space (or the node budget) without reaching
	// the target.
	ErrNoPath = errors.New("no path found")

	// ErrOutOfBounds means an endpoint could not be resolved to a grid
	// cell inside the canvas.
	ErrOutOfBounds = errors.New("endpoint outside canvas bounds")
)

// Router routes wires between pixel-space pin locations over an occupancy
// grid. Requests are processed strictly sequentially: each route commits
// its cells before the next request is solved, which is what makes the
// net-sharing discount and overlap blocking produce merged trunks.
//
// Not safe for concurrent use; the grid is exclusively owned.
type Router struct {
	grid     *grid.Grid
	costs    Cost
	maxNodes int

	// Warnf, when set, receives diagnostics for degraded routing such as
	// escape saturation. Nil disables warnings.
	Warnf func(format string, args ...interface{})
}

// NewRouter creates a router for a canvas of the given pixel dimensions,
// discretized at resolution pixels per grid cell.
func NewRouter(canvasWidth, canvasHeight, resolution float64) *Router {
	return &Router{
		grid:     grid.New(canvasWidth, canvasHeight, resolution),
		costs:    DefaultCost,
		maxNodes: 50000,
	}
}

// Grid exposes the underlying occupancy grid, mainly for visualization.
func (r *Router) Grid() *grid.Grid {
	return r.grid
}

// SetCosts overrides the default cost model.
func (r *Router) SetCosts(c Cost) {
	r.costs = c
}

// SetMaxNodes bounds how many nodes a single search pass may explore
// before the request is converted into a failure.
func (r *Router) SetMaxNodes(n int) {
	r.maxNodes = n
}

// MarkObstacle marks a pixel-space rectangle (chip body, IO box) as a
// routing obstacle. Must be called before any Route call that depends on
// it; idempotent and order-independent between obstacle calls.
func (r *Router) MarkObstacle(x, y, w, h float64) {
	r.grid.MarkObstacle(core.Rect{X: x, Y: y, W: w, H: h})
}

// Route finds an orthogonal wire path from src to dst for the given net
// and commits it to the grid. The returned polyline is an ordered list of
// pixel-space waypoints; consecutive waypoints differ on exactly one axis.
//
// The search runs a strict pass first (obstacles and foreign wires hard
// blocked) and reruns fully relaxed when that fails. A request that fails
// both passes returns ErrNoPath without mutating the grid.
func (r *Router) Route(src, dst core.PixelPoint, net core.NetID, id int) ([]core.PixelPoint, error) {
	sc := r.grid.CellOf(src)
	ec := r.grid.CellOf(dst)
	if !r.grid.InBounds(sc) || !r.grid.InBounds(ec) {
		return nil, fmt.Errorf("route %d: %w", id, ErrOutOfBounds)
	}

	// Escape phase: pins usually sit on chip edges, inside the obstacle
	// rasterization. Saturated escapes degrade gracefully to the original
	// cell and let the relaxed pass try from inside.
	srcEscape, ok := escapePath(r.grid, sc)
	if !ok {
		r.warnf("route %d net %s: no escape from obstacle at source cell (%d,%d)", id, net, sc.X, sc.Y)
	}
	dstEscape, ok := escapePath(r.grid, ec)
	if !ok {
		r.warnf("route %d net %s: no escape from obstacle at target cell (%d,%d)", id, net, ec.X, ec.Y)
	}

	start := srcEscape[len(srcEscape)-1]
	target := dstEscape[len(dstEscape)-1]

	s := &searcher{grid: r.grid, costs: r.costs, net: net, maxNodes: r.maxNodes}
	main, found := s.search(start, target)
	if !found {
		s.relaxed = true
		main, found = s.search(start, target)
	}
	if !found {
		return nil, fmt.Errorf("route %d net %s: %w", id, net, ErrNoPath)
	}

	full := splice(srcEscape, main, dstEscape)
	r.commit(full, net)

	waypoints := Simplify(full)
	return r.toPixels(waypoints, src, dst), nil
}

// splice joins the source escape path, the main search path, and the
// reversed target escape path, deduplicating the shared joint cells.
func splice(srcEscape, main, dstEscape []core.Point) []core.Point {
	full := make([]core.Point, 0, len(srcEscape)+len(main)+len(dstEscape))
	full = append(full, srcEscape...)

	if len(main) > 0 && main[0] == full[len(full)-1] {
		main = main[1:]
	}
	full = append(full, main...)

	for i := len(dstEscape) - 1; i >= 0; i-- {
		if dstEscape[i] == full[len(full)-1] {
			continue
		}
		full = append(full, dstEscape[i])
	}
	return full
}

// commit marks every unit step of the cell path in the grid with the
// request's net. Obstacle cells are skipped by the grid itself.
func (r *Router) commit(path []core.Point, net core.NetID) {
	for i := 0; i < len(path)-1; i++ {
		dir := core.DirectionBetween(path[i], path[i+1])
		if dir == core.DirNone {
			continue
		}
		axis := dir.Axis()
		r.grid.Commit(path[i], axis, net)
		r.grid.Commit(path[i+1], axis, net)
	}
}

// toPixels converts cell waypoints to pixel space and stitches the exact
// pin locations back onto the ends where that keeps the polyline
// axis-aligned (grid snapping rounds pins to cell centers).
func (r *Router) toPixels(waypoints []core.Point, src, dst core.PixelPoint) []core.PixelPoint {
	out := make([]core.PixelPoint, len(waypoints))
	for i, w := range waypoints {
		out[i] = r.grid.PixelOf(w)
	}
	out = stitch(out, src, true)
	out = stitch(out, dst, false)
	return out
}

// stitch replaces or extends a polyline end with the exact pin point when
// the pin shares an axis with the snapped endpoint. A pin off both axes is
// left snapped rather than introducing a diagonal segment.
func stitch(points []core.PixelPoint, exact core.PixelPoint, atStart bool) []core.PixelPoint {
	if len(points) == 0 {
		return points
	}
	end := points[len(points)-1]
	if atStart {
		end = points[0]
	}
	if exact == end {
		return points
	}
	if exact.X != end.X && exact.Y != end.Y {
		return points
	}
	if atStart {
		return append([]core.PixelPoint{exact}, points...)
	}
	return append(points, exact)
}

// DirectFallback returns a three-point horizontal-then-vertical dogleg
// between two pins, used by callers that want to draw something for a
// failed request instead of omitting the wire.
func DirectFallback(src, dst core.PixelPoint) []core.PixelPoint {
	if src.Y == dst.Y || src.X == dst.X {
		return []core.PixelPoint{src, dst}
	}
	return []core.PixelPoint{src, {X: dst.X, Y: src.Y}, dst}
}

func (r *Router) warnf(format string, args ...interface{}) {
	if r.Warnf != nil {
		r.Warnf(format, args...)
	}
}
