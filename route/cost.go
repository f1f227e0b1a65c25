// Package route implements the grid-based detailed wire router: axial
// escape from obstacle interiors, two-phase (strict then relaxed) A*
// search over the occupancy grid, and waypoint post-processing.
package route

// Cost defines the cost model for the A* search. All values are scaled by
// ten relative to a unit step so the shared-trunk discount stays integral.
type Cost struct {
	Step            int // base cost for moving one cell
	SharedStep      int // step along an existing trunk of the same net
	Turn            int // penalty for changing direction
	Crossing        int // penalty for crossing a perpendicular wire
	ObstaclePenalty int // relaxed-mode penalty for entering an obstacle cell
	OverlapPenalty  int // relaxed-mode penalty for running along another net's wire
}

// DefaultCost is tuned for readable schematics: turns and crossings cost
// five steps, shared trunks cost a tenth of a step, and the relaxed-mode
// penalties dwarf any realistic detour so clean paths always win.
var DefaultCost = Cost{
	Step:            10,
	SharedStep:      1,
	Turn:            50,
	Crossing:        50,
	ObstaclePenalty: 100000,
	OverlapPenalty:  50000,
}
