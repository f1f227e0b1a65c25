package route

import (
	"container/heap"

	"schem/core"
	"schem/grid"
)

// searchState identifies an A* state: a grid cell plus the direction of the
// move that entered it. Direction matters because turn penalties and the
// no-turn-in-obstacle rule depend on the incoming heading.
type searchState struct {
	Cell core.Point
	Dir  core.Direction
}

// searchNode is one entry in the open set.
type searchNode struct {
	state  searchState
	gCost  int
	fCost  int
	parent *searchNode
	seq    int // insertion sequence, breaks priority ties deterministically
	index  int // heap index
}

// nodeQueue is a priority queue over search nodes ordered by fCost with
// stable insertion-order tie-breaking.
type nodeQueue []*searchNode

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].fCost != q[j].fCost {
		return q[i].fCost < q[j].fCost
	}
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *nodeQueue) Push(x interface{}) {
	n := x.(*searchNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // avoid memory leak
	node.index = -1
	*q = old[0 : n-1]
	return node
}

// searcher runs one A* pass over the grid for a single routing request.
// All working state is allocated per pass and discarded afterwards.
type searcher struct {
	grid     *grid.Grid
	costs    Cost
	net      core.NetID
	relaxed  bool
	maxNodes int
}

// search finds the cheapest Manhattan path from start to target under the
// cost model. It returns the cell path (start to target inclusive) and
// whether the target was reached within the node budget.
func (s *searcher) search(start, target core.Point) ([]core.Point, bool) {
	open := &nodeQueue{}
	heap.Init(open)
	closed := make(map[searchState]bool)
	best := make(map[searchState]*searchNode)

	seq := 0
	startNode := &searchNode{
		state: searchState{Cell: start, Dir: core.DirNone},
		gCost: 0,
		fCost: s.heuristic(start, target),
	}
	heap.Push(open, startNode)
	best[startNode.state] = startNode

	explored := 0
	for open.Len() > 0 {
		explored++
		if explored > s.maxNodes {
			return nil, false
		}

		current := heap.Pop(open).(*searchNode)
		if current.state.Cell == target {
			return reconstruct(current), true
		}
		closed[current.state] = true

		for _, dir := range core.Directions {
			d := dir.Delta()
			next := core.Point{X: current.state.Cell.X + d.X, Y: current.state.Cell.Y + d.Y}
			if !s.grid.InBounds(next) {
				continue
			}

			stepCost, ok := s.moveCost(current.state, next, dir, target)
			if !ok {
				continue
			}

			nextState := searchState{Cell: next, Dir: dir}
			if closed[nextState] {
				continue
			}

			tentative := current.gCost + stepCost
			existing, seen := best[nextState]
			if seen && tentative >= existing.gCost {
				continue
			}
			if seen {
				existing.gCost = tentative
				existing.fCost = tentative + s.heuristic(next, target)
				existing.parent = current
				heap.Fix(open, existing.index)
				continue
			}

			seq++
			node := &searchNode{
				state:  nextState,
				gCost:  tentative,
				fCost:  tentative + s.heuristic(next, target),
				parent: current,
				seq:    seq,
			}
			heap.Push(open, node)
			best[nextState] = node
		}
	}

	return nil, false
}

// moveCost computes the cost of stepping from the current state into next
// moving in dir, or reports the move as forbidden.
func (s *searcher) moveCost(cur searchState, next core.Point, dir core.Direction, target core.Point) (int, bool) {
	cell := s.grid.At(next)
	axis := dir.Axis()

	// Obstacle entry: hard block in strict mode, heavy penalty in relaxed
	// mode. The final target is exempt so pins on chip edges stay reachable.
	isObstacle := cell.Obstacle && next != target
	if isObstacle && !s.relaxed {
		return 0, false
	}

	// A wire may pass straight through a chip body but never bend inside
	// one: it must exit on the heading it entered.
	turning := cur.Dir != core.DirNone && dir != cur.Dir
	if turning && s.grid.At(cur.Cell).Obstacle {
		return 0, false
	}

	// Parallel overlap along the axis of motion.
	occ := s.grid.Occupant(next, axis)
	overlap := occ != "" && occ != s.net
	if overlap && !s.relaxed {
		return 0, false
	}

	cost := s.costs.Step
	if occ == s.net {
		// Trunk reuse: fanout wires of one net converge onto shared runs.
		cost = s.costs.SharedStep
	}
	if isObstacle {
		cost += s.costs.ObstaclePenalty
	}
	if overlap {
		cost += s.costs.OverlapPenalty
	}
	if turning {
		cost += s.costs.Turn
	}

	// Perpendicular crossings are legal but discouraged relative to clear
	// cells.
	if axis == core.Horizontal && cell.V != "" {
		cost += s.costs.Crossing
	}
	if axis == core.Vertical && cell.H != "" {
		cost += s.costs.Crossing
	}

	return cost, true
}

// heuristic is the Manhattan distance weighted by the base step cost.
func (s *searcher) heuristic(from, to core.Point) int {
	return core.ManhattanDistance(from, to) * s.costs.Step
}

// reconstruct walks parent pointers from the goal back to the start and
// reverses the result.
func reconstruct(goal *searchNode) []core.Point {
	var points []core.Point
	for n := goal; n != nil; n = n.parent {
		points = append(points, n.state.Cell)
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points
}
