package netlist

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"schem/core"
)

// AssignNets groups pins into electrical nets: two pins belong to the same
// net iff they are connected by a chain of point-to-point links. The result
// maps every pin that appears in a connection to its net. Net identity
// drives the router's trunk sharing, so this must run before routing.
//
// Deterministic: net numbering follows the first appearance of each
// component's earliest pin in the connection list.
func AssignNets(conns []Connection) map[core.PinRef]core.NetID {
	ids := make(map[core.PinRef]int64)
	pins := make(map[int64]core.PinRef)
	g := simple.NewUndirectedGraph()

	nodeFor := func(p core.PinRef) int64 {
		id, ok := ids[p]
		if !ok {
			id = int64(len(ids))
			ids[p] = id
			pins[id] = p
			g.AddNode(simple.Node(id))
		}
		return id
	}

	for _, c := range conns {
		from := nodeFor(c.From)
		to := nodeFor(c.To)
		if from == to {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	// Components come back in graph-internal order; sort by the smallest
	// member ID (first appearance in the connection list) so net numbers
	// are stable across runs.
	components := topo.ConnectedComponents(g)
	type comp struct {
		min   int64
		nodes []int64
	}
	ordered := make([]comp, 0, len(components))
	for _, nodes := range components {
		c := comp{min: int64(-1)}
		for _, n := range nodes {
			id := n.ID()
			c.nodes = append(c.nodes, id)
			if c.min < 0 || id < c.min {
				c.min = id
			}
		}
		ordered = append(ordered, c)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].min < ordered[j].min })

	nets := make(map[core.PinRef]core.NetID, len(ids))
	for i, c := range ordered {
		net := core.NetID(fmt.Sprintf("N%d", i+1))
		for _, id := range c.nodes {
			nets[pins[id]] = net
		}
	}
	return nets
}
