// Package grid implements the routing occupancy grid: a discretized map of
// the canvas tracking obstacle cells and per-axis wire occupancy by net.
package grid

import (
	"math"

	"schem/core"
)

// Cell holds the routing state of one grid point. A cell may carry at most
// one horizontal and one vertical occupant at a time; perpendicular crossing
// by different nets is legal, parallel overlap is not.
type Cell struct {
	Obstacle bool
	H        core.NetID // net occupying the horizontal axis, "" if free
	V        core.NetID // net occupying the vertical axis, "" if free
}

// Grid is the occupancy map for one diagram render. It is sized once at
// construction and owned exclusively by the router; obstacles are written
// before any routing and never cleared.
type Grid struct {
	Cols, Rows int
	Resolution float64
	cells      []Cell
}

// New creates a grid covering a canvas of the given pixel dimensions at the
// given resolution (pixels per cell).
func New(canvasWidth, canvasHeight, resolution float64) *Grid {
	cols := int(math.Ceil(canvasWidth/resolution)) + 1
	rows := int(math.Ceil(canvasHeight/resolution)) + 1
	return &Grid{
		Cols:       cols,
		Rows:       rows,
		Resolution: resolution,
		cells:      make([]Cell, cols*rows),
	}
}

// InBounds reports whether the cell lies inside the grid.
func (g *Grid) InBounds(c core.Point) bool {
	return c.X >= 0 && c.X < g.Cols && c.Y >= 0 && c.Y < g.Rows
}

// At returns the cell state at c. Out-of-bounds cells read as obstacles so
// the edge of the canvas is always blocked.
func (g *Grid) At(c core.Point) Cell {
	if !g.InBounds(c) {
		return Cell{Obstacle: true}
	}
	return g.cells[c.X*g.Rows+c.Y]
}

// CellOf converts a pixel point to the nearest grid cell.
func (g *Grid) CellOf(p core.PixelPoint) core.Point {
	return core.Point{
		X: int(math.Round(p.X / g.Resolution)),
		Y: int(math.Round(p.Y / g.Resolution)),
	}
}

// PixelOf converts a grid cell back to its pixel-space position.
func (g *Grid) PixelOf(c core.Point) core.PixelPoint {
	return core.PixelPoint{
		X: float64(c.X) * g.Resolution,
		Y: float64(c.Y) * g.Resolution,
	}
}

// MarkObstacle rasterizes a pixel-space rectangle into obstacle cells.
// Idempotent; the range is clipped to the grid bounds.
func (g *Grid) MarkObstacle(r core.Rect) {
	startCol := int(r.X / g.Resolution)
	endCol := int((r.X + r.W) / g.Resolution)
	startRow := int(r.Y / g.Resolution)
	endRow := int((r.Y + r.H) / g.Resolution)

	if startCol < 0 {
		startCol = 0
	}
	if startRow < 0 {
		startRow = 0
	}
	if endCol >= g.Cols {
		endCol = g.Cols - 1
	}
	if endRow >= g.Rows {
		endRow = g.Rows - 1
	}

	for col := startCol; col <= endCol; col++ {
		for row := startRow; row <= endRow; row++ {
			g.cells[col*g.Rows+row].Obstacle = true
		}
	}
}

// IsFree reports whether the cell is in bounds and not an obstacle.
func (g *Grid) IsFree(c core.Point) bool {
	return g.InBounds(c) && !g.cells[c.X*g.Rows+c.Y].Obstacle
}

// Occupant returns the net occupying the given axis of the cell, or ""
// when the axis is free.
func (g *Grid) Occupant(c core.Point, axis core.Axis) core.NetID {
	cell := g.At(c)
	if axis == core.Horizontal {
		return cell.H
	}
	return cell.V
}

// PassableFor reports whether a wire of the given net may run along the
// given axis through the cell: the axis must be unoccupied or already
// carry the same net.
func (g *Grid) PassableFor(c core.Point, axis core.Axis, net core.NetID) bool {
	occ := g.Occupant(c, axis)
	return occ == "" || occ == net
}

// Commit records a wire of the given net along the given axis through the
// cell. Obstacle cells are skipped so forced relaxed-mode crossings never
// pollute chip interiors.
func (g *Grid) Commit(c core.Point, axis core.Axis, net core.NetID) {
	if !g.InBounds(c) {
		return
	}
	cell := &g.cells[c.X*g.Rows+c.Y]
	if cell.Obstacle {
		return
	}
	if axis == core.Horizontal {
		cell.H = net
	} else {
		cell.V = net
	}
}
