// Package core contains the fundamental types shared by the schematic
// generator: grid coordinates, pixel coordinates, directions and nets.
package core

import "fmt"

// Point represents a 2D coordinate in grid-cell space.
type Point struct {
	X, Y int
}

// PixelPoint represents a 2D coordinate on the drawing canvas.
type PixelPoint struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in pixel space.
type Rect struct {
	X, Y, W, H float64
}

// Contains checks if a pixel point is inside the rectangle.
func (r Rect) Contains(p PixelPoint) bool {
	return p.X >= r.X && p.X < r.X+r.W &&
		p.Y >= r.Y && p.Y < r.Y+r.H
}

// Direction represents a cardinal direction of movement on the grid.
type Direction int

const (
	North Direction = iota
	East
	South
	West
	DirNone
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "None"
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// Axis returns the axis the direction moves along.
func (d Direction) Axis() Axis {
	if d == East || d == West {
		return Horizontal
	}
	return Vertical
}

// Delta returns the unit cell offset for the direction.
func (d Direction) Delta() Point {
	switch d {
	case North:
		return Point{0, -1}
	case East:
		return Point{1, 0}
	case South:
		return Point{0, 1}
	case West:
		return Point{-1, 0}
	default:
		return Point{}
	}
}

// Directions lists the four cardinal directions in neighbor-expansion order.
var Directions = [4]Direction{East, South, West, North}

// Axis identifies which axis a wire segment runs along.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// String returns the string representation of an Axis.
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// NetID identifies an electrical net. Wires on the same net may share
// trunk segments; wires on different nets may only cross perpendicular.
type NetID string

// Path represents a route through the grid.
type Path struct {
	Points []Point
	Cost   int // Accumulated search cost
}

// Length returns the number of points in the path.
func (p Path) Length() int {
	return len(p.Points)
}

// IsEmpty returns true if the path has no points.
func (p Path) IsEmpty() bool {
	return len(p.Points) == 0
}

// DirectionBetween returns the direction from a to b when they differ on
// exactly one axis, and DirNone otherwise.
func DirectionBetween(a, b Point) Direction {
	if a.X == b.X {
		if a.Y < b.Y {
			return South
		} else if a.Y > b.Y {
			return North
		}
	} else if a.Y == b.Y {
		if a.X < b.X {
			return East
		}
		return West
	}
	return DirNone
}

// ManhattanDistance calculates the Manhattan distance between two cells.
func ManhattanDistance(a, b Point) int {
	return Abs(a.X-b.X) + Abs(a.Y-b.Y)
}

// Abs returns the absolute value of an integer.
func Abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// PinRef identifies a single pin on a chip or IO pseudo-chip.
type PinRef struct {
	Chip string
	Pin  string
}

// String formats the pin reference as chip.pin.
func (p PinRef) String() string {
	return fmt.Sprintf("%s.%s", p.Chip, p.Pin)
}
