// Package preview renders a generated schematic as a rune matrix for
// quick terminal inspection without opening the SVG.
package preview

import (
	"strings"

	"schem/core"
	"schem/render"
)

// Canvas is a rune matrix with drawing primitives for boxes and
// orthogonal wire paths. Origin is top-left, X rightward, Y downward.
type Canvas struct {
	cells  [][]rune
	width  int
	height int
}

// New creates a blank canvas.
func New(width, height int) *Canvas {
	if width <= 0 || height <= 0 {
		return nil
	}
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = make([]rune, width)
		for x := range cells[y] {
			cells[y][x] = ' '
		}
	}
	return &Canvas{cells: cells, width: width, height: height}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Get returns the rune at a position, or space when out of bounds.
func (c *Canvas) Get(p core.Point) rune {
	if p.X < 0 || p.X >= c.width || p.Y < 0 || p.Y >= c.height {
		return ' '
	}
	return c.cells[p.Y][p.X]
}

// Set places a rune, merging with what is already there. Out-of-bounds
// positions are silently clipped.
func (c *Canvas) Set(p core.Point, ch rune) {
	if p.X < 0 || p.X >= c.width || p.Y < 0 || p.Y >= c.height {
		return
	}
	c.cells[p.Y][p.X] = merge(c.cells[p.Y][p.X], ch)
}

func isWire(r rune) bool {
	switch r {
	case '─', '│', '╮', '╯', '╭', '╰', '┼':
		return true
	}
	return false
}

// merge resolves what happens when a rune lands on an occupied cell:
// perpendicular wire runs become a crossing, and wires never overwrite
// box borders or labels.
func merge(old, ch rune) rune {
	switch {
	case old == ' ':
		return ch
	case old == '─' && ch == '│', old == '│' && ch == '─':
		return '┼'
	case isWire(ch) && !isWire(old):
		return old
	default:
		return ch
	}
}

// DrawBox draws a bordered rectangle with its label inside.
func (c *Canvas) DrawBox(x, y, w, h int, label string) {
	if w < 2 || h < 2 {
		return
	}
	c.Set(core.Point{X: x, Y: y}, '┌')
	c.Set(core.Point{X: x + w - 1, Y: y}, '┐')
	c.Set(core.Point{X: x, Y: y + h - 1}, '└')
	c.Set(core.Point{X: x + w - 1, Y: y + h - 1}, '┘')
	for i := 1; i < w-1; i++ {
		c.Set(core.Point{X: x + i, Y: y}, '━')
		c.Set(core.Point{X: x + i, Y: y + h - 1}, '━')
	}
	for i := 1; i < h-1; i++ {
		c.Set(core.Point{X: x, Y: y + i}, '┃')
		c.Set(core.Point{X: x + w - 1, Y: y + i}, '┃')
	}
	for i, r := range label {
		if i >= w-2 {
			break
		}
		c.Set(core.Point{X: x + 1 + i, Y: y + 1}, r)
	}
}

// DrawPath draws an orthogonal waypoint path with corner runes at the
// turns. Failed paths render as asterisks so they stand out.
func (c *Canvas) DrawPath(points []core.Point, failed bool) {
	if len(points) < 2 {
		return
	}
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		switch {
		case failed:
			c.drawSegment(a, b, '*')
		case a.Y == b.Y:
			c.drawSegment(a, b, '─')
		case a.X == b.X:
			c.drawSegment(a, b, '│')
		default:
			c.drawSegment(a, b, '*')
		}
	}
	if failed {
		return
	}
	for i := 1; i < len(points)-1; i++ {
		if corner := cornerRune(points[i-1], points[i], points[i+1]); corner != 0 {
			c.Set(points[i], corner)
		}
	}
}

// drawSegment walks from a to b one cell at a time. Diagonal inputs
// degrade to a staircase, which only happens for fallback wires.
func (c *Canvas) drawSegment(a, b core.Point, ch rune) {
	x, y := a.X, a.Y
	for {
		c.Set(core.Point{X: x, Y: y}, ch)
		if x == b.X && y == b.Y {
			return
		}
		if x != b.X {
			x += sign(b.X - x)
		} else {
			y += sign(b.Y - y)
		}
	}
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}

func cornerRune(prev, curr, next core.Point) rune {
	from := core.DirectionBetween(prev, curr)
	to := core.DirectionBetween(curr, next)
	switch {
	case from == core.East && to == core.South, from == core.North && to == core.West:
		return '╮'
	case from == core.East && to == core.North, from == core.South && to == core.West:
		return '╯'
	case from == core.West && to == core.South, from == core.North && to == core.East:
		return '╭'
	case from == core.West && to == core.North, from == core.South && to == core.East:
		return '╰'
	}
	return 0
}

// String renders the matrix as newline-joined rows.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.cells[y][x])
		}
		if y < c.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// Render scales a generated schematic down to the given character width
// and draws its boxes and wires. Rows are compressed by half to account
// for terminal cell aspect ratio.
func Render(res *render.Result, width int) string {
	if width <= 0 {
		width = 120
	}
	sx := float64(width-1) / res.CanvasW
	sy := sx * 0.5
	height := int(res.CanvasH*sy) + 1
	c := New(width, height)
	if c == nil {
		return ""
	}

	for _, box := range res.Boxes {
		x := int(box.Rect.X * sx)
		y := int(box.Rect.Y * sy)
		w := int(box.Rect.W * sx)
		h := int(box.Rect.H * sy)
		if w < 2 {
			w = 2
		}
		if h < 2 {
			h = 2
		}
		c.DrawBox(x, y, w, h, box.Label)
	}
	for _, wire := range res.Wires {
		pts := make([]core.Point, len(wire.Points))
		for i, p := range wire.Points {
			pts[i] = core.Point{X: int(p.X * sx), Y: int(p.Y * sy)}
		}
		c.DrawPath(pts, wire.Failed)
	}
	return c.String()
}
