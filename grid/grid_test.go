package grid

import (
	"testing"

	"schem/core"
)

func TestNewGridDimensions(t *testing.T) {
	g := New(200, 200, 10)
	if g.Cols != 21 || g.Rows != 21 {
		t.Errorf("grid dimensions: got %dx%d, want 21x21", g.Cols, g.Rows)
	}
}

func TestCellConversion(t *testing.T) {
	g := New(200, 200, 10)

	tests := []struct {
		pixel core.PixelPoint
		cell  core.Point
	}{
		{core.PixelPoint{X: 0, Y: 0}, core.Point{X: 0, Y: 0}},
		{core.PixelPoint{X: 100, Y: 50}, core.Point{X: 10, Y: 5}},
		{core.PixelPoint{X: 14, Y: 16}, core.Point{X: 1, Y: 2}},
		{core.PixelPoint{X: 15, Y: 15}, core.Point{X: 2, Y: 2}}, // rounds half up
	}

	for _, tt := range tests {
		if got := g.CellOf(tt.pixel); got != tt.cell {
			t.Errorf("CellOf(%v): got %v, want %v", tt.pixel, got, tt.cell)
		}
	}

	back := g.PixelOf(core.Point{X: 10, Y: 5})
	if back.X != 100 || back.Y != 50 {
		t.Errorf("PixelOf: got %v, want (100,50)", back)
	}
}

func TestMarkObstacle(t *testing.T) {
	g := New(200, 200, 10)
	g.MarkObstacle(core.Rect{X: 50, Y: 50, W: 40, H: 40})

	if g.IsFree(core.Point{X: 7, Y: 7}) {
		t.Error("cell inside obstacle should not be free")
	}
	if !g.IsFree(core.Point{X: 4, Y: 7}) {
		t.Error("cell left of obstacle should be free")
	}
	if !g.IsFree(core.Point{X: 10, Y: 7}) {
		t.Error("cell right of obstacle should be free")
	}
}

func TestMarkObstacleIdempotent(t *testing.T) {
	a := New(200, 200, 10)
	b := New(200, 200, 10)
	r := core.Rect{X: 30, Y: 30, W: 50, H: 20}

	a.MarkObstacle(r)
	b.MarkObstacle(r)
	b.MarkObstacle(r)

	for x := 0; x < a.Cols; x++ {
		for y := 0; y < a.Rows; y++ {
			c := core.Point{X: x, Y: y}
			if a.At(c) != b.At(c) {
				t.Fatalf("cell (%d,%d) differs after double marking", x, y)
			}
		}
	}
}

func TestMarkObstacleClipsToBounds(t *testing.T) {
	g := New(100, 100, 10)
	// Extends well past the canvas on every side; must not panic.
	g.MarkObstacle(core.Rect{X: -50, Y: -50, W: 500, H: 500})
	if g.IsFree(core.Point{X: 0, Y: 0}) {
		t.Error("clipped obstacle should still cover in-bounds cells")
	}
}

func TestOutOfBoundsBlocked(t *testing.T) {
	g := New(100, 100, 10)
	for _, c := range []core.Point{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 11, Y: 0}, {X: 0, Y: 11}} {
		if g.IsFree(c) {
			t.Errorf("out-of-bounds cell %v should be blocked", c)
		}
		if !g.At(c).Obstacle {
			t.Errorf("out-of-bounds cell %v should read as obstacle", c)
		}
	}
}

func TestPassableFor(t *testing.T) {
	g := New(100, 100, 10)
	c := core.Point{X: 5, Y: 5}
	g.Commit(c, core.Horizontal, "A")

	if !g.PassableFor(c, core.Horizontal, "A") {
		t.Error("same net should pass along its own wire")
	}
	if g.PassableFor(c, core.Horizontal, "B") {
		t.Error("different net must not run parallel through an occupied cell")
	}
	if !g.PassableFor(c, core.Vertical, "B") {
		t.Error("perpendicular axis should stay passable for any net")
	}
}

func TestCommitSkipsObstacles(t *testing.T) {
	g := New(100, 100, 10)
	g.MarkObstacle(core.Rect{X: 40, Y: 40, W: 20, H: 20})

	c := core.Point{X: 5, Y: 5}
	g.Commit(c, core.Horizontal, "A")
	if g.Occupant(c, core.Horizontal) != "" {
		t.Error("commit into an obstacle cell must be suppressed")
	}

	free := core.Point{X: 1, Y: 1}
	g.Commit(free, core.Vertical, "A")
	if g.Occupant(free, core.Vertical) != "A" {
		t.Error("commit into a free cell should record the occupant")
	}
}
