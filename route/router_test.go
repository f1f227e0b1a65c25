package route

import (
	"errors"
	"testing"

	"schem/core"
)

// assertOrthogonal fails the test if any consecutive waypoint pair differs
// on more than one axis.
func assertOrthogonal(t *testing.T, points []core.PixelPoint) {
	t.Helper()
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		if a.X != b.X && a.Y != b.Y {
			t.Errorf("diagonal segment (%v,%v) -> (%v,%v)", a.X, a.Y, b.X, b.Y)
		}
	}
}

func TestRouteStraightLine(t *testing.T) {
	tests := []struct {
		name     string
		src, dst core.PixelPoint
	}{
		{"horizontal", core.PixelPoint{X: 0, Y: 50}, core.PixelPoint{X: 100, Y: 50}},
		{"vertical", core.PixelPoint{X: 50, Y: 0}, core.PixelPoint{X: 50, Y: 100}},
		{"horizontal reversed", core.PixelPoint{X: 100, Y: 50}, core.PixelPoint{X: 0, Y: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(200, 200, 10)
			points, err := r.Route(tt.src, tt.dst, "A", 0)
			if err != nil {
				t.Fatalf("route failed: %v", err)
			}
			if len(points) != 2 {
				t.Fatalf("straight route on an empty grid should be 2 points, got %d: %v", len(points), points)
			}
			if points[0] != tt.src || points[1] != tt.dst {
				t.Errorf("got %v -> %v, want %v -> %v", points[0], points[1], tt.src, tt.dst)
			}
		})
	}
}

func TestRouteDetoursAroundObstacle(t *testing.T) {
	r := NewRouter(200, 200, 10)
	r.MarkObstacle(50, 50, 40, 40)

	points, err := r.Route(core.PixelPoint{X: 0, Y: 50}, core.PixelPoint{X: 100, Y: 50}, "A", 0)
	if err != nil {
		t.Fatalf("route failed: %v", err)
	}
	assertOrthogonal(t, points)

	if len(points) < 4 {
		t.Errorf("detour should need at least 4 waypoints, got %d: %v", len(points), points)
	}

	// The strict pass must not touch the chip interior; the detour goes
	// around via y=40 or below y=90.
	body := core.Rect{X: 51, Y: 51, W: 38, H: 38}
	for i := 0; i < len(points)-1; i++ {
		for _, p := range sampleSegment(points[i], points[i+1]) {
			if body.Contains(p) {
				t.Fatalf("segment %v->%v passes through the obstacle interior", points[i], points[i+1])
			}
		}
	}
}

// sampleSegment walks an axis-aligned pixel segment in unit steps.
func sampleSegment(a, b core.PixelPoint) []core.PixelPoint {
	var out []core.PixelPoint
	dx, dy := 0.0, 0.0
	if b.X > a.X {
		dx = 1
	} else if b.X < a.X {
		dx = -1
	}
	if b.Y > a.Y {
		dy = 1
	} else if b.Y < a.Y {
		dy = -1
	}
	p := a
	for p != b {
		out = append(out, p)
		p.X += dx
		p.Y += dy
	}
	return append(out, b)
}

func TestTrunkSharingSameNet(t *testing.T) {
	r := NewRouter(200, 200, 10)

	if _, err := r.Route(core.PixelPoint{X: 0, Y: 0}, core.PixelPoint{X: 100, Y: 0}, "N", 0); err != nil {
		t.Fatalf("first route failed: %v", err)
	}

	points, err := r.Route(core.PixelPoint{X: 0, Y: 0}, core.PixelPoint{X: 100, Y: 50}, "N", 1)
	if err != nil {
		t.Fatalf("second route failed: %v", err)
	}
	assertOrthogonal(t, points)

	// The shared-trunk discount should pull the second route along the
	// committed wire all the way to (100,0) before it turns south.
	reused := false
	for _, p := range points {
		if p.X == 100 && p.Y == 0 {
			reused = true
		}
	}
	if !reused {
		t.Errorf("second route should reuse the trunk through (100,0), got %v", points)
	}
}

func TestDifferentNetsDoNotOverlap(t *testing.T) {
	r := NewRouter(200, 200, 10)

	if _, err := r.Route(core.PixelPoint{X: 0, Y: 0}, core.PixelPoint{X: 100, Y: 0}, "A", 0); err != nil {
		t.Fatalf("first route failed: %v", err)
	}

	points, err := r.Route(core.PixelPoint{X: 0, Y: 0}, core.PixelPoint{X: 100, Y: 0}, "B", 1)
	if err != nil {
		t.Fatalf("second route failed: %v", err)
	}
	assertOrthogonal(t, points)

	// Net B may cross net A perpendicular but must not run along y=0
	// where A's wire already sits.
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		if a.Y == 0 && b.Y == 0 && a.X != b.X {
			t.Errorf("net B runs parallel on top of net A: %v -> %v", a, b)
		}
	}
}

func TestEscapeFromObstacleInterior(t *testing.T) {
	r := NewRouter(200, 200, 10)
	r.MarkObstacle(40, 40, 40, 40)

	var warned bool
	r.Warnf = func(string, ...interface{}) { warned = true }

	src := core.PixelPoint{X: 60, Y: 60} // strictly inside the chip body
	points, err := r.Route(src, core.PixelPoint{X: 150, Y: 60}, "E", 0)
	if err != nil {
		t.Fatalf("route failed: %v", err)
	}
	assertOrthogonal(t, points)
	if warned {
		t.Error("escape succeeded, no saturation warning expected")
	}

	if points[0] != src {
		t.Fatalf("polyline should start at the pin, got %v", points[0])
	}
	if len(points) < 2 {
		t.Fatal("polyline too short")
	}
	// First segment bridges straight out of the obstacle.
	if points[0].X != points[1].X && points[0].Y != points[1].Y {
		t.Errorf("escape segment is not axis-aligned: %v -> %v", points[0], points[1])
	}
	body := core.Rect{X: 40, Y: 40, W: 40, H: 40}
	if body.Contains(points[1]) {
		// One cell of slack: the escape ends on the first free cell,
		// which sits just outside the marked block.
		t.Errorf("escape point %v still inside the obstacle", points[1])
	}
}

func TestNoTurnInsideObstacle(t *testing.T) {
	r := NewRouter(200, 200, 10)
	// A wall across the full canvas width: the strict pass cannot succeed,
	// the relaxed pass must cross straight through without bending inside.
	r.MarkObstacle(0, 40, 200, 20)

	points, err := r.Route(core.PixelPoint{X: 50, Y: 0}, core.PixelPoint{X: 50, Y: 100}, "T", 0)
	if err != nil {
		t.Fatalf("relaxed route failed: %v", err)
	}
	assertOrthogonal(t, points)

	for _, p := range points[1 : len(points)-1] {
		if p.Y > 40 && p.Y < 60 {
			t.Errorf("turn waypoint %v inside the obstacle band", p)
		}
	}
}

func TestNodeBudgetConvertsToFailure(t *testing.T) {
	r := NewRouter(500, 500, 10)
	r.SetMaxNodes(3)

	_, err := r.Route(core.PixelPoint{X: 0, Y: 0}, core.PixelPoint{X: 490, Y: 490}, "X", 0)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("exhausted budget should report ErrNoPath, got %v", err)
	}

	// Failures are per-request: the router stays usable.
	r.SetMaxNodes(50000)
	if _, err := r.Route(core.PixelPoint{X: 0, Y: 0}, core.PixelPoint{X: 100, Y: 0}, "X", 1); err != nil {
		t.Fatalf("router unusable after a failed request: %v", err)
	}
}

func TestRouteOutOfBounds(t *testing.T) {
	r := NewRouter(100, 100, 10)
	_, err := r.Route(core.PixelPoint{X: -500, Y: 0}, core.PixelPoint{X: 50, Y: 50}, "A", 0)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("want ErrOutOfBounds, got %v", err)
	}
}

func TestDirectFallback(t *testing.T) {
	points := DirectFallback(core.PixelPoint{X: 0, Y: 0}, core.PixelPoint{X: 30, Y: 40})
	if len(points) != 3 {
		t.Fatalf("dogleg fallback should have 3 points, got %v", points)
	}
	assertOrthogonal(t, points)

	straight := DirectFallback(core.PixelPoint{X: 0, Y: 10}, core.PixelPoint{X: 50, Y: 10})
	if len(straight) != 2 {
		t.Fatalf("collinear fallback should have 2 points, got %v", straight)
	}
}
