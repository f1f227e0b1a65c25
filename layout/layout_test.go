package layout

import (
	"testing"

	"schem/netlist"
)

func testDatasheets() netlist.Datasheets {
	return netlist.Datasheets{
		"7400": {
			1: {Type: "NAND"}, 2: {Type: "NAND"},
			3: {Type: "NAND"}, 4: {Type: "NAND"},
		},
		"7404": {1: {Type: "NOT"}},
	}
}

func TestChipHeight(t *testing.T) {
	ds := testDatasheets()

	if h := ChipHeight("7400", ds); h != 480 {
		t.Errorf("four-gate chip height: got %v, want 480", h)
	}
	// Single gate still gets the minimum box.
	if h := ChipHeight("7404", ds); h != 180 {
		t.Errorf("single-gate chip height: got %v, want 180", h)
	}
	if h := ChipHeight("unknown", ds); h != 160 {
		t.Errorf("unknown chip should get the minimum: got %v", h)
	}
}

func TestPlaceLayers(t *testing.T) {
	ds := testDatasheets()
	chips := []netlist.Chip{
		{ID: "U1", Type: "7404", Layer: 0},
		{ID: "U2", Type: "7404", Layer: 0},
		{ID: "U3", Type: "7400", Layer: 1},
	}

	p := Place(chips, ds)

	u1 := p.Positions["U1"]
	u2 := p.Positions["U2"]
	u3 := p.Positions["U3"]

	if u1.X != u2.X {
		t.Errorf("same-layer chips should share a column: %v vs %v", u1.X, u2.X)
	}
	if u2.Y <= u1.Y {
		t.Errorf("same-layer chips should stack downward: %v then %v", u1.Y, u2.Y)
	}
	if u3.X != u1.X+LayerSpacingX {
		t.Errorf("next layer column: got %v, want %v", u3.X, u1.X+LayerSpacingX)
	}
	if u3.Y != StartY {
		t.Errorf("each layer starts at the top: got %v", u3.Y)
	}

	if p.CanvasW <= u3.X || p.CanvasH <= u2.Y {
		t.Errorf("canvas %vx%v does not cover the placement", p.CanvasW, p.CanvasH)
	}
}

func TestPlaceDeterministic(t *testing.T) {
	ds := testDatasheets()
	chips := []netlist.Chip{
		{ID: "U1", Type: "7404", Layer: 2},
		{ID: "U2", Type: "7400", Layer: 0},
		{ID: "U3", Type: "7404", Layer: 1},
	}

	first := Place(chips, ds)
	for i := 0; i < 5; i++ {
		again := Place(chips, ds)
		for id, pos := range first.Positions {
			if again.Positions[id] != pos {
				t.Fatalf("placement not deterministic for %s", id)
			}
		}
	}
}
