package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"schem/core"
	"schem/netlist"
	"schem/symbols"
)

const testDatasheetCSV = `chip_type,gate_num,input_pins,output_pin,gate_type,vcc_pin,gnd_pin,total_pins
7400,1,"1,2",3,NAND,14,7,14
7404,1,1,2,NOT,14,7,14
`

const testChipsCSV = `chip_id,chip_type,gate_num,layer
U1,7400,1,0
U2,7404,1,1
`

const testConnectionsCSV = `from_chip,from_pin,to_chip,to_pin
input,A,U1,1
input,B,U1,2
U1,3,U2,1
U2,2,output,Y
`

const testSymbolSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 512 512">
  <path fill="#1a1a1a" d="M64 96 L320 96 L448 256 L320 416 L64 416 Z"/>
</svg>`

func writeFixture(t *testing.T) (chips, conns, ds, symDir string) {
	t.Helper()
	dir := t.TempDir()

	chips = filepath.Join(dir, "chips.csv")
	conns = filepath.Join(dir, "connections.csv")
	ds = filepath.Join(dir, "datasheet.csv")
	symDir = filepath.Join(dir, "symbols")
	if err := os.Mkdir(symDir, 0o755); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		chips: testChipsCSV,
		conns: testConnectionsCSV,
		ds:    testDatasheetCSV,
		filepath.Join(symDir, "NAND.svg"): testSymbolSVG,
		filepath.Join(symDir, "NOT.svg"):  testSymbolSVG,
		filepath.Join(symDir, "LED.svg"):  testSymbolSVG,
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return chips, conns, ds, symDir
}

func generateFixture(t *testing.T) *Result {
	t.Helper()
	chips, conns, ds, symDir := writeFixture(t)
	gen := &Generator{
		ChipsCSV:       chips,
		ConnectionsCSV: conns,
		DatasheetCSV:   ds,
		SymbolDir:      symDir,
		Title:          "Test Circuit",
		Warnf:          t.Logf,
	}
	res, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return res
}

func TestGenerateProducesDocument(t *testing.T) {
	res := generateFixture(t)

	for _, want := range []string{
		"<svg xmlns=",
		"Test Circuit",
		`<symbol id="NAND"`,
		`<symbol id="NOT"`,
		`<symbol id="LED"`,
		"INPUTS",
		"OUTPUTS",
		"7400",
		"7404",
		"<polyline",
		"</svg>",
	} {
		if !strings.Contains(res.SVG, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestGenerateRoutesAllConnections(t *testing.T) {
	res := generateFixture(t)

	if len(res.Wires) != 4 {
		t.Fatalf("want 4 wires, got %d", len(res.Wires))
	}
	for _, w := range res.Wires {
		if w.Failed {
			t.Errorf("wire %s -> %s failed: %s", w.From, w.To, w.Reason)
			continue
		}
		if len(w.Points) < 2 {
			t.Errorf("wire %s -> %s has %d points", w.From, w.To, len(w.Points))
		}
		for i := 1; i < len(w.Points); i++ {
			a, b := w.Points[i-1], w.Points[i]
			if a.X != b.X && a.Y != b.Y {
				t.Errorf("wire %s -> %s has diagonal segment %v -> %v", w.From, w.To, a, b)
			}
		}
	}
}

func TestGenerateFanoutSharesNet(t *testing.T) {
	res := generateFixture(t)

	// input A and input B feed the same NAND gate but are distinct nets,
	// while U1.3 -> U2.1 and U2.2 -> Y are separate nets again.
	netA := res.Wires[0].Net
	netB := res.Wires[1].Net
	if netA == netB {
		t.Errorf("independent inputs must not share a net: %v", netA)
	}
}

func TestGenerateBoxesCoverChipsAndIO(t *testing.T) {
	res := generateFixture(t)

	labels := make(map[string]bool)
	for _, box := range res.Boxes {
		labels[box.Label] = true
		if box.Rect.W <= 0 || box.Rect.H <= 0 {
			t.Errorf("box %s has degenerate rect %+v", box.Label, box.Rect)
		}
	}
	for _, want := range []string{"U1", "U2", "INPUTS", "OUTPUTS"} {
		if !labels[want] {
			t.Errorf("missing box %s", want)
		}
	}
}

func TestChipSVGRecordsPinAnchors(t *testing.T) {
	ds, err := netlist.ReadDatasheets(strings.NewReader(testDatasheetCSV))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(symbols.NewLibrary(t.TempDir()), ds)

	chip := netlist.Chip{ID: "U1", Type: "7400", GateNum: 1, VccPin: 14, GndPin: 7}
	svg := r.ChipSVG(chip, 100, 200)

	if !strings.Contains(svg, "VCC:14") || !strings.Contains(svg, "GND:7") {
		t.Error("power footer missing")
	}

	for _, pin := range []string{"1", "2", "3"} {
		p, ok := r.Pin(core.PinRef{Chip: "U1", Pin: pin})
		if !ok {
			t.Errorf("pin %s not recorded", pin)
			continue
		}
		if p.X < 100 || p.X > 100+220 || p.Y < 200 {
			t.Errorf("pin %s anchor %v outside chip box", pin, p)
		}
	}

	// The output pin sits on the gate's right edge, inputs on the left.
	in, _ := r.Pin(core.PinRef{Chip: "U1", Pin: "1"})
	out, _ := r.Pin(core.PinRef{Chip: "U1", Pin: "3"})
	if out.X <= in.X {
		t.Errorf("output anchor %v should be right of input anchor %v", out, in)
	}
}

func TestInputsBoxAnchorsOutsideBox(t *testing.T) {
	r := NewRenderer(symbols.NewLibrary(t.TempDir()), nil)
	r.InputsBox(50, 50, []netlist.Input{{Name: "A"}, {Name: "B"}})

	for _, name := range []string{"A", "B"} {
		p, ok := r.Pin(core.PinRef{Chip: "input", Pin: name})
		if !ok {
			t.Fatalf("input %s not recorded", name)
		}
		if p.X <= 50+InputBoxWidth {
			t.Errorf("input %s anchor %v should clear the box edge", name, p)
		}
	}
}

func TestOutputsBoxAnchorsOnBottomEdge(t *testing.T) {
	r := NewRenderer(symbols.NewLibrary(t.TempDir()), nil)
	r.OutputsBox(900, 50, []netlist.Output{{Name: "Y"}})

	p, ok := r.Pin(core.PinRef{Chip: "output", Pin: "Y"})
	if !ok {
		t.Fatal("output Y not recorded")
	}
	if p.Y != 50+OutputsBoxHeight(1) {
		t.Errorf("output anchor %v should sit on the box bottom edge", p)
	}
}
