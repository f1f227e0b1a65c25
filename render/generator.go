package render

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"schem/core"
	"schem/layout"
	"schem/netlist"
	"schem/route"
	"schem/symbols"
)

// GridResolution is the routing grid pitch in pixels.
const GridResolution = 10

// Wire is one routed connection, kept for reporting and previewing.
type Wire struct {
	Net    core.NetID
	From   core.PinRef
	To     core.PinRef
	Points []core.PixelPoint
	Failed bool
	Reason string
}

// Length returns the wire's Manhattan length in pixels.
func (w Wire) Length() float64 {
	var total float64
	for i := 1; i < len(w.Points); i++ {
		dx := w.Points[i].X - w.Points[i-1].X
		dy := w.Points[i].Y - w.Points[i-1].Y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		total += dx + dy
	}
	return total
}

// Box is an occupied rectangle on the canvas, labeled for previews.
type Box struct {
	Rect  core.Rect
	Label string
}

// Result is a fully generated schematic.
type Result struct {
	SVG     string
	CanvasW float64
	CanvasH float64
	Boxes   []Box
	Wires   []Wire
}

// Generator drives the whole pipeline: CSV netlist in, routed SVG out.
type Generator struct {
	ChipsCSV       string
	ConnectionsCSV string
	DatasheetCSV   string
	SymbolDir      string // directory holding <TYPE>.svg gate symbols
	Title          string
	Warnf          func(format string, args ...interface{})
}

func (g *Generator) warnf(format string, args ...interface{}) {
	if g.Warnf != nil {
		g.Warnf(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

var wireColors = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231", "#911eb4",
	"#46f0f0", "#f032e6", "#9a6324", "#800000", "#808000",
	"#000075", "#808080",
}

// Generate loads the circuit, places the chips, routes every connection
// and assembles the SVG document.
func (g *Generator) Generate() (*Result, error) {
	circuit, err := netlist.Load(g.ChipsCSV, g.ConnectionsCSV, g.DatasheetCSV)
	if err != nil {
		return nil, err
	}
	lib := symbols.NewLibrary(g.SymbolDir)

	place := layout.Place(circuit.Chips, circuit.Datasheets)

	canvasW := place.CanvasW
	if len(circuit.Outputs) > 0 {
		canvasW += 400
	}
	canvasH := place.CanvasH
	if h := InputsBoxHeight(len(circuit.Inputs)) + 100; len(circuit.Inputs) > 0 && h > canvasH {
		canvasH = h
	}
	if h := OutputsBoxHeight(len(circuit.Outputs)) + 100; len(circuit.Outputs) > 0 && h > canvasH {
		canvasH = h
	}
	canvasH += 500

	renderer := NewRenderer(lib, circuit.Datasheets)
	router := route.NewRouter(canvasW, canvasH, GridResolution)
	router.Warnf = g.warnf

	res := &Result{CanvasW: canvasW, CanvasH: canvasH}

	// Boxes first: rendering records the pin anchors routing needs, and
	// every box becomes a routing obstacle.
	var chipParts []string
	chips := make([]netlist.Chip, len(circuit.Chips))
	copy(chips, circuit.Chips)
	sort.Slice(chips, func(i, j int) bool { return chips[i].ID < chips[j].ID })
	for _, chip := range chips {
		pos, ok := place.Positions[chip.ID]
		if !ok {
			continue
		}
		chipParts = append(chipParts, renderer.ChipSVG(chip, pos.X, pos.Y))
		h := layout.ChipHeight(chip.Type, circuit.Datasheets)
		rect := core.Rect{X: pos.X, Y: pos.Y, W: layout.BoxWidth, H: h}
		router.MarkObstacle(rect.X, rect.Y, rect.W, rect.H)
		res.Boxes = append(res.Boxes, Box{Rect: rect, Label: chip.ID})
	}

	var inputsPart string
	if len(circuit.Inputs) > 0 {
		inputsPart = renderer.InputsBox(50, 50, circuit.Inputs)
		rect := core.Rect{X: 50, Y: 50, W: InputBoxWidth, H: InputsBoxHeight(len(circuit.Inputs))}
		router.MarkObstacle(rect.X, rect.Y, rect.W, rect.H)
		res.Boxes = append(res.Boxes, Box{Rect: rect, Label: "INPUTS"})
	}

	var outputsPart string
	if len(circuit.Outputs) > 0 {
		outputsPart = renderer.OutputsBox(canvasW-350, 50, circuit.Outputs)
		rect := core.Rect{X: canvasW - 350, Y: 50, W: OutputBoxWidth, H: OutputsBoxHeight(len(circuit.Outputs))}
		router.MarkObstacle(rect.X, rect.Y, rect.W, rect.H)
		res.Boxes = append(res.Boxes, Box{Rect: rect, Label: "OUTPUTS"})
	}

	nets := netlist.AssignNets(circuit.Connections)
	netColor := make(map[core.NetID]string)

	var wireParts []string
	for i, conn := range circuit.Connections {
		wire := Wire{From: conn.From, To: conn.To, Net: nets[conn.From]}

		src, okSrc := renderer.Pin(conn.From)
		dst, okDst := renderer.Pin(conn.To)
		switch {
		case !okSrc:
			wire.Failed = true
			wire.Reason = fmt.Sprintf("unknown pin %s", conn.From)
		case !okDst:
			wire.Failed = true
			wire.Reason = fmt.Sprintf("unknown pin %s", conn.To)
		default:
			points, err := router.Route(src, dst, wire.Net, i)
			if err != nil {
				wire.Failed = true
				wire.Reason = err.Error()
				if errors.Is(err, route.ErrNoPath) {
					wire.Points = route.DirectFallback(src, dst)
				}
				g.warnf("connection %s -> %s: %v", conn.From, conn.To, err)
			} else {
				wire.Points = points
			}
		}

		color, ok := netColor[wire.Net]
		if !ok {
			color = wireColors[len(netColor)%len(wireColors)]
			netColor[wire.Net] = color
		}
		if svg := WireSVG(wire.Points, color); svg != "" {
			wireParts = append(wireParts, svg)
		}
		res.Wires = append(res.Wires, wire)
	}

	gateTypes := usedGateTypes(circuit)
	if len(circuit.Outputs) > 0 {
		gateTypes = append(gateTypes, "LED")
	}
	defs := lib.Defs(gateTypes, g.warnf)

	title := g.Title
	if title == "" {
		title = "Circuit Schematic"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n",
		canvasW, canvasH, canvasW, canvasH)
	fmt.Fprintf(&b, "  <rect width=\"100%%\" height=\"100%%\" fill=\"white\"/>\n")
	b.WriteString(defs)
	b.WriteString("\n")
	fmt.Fprintf(&b, "  <text x=\"%g\" y=\"30\" font-family=\"Arial\" font-size=\"20\" font-weight=\"bold\" text-anchor=\"middle\" fill=\"black\">%s</text>\n",
		canvasW/2, title)
	if inputsPart != "" {
		b.WriteString(inputsPart)
		b.WriteString("\n")
	}
	for _, part := range chipParts {
		b.WriteString(part)
		b.WriteString("\n")
	}
	for _, part := range wireParts {
		b.WriteString(part)
		b.WriteString("\n")
	}
	if outputsPart != "" {
		b.WriteString(outputsPart)
		b.WriteString("\n")
	}
	b.WriteString("</svg>\n")

	res.SVG = b.String()
	return res, nil
}

// usedGateTypes collects the distinct gate symbol names the circuit's
// chips need, sorted for stable output.
func usedGateTypes(c *netlist.Circuit) []string {
	seen := make(map[string]bool)
	for _, chip := range c.Chips {
		for _, gate := range c.Datasheets[chip.Type] {
			seen[gate.Type] = true
		}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
