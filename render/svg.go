// Package render emits the SVG schematic: chip boxes with gate symbols,
// IO boxes, and routed wire polylines. It also records the pixel-space pin
// anchors that the router consumes as endpoints.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"schem/core"
	"schem/layout"
	"schem/netlist"
	"schem/symbols"
)

// Geometry constants for gate glyphs and IO boxes.
const (
	GateWidth  = 80
	GateHeight = 80

	InputSize     = 40
	InputSpacing  = 15
	InputBoxWidth = 120

	OutputSize     = 50
	OutputSpacing  = 20
	OutputBoxWidth = 150
)

// InputsBoxHeight returns the IO box height for n inputs.
func InputsBoxHeight(n int) float64 {
	return 60 + float64(n)*(InputSize+InputSpacing)
}

// OutputsBoxHeight returns the IO box height for n outputs.
func OutputsBoxHeight(n int) float64 {
	return 60 + float64(n)*(OutputSize+OutputSpacing)
}

// Renderer builds SVG fragments for the diagram and accumulates pin
// anchors under chip ID and pin name ("input"/"output" hold the IO
// pseudo-chips).
type Renderer struct {
	lib  *symbols.Library
	ds   netlist.Datasheets
	pins map[string]map[string]core.PixelPoint
}

// NewRenderer creates a renderer over a symbol library and datasheets.
func NewRenderer(lib *symbols.Library, ds netlist.Datasheets) *Renderer {
	return &Renderer{
		lib:  lib,
		ds:   ds,
		pins: make(map[string]map[string]core.PixelPoint),
	}
}

// Pin resolves a pin reference to its recorded canvas anchor.
func (r *Renderer) Pin(ref core.PinRef) (core.PixelPoint, bool) {
	p, ok := r.pins[ref.Chip][ref.Pin]
	return p, ok
}

func (r *Renderer) recordPin(chip, pin string, p core.PixelPoint) {
	if r.pins[chip] == nil {
		r.pins[chip] = make(map[string]core.PixelPoint)
	}
	r.pins[chip][pin] = p
}

// ChipSVG renders one chip: the container box, every gate of its type
// with pin number labels, and the VCC/GND footer. Pin anchors for all
// gates are recorded as a side effect.
func (r *Renderer) ChipSVG(chip netlist.Chip, x, y float64) string {
	var b strings.Builder

	gates := r.ds[chip.Type]
	boxH := layout.ChipHeight(chip.Type, r.ds)

	fmt.Fprintf(&b, "    <rect x=\"%g\" y=\"%g\" width=\"%d\" height=\"%g\" fill=\"none\" stroke=\"black\" stroke-width=\"2\" rx=\"5\"/>\n",
		x, y, layout.BoxWidth, boxH)
	fmt.Fprintf(&b, "    <text x=\"%g\" y=\"%g\" font-family=\"Arial\" font-size=\"16\" font-weight=\"bold\" text-anchor=\"middle\" fill=\"black\">%s</text>\n",
		x+layout.BoxWidth/2, y+25, chip.Type)

	nums := make([]int, 0, len(gates))
	for n := range gates {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	gateLetters := "ABCDEF"
	scale := float64(GateWidth) / symbols.ViewBox

	for _, num := range nums {
		gate := gates[num]
		gateY := y + 50 + float64(num-1)*(GateHeight+layout.GateSpacing)
		gateX := x + layout.BoxWidth/2 - GateWidth/2

		b.WriteString("    <g>\n")
		fmt.Fprintf(&b, "      <use href=\"#%s\" x=\"%g\" y=\"%g\" width=\"%d\" height=\"%d\"/>\n",
			gate.Type, gateX, gateY, GateWidth, GateHeight)

		inputs, output := symbols.PinPositions(len(gate.InputPins))
		for i, pin := range gate.InputPins {
			if i >= len(inputs) {
				break
			}
			px := gateX + inputs[i].X*scale
			py := gateY + inputs[i].Y*scale
			r.recordPin(chip.ID, strconv.Itoa(pin), core.PixelPoint{X: px, Y: py})
			fmt.Fprintf(&b, "      <text x=\"%g\" y=\"%g\" font-family=\"Arial\" font-size=\"12\" font-weight=\"bold\" text-anchor=\"end\" fill=\"blue\">%d</text>\n",
				px-5, py-2, pin)
		}

		ox := gateX + output.X*scale
		oy := gateY + output.Y*scale
		r.recordPin(chip.ID, strconv.Itoa(gate.OutputPin), core.PixelPoint{X: ox, Y: oy})
		fmt.Fprintf(&b, "      <text x=\"%g\" y=\"%g\" font-family=\"Arial\" font-size=\"12\" font-weight=\"bold\" text-anchor=\"start\" fill=\"green\">%d</text>\n",
			ox+5, oy-2, gate.OutputPin)

		if num >= 1 && num <= len(gateLetters) {
			fmt.Fprintf(&b, "      <text x=\"%g\" y=\"%g\" font-family=\"Arial\" font-size=\"13\" font-weight=\"bold\" text-anchor=\"middle\" fill=\"black\">%c</text>\n",
				gateX+GateWidth/2, gateY+GateHeight+15, gateLetters[num-1])
		}
		b.WriteString("    </g>\n")
	}

	fmt.Fprintf(&b, "    <text x=\"%g\" y=\"%g\" font-family=\"Arial\" font-size=\"12\" fill=\"red\">VCC:%d</text>\n",
		x+10, y+boxH-10, chip.VccPin)
	fmt.Fprintf(&b, "    <text x=\"%g\" y=\"%g\" font-family=\"Arial\" font-size=\"12\" fill=\"blue\">GND:%d</text>",
		x+layout.BoxWidth-70, y+boxH-10, chip.GndPin)

	return b.String()
}

// InputsBox renders the circuit inputs as labeled squares with a stub
// line reaching out of the box; the stub's free end is each input's pin
// anchor.
func (r *Renderer) InputsBox(x, y float64, inputs []netlist.Input) string {
	if len(inputs) == 0 {
		return ""
	}
	var b strings.Builder
	boxH := InputsBoxHeight(len(inputs))

	fmt.Fprintf(&b, "    <rect x=\"%g\" y=\"%g\" width=\"%d\" height=\"%g\" fill=\"none\" stroke=\"black\" stroke-width=\"2\" rx=\"5\"/>\n",
		x, y, InputBoxWidth, boxH)
	fmt.Fprintf(&b, "    <text x=\"%g\" y=\"%g\" font-family=\"Arial\" font-size=\"16\" font-weight=\"bold\" text-anchor=\"middle\" fill=\"black\">INPUTS</text>\n",
		x+InputBoxWidth/2, y+25)

	for i, in := range inputs {
		iy := y + 50 + float64(i)*(InputSize+InputSpacing)
		ix := x + (InputBoxWidth-InputSize)/2

		fmt.Fprintf(&b, "    <rect x=\"%g\" y=\"%g\" width=\"%d\" height=\"%d\" fill=\"black\"/>\n",
			ix, iy, InputSize, InputSize)
		fmt.Fprintf(&b, "    <text x=\"%g\" y=\"%g\" font-family=\"Arial\" font-size=\"16\" font-weight=\"bold\" text-anchor=\"middle\" fill=\"blue\">%s</text>\n",
			ix+InputSize/2, iy+InputSize/2+5, in.Name)

		stubEnd := core.PixelPoint{X: x + InputBoxWidth + 20, Y: iy + InputSize/2}
		fmt.Fprintf(&b, "    <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"yellow\" stroke-width=\"2\"/>\n",
			ix+InputSize, stubEnd.Y, stubEnd.X, stubEnd.Y)
		r.recordPin("input", in.Name, stubEnd)
	}
	return strings.TrimRight(b.String(), "\n")
}

// OutputsBox renders the circuit outputs as LED symbols; each output's
// pin anchor sits at the box's bottom edge below its LED.
func (r *Renderer) OutputsBox(x, y float64, outputs []netlist.Output) string {
	if len(outputs) == 0 {
		return ""
	}
	var b strings.Builder
	boxH := OutputsBoxHeight(len(outputs))

	fmt.Fprintf(&b, "    <rect x=\"%g\" y=\"%g\" width=\"%d\" height=\"%g\" fill=\"none\" stroke=\"black\" stroke-width=\"2\" rx=\"5\"/>\n",
		x, y, OutputBoxWidth, boxH)
	fmt.Fprintf(&b, "    <text x=\"%g\" y=\"%g\" font-family=\"Arial\" font-size=\"16\" font-weight=\"bold\" text-anchor=\"middle\" fill=\"black\">OUTPUTS</text>\n",
		x+OutputBoxWidth/2, y+25)

	for i, out := range outputs {
		oy := y + 50 + float64(i)*(OutputSize+OutputSpacing)
		ox := x + (OutputBoxWidth-OutputSize)/2
		centerX := ox + OutputSize/2
		// LED glyph bottom within the 512 viewBox.
		ledBottom := oy + 366.0/symbols.ViewBox*OutputSize

		fmt.Fprintf(&b, "    <use href=\"#LED\" x=\"%g\" y=\"%g\" width=\"%d\" height=\"%d\"/>\n",
			ox, oy, OutputSize, OutputSize)
		fmt.Fprintf(&b, "    <text x=\"%g\" y=\"%g\" font-family=\"Arial\" font-size=\"12\" font-weight=\"bold\" text-anchor=\"middle\" fill=\"green\">%s</text>\n",
			centerX, oy+OutputSize+15, out.Name)

		anchor := core.PixelPoint{X: centerX, Y: y + boxH}
		fmt.Fprintf(&b, "    <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"yellow\" stroke-width=\"2\"/>\n",
			centerX, ledBottom, anchor.X, anchor.Y)
		r.recordPin("output", out.Name, anchor)
	}
	return strings.TrimRight(b.String(), "\n")
}

// WireSVG renders a routed polyline.
func WireSVG(points []core.PixelPoint, color string) string {
	if len(points) < 2 {
		return ""
	}
	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
	}
	return fmt.Sprintf("    <polyline points=%q fill=\"none\" stroke=%q stroke-width=\"2\"/>",
		strings.Join(coords, " "), color)
}
