// Package layout positions chips on the canvas: chips in the same layer
// stack vertically, layers run left to right.
package layout

import (
	"sort"

	"schem/core"
	"schem/netlist"
)

// Spacing constants for the layer layout.
const (
	LayerSpacingX = 400 // horizontal distance between layer columns
	ChipSpacingY  = 300 // vertical gap between chips in one layer
	StartX        = 250
	StartY        = 100

	GateHeight  = 80
	GateSpacing = 20
	BoxWidth    = 220
)

// Placement holds the computed chip positions and the base canvas size.
// The generator grows the canvas further for the IO boxes.
type Placement struct {
	Positions map[string]core.PixelPoint // chip ID -> box top-left
	CanvasW   float64
	CanvasH   float64
}

// ChipHeight computes a chip's box height from its datasheet gate count.
func ChipHeight(chipType string, ds netlist.Datasheets) float64 {
	gates := len(ds[chipType])
	h := 80 + float64(gates)*(GateHeight+GateSpacing)
	if h < 160 {
		h = 160
	}
	return h
}

// Place assigns a position to every chip. Layers are processed in sorted
// order and chips keep their load order within a layer, so the result is
// deterministic.
func Place(chips []netlist.Chip, ds netlist.Datasheets) Placement {
	byLayer := make(map[int][]netlist.Chip)
	for _, chip := range chips {
		byLayer[chip.Layer] = append(byLayer[chip.Layer], chip)
	}
	layers := make([]int, 0, len(byLayer))
	for layer := range byLayer {
		layers = append(layers, layer)
	}
	sort.Ints(layers)

	p := Placement{
		Positions: make(map[string]core.PixelPoint, len(chips)),
		CanvasW:   StartX,
		CanvasH:   StartY,
	}

	for _, layer := range layers {
		layerX := float64(StartX + layer*LayerSpacingX)
		y := float64(StartY)

		for _, chip := range byLayer[layer] {
			p.Positions[chip.ID] = core.PixelPoint{X: layerX, Y: y}
			y += ChipHeight(chip.Type, ds) + ChipSpacingY

			if w := layerX + 300; w > p.CanvasW {
				p.CanvasW = w
			}
			if y > p.CanvasH {
				p.CanvasH = y
			}
		}
	}

	p.CanvasW += 100
	p.CanvasH += 100
	return p
}
