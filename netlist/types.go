// Package netlist loads circuit descriptions (chips, datasheets,
// connections) from CSV files and groups connected pins into electrical
// nets.
package netlist

import "schem/core"

// Gate describes one gate of a chip type as listed in its datasheet.
type Gate struct {
	InputPins []int
	OutputPin int
	Type      string // symbol name: AND, NAND, OR, NOT, ...
	VccPin    int
	GndPin    int
	TotalPins int
}

// Datasheets maps chip type -> gate number -> gate description.
type Datasheets map[string]map[int]Gate

// Chip is one placed chip instance.
type Chip struct {
	ID       string
	Type     string
	GateNum  int
	Layer    int
	GateType string
	VccPin   int
	GndPin   int
}

// Connection is a single point-to-point link between two pins. The
// pseudo-chips "input" and "output" represent the circuit's IO, with the
// signal name as the pin.
type Connection struct {
	From core.PinRef
	To   core.PinRef
}

// Input is a named circuit input, drawn once in the inputs box however
// many connections fan out from it.
type Input struct {
	Name string
}

// Output is a named circuit output and the pin that drives it.
type Output struct {
	Name string
	From core.PinRef
}

// Circuit bundles everything loaded from the CSV inputs.
type Circuit struct {
	Datasheets  Datasheets
	Chips       []Chip
	Connections []Connection
	Inputs      []Input
	Outputs     []Output
}

// ChipByID returns the chip with the given ID, if present.
func (c *Circuit) ChipByID(id string) (Chip, bool) {
	for _, chip := range c.Chips {
		if chip.ID == id {
			return chip, true
		}
	}
	return Chip{}, false
}
