package netlist

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"schem/core"
)

// record wraps one CSV row with header-based field access.
type record struct {
	index map[string]int
	row   []string
	line  int
}

func (r record) field(name string) (string, error) {
	i, ok := r.index[name]
	if !ok || i >= len(r.row) {
		return "", fmt.Errorf("line %d: missing column %q", r.line, name)
	}
	return strings.TrimSpace(r.row[i]), nil
}

func (r record) intField(name string) (int, error) {
	s, err := r.field(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %q: %w", r.line, name, err)
	}
	return n, nil
}

// forEachRecord reads a header row and calls fn per data row.
func forEachRecord(r io.Reader, fn func(record) error) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line++
		if err := fn(record{index: index, row: row, line: line}); err != nil {
			return err
		}
	}
}

// LoadDatasheets loads chip datasheet information. Expected columns:
// chip_type, gate_num, input_pins (comma-separated), output_pin,
// gate_type, vcc_pin, gnd_pin, total_pins.
func LoadDatasheets(path string) (Datasheets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDatasheets(f)
}

// ReadDatasheets parses datasheet CSV from a reader.
func ReadDatasheets(r io.Reader) (Datasheets, error) {
	ds := make(Datasheets)
	err := forEachRecord(r, func(rec record) error {
		chipType, err := rec.field("chip_type")
		if err != nil {
			return err
		}
		gateNum, err := rec.intField("gate_num")
		if err != nil {
			return err
		}
		pinsField, err := rec.field("input_pins")
		if err != nil {
			return err
		}
		var inputs []int
		for _, p := range strings.Split(pinsField, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return fmt.Errorf("line %d: input_pins: %w", rec.line, err)
			}
			inputs = append(inputs, n)
		}
		outputPin, err := rec.intField("output_pin")
		if err != nil {
			return err
		}
		gateType, err := rec.field("gate_type")
		if err != nil {
			return err
		}
		vcc, err := rec.intField("vcc_pin")
		if err != nil {
			return err
		}
		gnd, err := rec.intField("gnd_pin")
		if err != nil {
			return err
		}
		total, err := rec.intField("total_pins")
		if err != nil {
			return err
		}

		if ds[chipType] == nil {
			ds[chipType] = make(map[int]Gate)
		}
		ds[chipType][gateNum] = Gate{
			InputPins: inputs,
			OutputPin: outputPin,
			Type:      gateType,
			VccPin:    vcc,
			GndPin:    gnd,
			TotalPins: total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// LoadChips loads chip instances, joining each against its datasheet.
// Chips whose type or gate number has no datasheet entry are skipped.
// Expected columns: chip_id, chip_type, gate_num, layer.
func LoadChips(path string, ds Datasheets) ([]Chip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadChips(f, ds)
}

// ReadChips parses chip CSV from a reader.
func ReadChips(r io.Reader, ds Datasheets) ([]Chip, error) {
	var chips []Chip
	err := forEachRecord(r, func(rec record) error {
		id, err := rec.field("chip_id")
		if err != nil {
			return err
		}
		chipType, err := rec.field("chip_type")
		if err != nil {
			return err
		}
		gateNum, err := rec.intField("gate_num")
		if err != nil {
			return err
		}
		layer, err := rec.intField("layer")
		if err != nil {
			return err
		}

		gate, ok := ds[chipType][gateNum]
		if !ok {
			return nil
		}
		chips = append(chips, Chip{
			ID:       id,
			Type:     chipType,
			GateNum:  gateNum,
			Layer:    layer,
			GateType: gate.Type,
			VccPin:   gate.VccPin,
			GndPin:   gate.GndPin,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chips, nil
}

// LoadConnections loads the connection list, separating circuit inputs
// and outputs (rows whose from_chip or to_chip is the literal "input" or
// "output") from chip-to-chip links. Every row still yields a routing
// connection; duplicate input names are listed once in the inputs box.
// Expected columns: from_chip, from_pin, to_chip, to_pin.
func LoadConnections(path string) ([]Connection, []Input, []Output, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()
	return ReadConnections(f)
}

// ReadConnections parses connection CSV from a reader.
func ReadConnections(r io.Reader) ([]Connection, []Input, []Output, error) {
	var (
		conns   []Connection
		inputs  []Input
		outputs []Output
	)
	seenInputs := make(map[string]bool)

	err := forEachRecord(r, func(rec record) error {
		fromChip, err := rec.field("from_chip")
		if err != nil {
			return err
		}
		fromPin, err := rec.field("from_pin")
		if err != nil {
			return err
		}
		toChip, err := rec.field("to_chip")
		if err != nil {
			return err
		}
		toPin, err := rec.field("to_pin")
		if err != nil {
			return err
		}

		switch {
		case strings.EqualFold(fromChip, "input"):
			if !seenInputs[fromPin] {
				seenInputs[fromPin] = true
				inputs = append(inputs, Input{Name: fromPin})
			}
			conns = append(conns, Connection{
				From: core.PinRef{Chip: "input", Pin: fromPin},
				To:   core.PinRef{Chip: toChip, Pin: toPin},
			})
		case strings.EqualFold(toChip, "output"):
			outputs = append(outputs, Output{
				Name: toPin,
				From: core.PinRef{Chip: fromChip, Pin: fromPin},
			})
			conns = append(conns, Connection{
				From: core.PinRef{Chip: fromChip, Pin: fromPin},
				To:   core.PinRef{Chip: "output", Pin: toPin},
			})
		default:
			conns = append(conns, Connection{
				From: core.PinRef{Chip: fromChip, Pin: fromPin},
				To:   core.PinRef{Chip: toChip, Pin: toPin},
			})
		}
		return nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return conns, inputs, outputs, nil
}

// Load reads the three CSV inputs into a Circuit.
func Load(chipsCSV, connectionsCSV, datasheetCSV string) (*Circuit, error) {
	ds, err := LoadDatasheets(datasheetCSV)
	if err != nil {
		return nil, fmt.Errorf("loading datasheets: %w", err)
	}
	chips, err := LoadChips(chipsCSV, ds)
	if err != nil {
		return nil, fmt.Errorf("loading chips: %w", err)
	}
	if len(chips) == 0 {
		return nil, fmt.Errorf("no chips loaded from %s", chipsCSV)
	}
	conns, inputs, outputs, err := LoadConnections(connectionsCSV)
	if err != nil {
		return nil, fmt.Errorf("loading connections: %w", err)
	}
	return &Circuit{
		Datasheets:  ds,
		Chips:       chips,
		Connections: conns,
		Inputs:      inputs,
		Outputs:     outputs,
	}, nil
}
