// Package symbols manages the SVG gate symbol library and the standard
// pin positions on the 512x512 symbol viewBox.
package symbols

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ViewBox is the edge length of the square symbol coordinate system.
const ViewBox = 512.0

// Symbol is one gate glyph extracted from its library SVG file.
type Symbol struct {
	Path string // the path element's d attribute
	Fill string
}

// Library loads gate symbols from a directory of <name>.svg files.
type Library struct {
	dir     string
	symbols map[string]Symbol
}

// NewLibrary creates a symbol library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir, symbols: make(map[string]Symbol)}
}

// Load returns the symbol for a gate type, reading and caching its SVG
// file on first use.
func (l *Library) Load(name string) (Symbol, error) {
	if s, ok := l.symbols[name]; ok {
		return s, nil
	}
	f, err := os.Open(filepath.Join(l.dir, name+".svg"))
	if err != nil {
		return Symbol{}, err
	}
	defer f.Close()

	s, err := parseSymbol(f)
	if err != nil {
		return Symbol{}, fmt.Errorf("parsing %s.svg: %w", name, err)
	}
	l.symbols[name] = s
	return s, nil
}

// parseSymbol extracts the first path element from an SVG document.
func parseSymbol(r io.Reader) (Symbol, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return Symbol{}, fmt.Errorf("no path element found")
		}
		if err != nil {
			return Symbol{}, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "path" {
			continue
		}
		s := Symbol{Fill: "#000000"}
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "d":
				s.Path = attr.Value
			case "fill":
				s.Fill = attr.Value
			}
		}
		if s.Path == "" {
			return Symbol{}, fmt.Errorf("path element has no d attribute")
		}
		return s, nil
	}
}

// Defs emits an SVG <defs> block with one <symbol> per gate type. Missing
// symbol files are reported through warnf and skipped so a diagram can
// still render with holes instead of failing outright.
func (l *Library) Defs(gateTypes []string, warnf func(format string, args ...interface{})) string {
	var b strings.Builder
	b.WriteString("  <defs>\n")
	for _, name := range gateTypes {
		s, err := l.Load(name)
		if err != nil {
			if warnf != nil {
				warnf("symbol %s: %v", name, err)
			}
			continue
		}
		fmt.Fprintf(&b, "    <symbol id=%q viewBox=\"0 0 512 512\">\n", name)
		fmt.Fprintf(&b, "      <path fill=%q stroke=%q stroke-width=\"8\" stroke-linejoin=\"round\" d=%q/>\n",
			s.Fill, s.Fill, s.Path)
		b.WriteString("    </symbol>\n")
	}
	b.WriteString("  </defs>")
	return b.String()
}

// PinPosition is a pin anchor in symbol (viewBox) coordinates.
type PinPosition struct {
	X, Y float64
}

// PinPositions returns the standardized input pin anchors and the output
// pin anchor for a gate with the given input count. Inputs sit on the
// left edge, the output on the right edge at mid height.
func PinPositions(numInputs int) (inputs []PinPosition, output PinPosition) {
	switch numInputs {
	case 1:
		inputs = []PinPosition{{16, 256}}
	case 2:
		inputs = []PinPosition{{16, 160}, {16, 352}}
	case 3:
		inputs = []PinPosition{{16, 160}, {16, 256}, {16, 352}}
	case 4:
		inputs = []PinPosition{{16, 160}, {16, 224}, {16, 288}, {16, 352}}
	}
	return inputs, PinPosition{496, 256}
}
