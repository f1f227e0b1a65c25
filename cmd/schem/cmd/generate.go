package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schem/raster"
	"schem/render"
)

var (
	svgOut   string
	pngOut   string
	pngScale float64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the routed SVG schematic",
	Long: `Load the CSV netlist, place the chips in layer columns, route every
connection on the occupancy grid and write the SVG document. With
--png the result is also rasterized.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&svgOut, "output", "o", "circuit.svg", "SVG output file")
	generateCmd.Flags().StringVar(&pngOut, "png", "", "also write a PNG to this file")
	generateCmd.Flags().Float64Var(&pngScale, "scale", 1, "PNG scale factor")
}

func newGenerator() *render.Generator {
	return &render.Generator{
		ChipsCSV:       chipsCSV,
		ConnectionsCSV: connectionsCSV,
		DatasheetCSV:   datasheetCSV,
		SymbolDir:      symbolDir,
		Title:          title,
		Warnf:          warnf,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	res, err := newGenerator().Generate()
	if err != nil {
		return err
	}

	if err := os.WriteFile(svgOut, []byte(res.SVG), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", svgOut, err)
	}
	verbosef("wrote %s (%gx%g, %d wires)", svgOut, res.CanvasW, res.CanvasH, len(res.Wires))

	failed := 0
	for _, w := range res.Wires {
		if w.Failed {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d connections could not be routed\n", failed, len(res.Wires))
	}

	if pngOut != "" {
		if err := raster.EncodeFile(res.SVG, pngOut, raster.Options{Scale: pngScale}); err != nil {
			return fmt.Errorf("writing %s: %w", pngOut, err)
		}
		verbosef("wrote %s", pngOut)
	}
	return nil
}
