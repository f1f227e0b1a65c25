package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool

	chipsCSV       string
	connectionsCSV string
	datasheetCSV   string
	symbolDir      string
	title          string
)

var rootCmd = &cobra.Command{
	Use:   "schem",
	Short: "schem - grid-routed logic schematic generator",
	Long: `schem turns a CSV netlist (chips, connections, datasheets) into a
routed SVG schematic. Wires are traced on an occupancy grid with an
A* router that shares trunks within a net and detours around chips.

Examples:
  schem generate -o out.svg                 # Generate the schematic
  schem generate --png out.png --scale 2    # Rasterize to PNG as well
  schem stats                               # Per-connection routing report
  schem view                                # Browse an ASCII preview`,
	Version: "0.3.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

func verbosef(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&chipsCSV, "chips", "chips.csv", "chip instances CSV")
	rootCmd.PersistentFlags().StringVar(&connectionsCSV, "connections", "connections.csv", "connections CSV")
	rootCmd.PersistentFlags().StringVar(&datasheetCSV, "datasheet", "datasheet.csv", "gate datasheet CSV")
	rootCmd.PersistentFlags().StringVar(&symbolDir, "symbols", "symbols", "gate symbol SVG directory")
	rootCmd.PersistentFlags().StringVar(&title, "title", "", "diagram title")
}
