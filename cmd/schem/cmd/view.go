package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"schem/preview"
	"schem/term"
)

var viewWidth int

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse an ASCII preview of the routed schematic",
	Long: `Route the circuit and show a scaled-down rune rendering in a
scrollable terminal view. Boxes are chips and IO blocks; failed
wires show as asterisks.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().IntVar(&viewWidth, "width", 160, "preview width in characters")
}

func runView(cmd *cobra.Command, args []string) error {
	res, err := newGenerator().Generate()
	if err != nil {
		return err
	}

	failed := 0
	for _, w := range res.Wires {
		if w.Failed {
			failed++
		}
	}
	status := fmt.Sprintf("%d wires, %d failed", len(res.Wires), failed)

	return term.NewViewer(preview.Render(res, viewWidth), status).Run()
}
