package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"schem/render"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a per-connection routing report",
	Long: `Route the circuit and print a table with each connection's net,
waypoint count, wire length and routing status, plus totals.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	res, err := newGenerator().Generate()
	if err != nil {
		return err
	}
	render.Report(res, os.Stdout)
	return nil
}
