package render

import (
	"fmt"
	"io"

	"github.com/markkurossi/tabulate"
)

// Report renders a per-connection routing summary table.
func Report(res *Result, w io.Writer) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Net").SetAlign(tabulate.ML)
	tab.Header("From").SetAlign(tabulate.ML)
	tab.Header("To").SetAlign(tabulate.ML)
	tab.Header("Waypoints").SetAlign(tabulate.MR)
	tab.Header("Length").SetAlign(tabulate.MR)
	tab.Header("Status").SetAlign(tabulate.ML)

	var total float64
	var failed int
	for _, wire := range res.Wires {
		row := tab.Row()
		row.Column(string(wire.Net))
		row.Column(wire.From.String())
		row.Column(wire.To.String())
		row.Column(fmt.Sprintf("%d", len(wire.Points)))
		row.Column(fmt.Sprintf("%.0f", wire.Length()))
		if wire.Failed {
			row.Column("FAILED: " + wire.Reason)
			failed++
		} else {
			row.Column("ok")
		}
		total += wire.Length()
	}

	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(fmt.Sprintf("%d wires", len(res.Wires))).SetFormat(tabulate.FmtBold)
	row.Column("")
	row.Column("")
	row.Column(fmt.Sprintf("%.0f", total)).SetFormat(tabulate.FmtBold)
	if failed > 0 {
		row.Column(fmt.Sprintf("%d failed", failed)).SetFormat(tabulate.FmtBold)
	} else {
		row.Column("all routed").SetFormat(tabulate.FmtBold)
	}

	tab.Print(w)
}
