package render

import (
	"fmt"
	"io"

	"github.com/sells-group/pickup-planner/internal/cluster"
)

// Table writes the per-team assignment listing to w. Distances are
// straight-line, which the footer disclaims so nobody mistakes them for
// driving routes.
func (st *Styler) Table(w io.Writer, res *cluster.Result) {
	fmt.Fprintf(w, "Team assignments (%d teams, %d addresses)\n\n", res.Teams, res.TotalAddresses)

	for _, g := range res.Groups {
		header := fmt.Sprintf("%s [%s]", g.Name, g.Color)
		if len(g.Warnings) > 0 {
			header += " (!)"
		}
		fmt.Fprintf(w, "%s - %d address(es), %.2f km\n", st.Paint(g.Color, header), len(g.Addresses), g.MSTKm)
		for _, a := range g.Addresses {
			fmt.Fprintf(w, "  • %s\n", a.Text)
		}
		fmt.Fprintln(w)
	}

	for _, g := range res.Groups {
		for _, warn := range g.Warnings {
			fmt.Fprintf(w, "WARNING: %s - %s\n", g.Name, warn)
		}
	}
	for _, warn := range res.GlobalWarnings {
		fmt.Fprintf(w, "WARNING: %s\n", warn)
	}

	fmt.Fprintln(w, "\nNote: distances are straight-line (as-the-crow-flies) and may differ from driving routes.")
}
