package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/twpayne/go-geom"

	"github.com/sells-group/pickup-planner/internal/cluster"
)

// Minimum terminal dimensions for the map; anything smaller is skipped.
const (
	minMapWidth  = 40
	minMapHeight = 20
)

// MapOptions sizes the ASCII map grid.
type MapOptions struct {
	Width  int // terminal columns available
	Height int // terminal rows available
}

// Map draws the assignments as an ASCII grid: one colored '*' per occupied
// cell, with a legend underneath. Degenerate extents (single location, one
// shared meridian or parallel) collapse to a line or a single marker.
func (st *Styler) Map(w io.Writer, res *cluster.Result, opts MapOptions) {
	if opts.Width < minMapWidth || opts.Height < minMapHeight {
		fmt.Fprintf(w, "Terminal too small for map (min %dx%d). Skipping.\n", minMapWidth, minMapHeight)
		return
	}

	type marker struct {
		lon, lat float64
		color    string
	}
	var markers []marker
	flat := make([]float64, 0, 2*res.TotalAddresses)
	for _, g := range res.Groups {
		for _, a := range g.Addresses {
			markers = append(markers, marker{a.Coordinate.Longitude, a.Coordinate.Latitude, g.Color})
			flat = append(flat, a.Coordinate.Longitude, a.Coordinate.Latitude)
		}
	}
	if len(markers) == 0 {
		return
	}

	bounds := geom.NewMultiPointFlat(geom.XY, flat).Bounds()
	minLon, minLat := bounds.Min(0), bounds.Min(1)
	maxLon, maxLat := bounds.Max(0), bounds.Max(1)

	if minLon == maxLon && minLat == maxLat {
		fmt.Fprintf(w, "All addresses share one location: %s (%d addresses)\n",
			st.Paint(markers[0].color, "*"), len(markers))
		return
	}

	width := opts.Width - 8
	height := opts.Height - 10

	// Cell ownership goes to the first address projected into it.
	grid := map[[2]int]string{}
	for _, m := range markers {
		x := width / 2
		if maxLon > minLon {
			x = int((m.lon - minLon) / (maxLon - minLon) * float64(width-1))
		}
		y := height / 2
		if maxLat > minLat {
			y = int((maxLat - m.lat) / (maxLat - minLat) * float64(height-1))
		}
		key := [2]int{x, y}
		if _, taken := grid[key]; !taken {
			grid[key] = m.color
		}
	}

	border := "+" + strings.Repeat("-", width+2) + "+"
	fmt.Fprintln(w, border)
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString("| ")
		for x := 0; x < width; x++ {
			if color, ok := grid[[2]int{x, y}]; ok {
				row.WriteString(st.Paint(color, "*"))
			} else {
				row.WriteByte(' ')
			}
		}
		row.WriteString(" |")
		fmt.Fprintln(w, row.String())
	}
	fmt.Fprintln(w, border)

	legend := make([]string, 0, len(res.Groups))
	for _, g := range res.Groups {
		legend = append(legend, st.Paint(g.Color, fmt.Sprintf("%s: *", g.Name)))
	}
	fmt.Fprintln(w, strings.Join(legend, "  "))
}
