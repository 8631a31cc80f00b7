package cluster

import (
	"math"

	"github.com/sells-group/pickup-planner/internal/geodist"
	"github.com/sells-group/pickup-planner/internal/model"
)

// Palette is the ordered set of visually distinguishable team color labels.
// The renderer decides how each label looks; the engine only spaces reused
// labels apart geographically.
var Palette = []string{
	"red", "blue", "green", "yellow", "magenta", "cyan",
	"orange", "purple", "teal", "pink", "lime", "brown",
}

// assignColors picks a palette label for each group. centroids[g] is the
// group's centroid and occupied[g] whether it has members; empty groups take
// round-robin labels since they have no position to separate.
//
// With more groups than labels, the first len(palette) groups take the
// palette in order; each later group takes the label whose nearest
// same-labeled group is farthest away, so duplicate colors end up
// geographically separated. Ties go to the earliest label in palette order.
func assignColors(centroids []model.Coordinate, occupied []bool, palette []string) []string {
	k := len(centroids)
	colors := make([]string, k)

	for g := 0; g < k; g++ {
		if g < len(palette) {
			colors[g] = palette[g]
			continue
		}
		if !occupied[g] {
			colors[g] = palette[g%len(palette)]
			continue
		}

		bestLabel := palette[0]
		bestSeparation := -1.0
		for _, label := range palette {
			sep := math.Inf(1)
			for prev := 0; prev < g; prev++ {
				if colors[prev] != label || !occupied[prev] {
					continue
				}
				if d := geodist.Kilometers(centroids[g], centroids[prev]); d < sep {
					sep = d
				}
			}
			if sep > bestSeparation {
				bestSeparation = sep
				bestLabel = label
			}
		}
		colors[g] = bestLabel
	}

	return colors
}
