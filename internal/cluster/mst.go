package cluster

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pickup-planner/internal/geodist"
	"github.com/sells-group/pickup-planner/internal/model"
)

// mstKilometers returns the total edge weight of a minimum spanning tree
// over the group's addresses, with great-circle distance as the weight. The
// total is a compactness score: it grows with spread but never double-counts
// a detour the way summed pairwise distances would.
//
// Zero or one address scores 0; exactly two score their direct distance.
func mstKilometers(addrs []model.Address) (float64, error) {
	for _, a := range addrs {
		if !a.Resolved() {
			return 0, eris.Wrapf(ErrInput,
				"cluster: address #%d %q has no coordinate; geocode before computing spread",
				a.Row, a.Text)
		}
	}

	n := len(addrs)
	if n <= 1 {
		return 0, nil
	}
	if n == 2 {
		return geodist.Kilometers(*addrs[0].Coordinate, *addrs[1].Coordinate), nil
	}

	// Prim over the implicit complete graph. Dense Prim is O(n^2), which
	// beats a heap when every pair is an edge.
	inTree := make([]bool, n)
	minEdge := make([]float64, n)
	for i := range minEdge {
		minEdge[i] = math.Inf(1)
	}
	minEdge[0] = 0

	total := 0.0
	for range addrs {
		next := -1
		for v := 0; v < n; v++ {
			if !inTree[v] && (next == -1 || minEdge[v] < minEdge[next]) {
				next = v
			}
		}
		inTree[next] = true
		total += minEdge[next]

		for v := 0; v < n; v++ {
			if inTree[v] {
				continue
			}
			d := geodist.Kilometers(*addrs[next].Coordinate, *addrs[v].Coordinate)
			if d < minEdge[v] {
				minEdge[v] = d
			}
		}
	}

	return total, nil
}
