package cluster

import (
	"math"
	"math/rand"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/pickup-planner/internal/model"
)

const (
	// kmeansInits is the number of independent random initializations; the
	// lowest-inertia run wins.
	kmeansInits = 10

	// kmeansMaxIterations caps assign/update rounds within a single run.
	kmeansMaxIterations = 300
)

// partition assigns every address to one of k groups with seeded k-means and
// returns the per-address group labels. Coordinates are treated as planar
// (lat, lon) pairs; that skews results near the poles and across the
// antimeridian, which is an accepted limitation. Empty groups are a valid
// outcome when k exceeds the number of distinct spatial modes.
func partition(addrs []model.Address, k int, seed int64) ([]int, error) {
	n := len(addrs)
	if k < 1 {
		return nil, eris.Wrapf(ErrInput, "cluster: team count %d must be at least 1", k)
	}
	if k > n {
		return nil, eris.Wrapf(ErrInput, "cluster: cannot form %d teams from %d addresses", k, n)
	}

	points := make([][2]float64, n)
	for i, a := range addrs {
		points[i] = [2]float64{a.Coordinate.Latitude, a.Coordinate.Longitude}
	}

	// One rand source drives all initializations sequentially, so identical
	// seed and input reproduce the partition byte for byte.
	rng := rand.New(rand.NewSource(seed))

	bestLabels := make([]int, n)
	bestInertia := math.Inf(1)

	for run := 0; run < kmeansInits; run++ {
		labels, inertia := kmeansOnce(points, k, rng)
		if inertia < bestInertia {
			bestInertia = inertia
			copy(bestLabels, labels)
		}
	}

	zap.L().Debug("cluster: k-means finished",
		zap.Int("addresses", n),
		zap.Int("teams", k),
		zap.Int64("seed", seed),
		zap.Float64("inertia", bestInertia),
	)
	return bestLabels, nil
}

// kmeansOnce runs a single k-means pass from a random initialization and
// returns the labels and the sum of squared point-to-centroid distances.
func kmeansOnce(points [][2]float64, k int, rng *rand.Rand) ([]int, float64) {
	n := len(points)

	// Seed centers from k distinct input points.
	centers := make([][2]float64, k)
	chosen := make(map[int]bool, k)
	for i := 0; i < k; i++ {
		for {
			u := rng.Intn(n)
			if !chosen[u] {
				chosen[u] = true
				centers[i] = points[u]
				break
			}
		}
	}

	labels := make([]int, n)
	counts := make([]int, k)
	sums := make([][2]float64, k)

	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false
		for i, p := range points {
			best := 0
			bestDist := squaredDist(p, centers[0])
			for c := 1; c < k; c++ {
				if d := squaredDist(p, centers[c]); d < bestDist {
					bestDist = d
					best = c
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		for c := range centers {
			counts[c] = 0
			sums[c] = [2]float64{}
		}
		for i, p := range points {
			c := labels[i]
			sums[c][0] += p[0]
			sums[c][1] += p[1]
			counts[c]++
		}
		// A center with no members keeps its previous position.
		for c := range centers {
			if counts[c] > 0 {
				centers[c] = [2]float64{sums[c][0] / float64(counts[c]), sums[c][1] / float64(counts[c])}
			}
		}
	}

	var inertia float64
	for i, p := range points {
		inertia += squaredDist(p, centers[labels[i]])
	}
	return labels, inertia
}

func squaredDist(a, b [2]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}
