package cluster

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/pickup-planner/internal/geodist"
	"github.com/sells-group/pickup-planner/internal/model"
)

// redistributeMaxIterations caps repair moves. Each iteration moves exactly
// one address, so the cap also bounds how far the k-means geometry can drift.
const redistributeMaxIterations = 1000

// redistribute mutates labels until no group holds more than capacity
// addresses, moving one address per iteration from the most overloaded group
// to the candidate whose centroid is nearest. An empty candidate counts as
// distance 0 so unseeded groups fill first. Ties on distance resolve by
// source address row, then target group index, keeping repair deterministic.
// Returns the number of moves performed.
func redistribute(addrs []model.Address, labels []int, k, capacity int) (int, error) {
	sizes := groupSizes(labels, k)
	if !anyOver(sizes, capacity) {
		return 0, nil
	}

	if k == 1 {
		return 0, eris.Wrapf(ErrCapacity,
			"cluster: single team holds %d addresses over capacity %d with no peer to receive",
			sizes[0], capacity)
	}
	if !anyUnder(sizes, capacity) {
		return 0, eris.Wrapf(ErrCapacity,
			"cluster: all %d teams already at or above capacity %d", k, capacity)
	}

	moves := 0
	for iter := 0; iter < redistributeMaxIterations; iter++ {
		sizes = groupSizes(labels, k)
		if !anyOver(sizes, capacity) {
			zap.L().Debug("cluster: redistribution complete",
				zap.Int("moves", moves),
				zap.Int("capacity", capacity),
			)
			return moves, nil
		}

		source := largestOver(sizes, capacity)

		centroids := make([]model.Coordinate, k)
		occupied := make([]bool, k)
		for g := 0; g < k; g++ {
			centroids[g], occupied[g] = centroid(addrs, labels, g)
		}

		bestPoint, bestTarget := -1, -1
		bestDist := 0.0
		for i := range addrs {
			if labels[i] != source {
				continue
			}
			for g := 0; g < k; g++ {
				if g == source || sizes[g] >= capacity {
					continue
				}
				d := 0.0
				if occupied[g] {
					d = geodist.Kilometers(*addrs[i].Coordinate, centroids[g])
				}
				if bestPoint == -1 || d < bestDist {
					bestDist = d
					bestPoint = i
					bestTarget = g
				}
			}
		}

		if bestPoint == -1 {
			return moves, eris.Wrapf(ErrCapacity,
				"cluster: no team under capacity %d can receive from team %d (%d addresses)",
				capacity, source, sizes[source])
		}

		labels[bestPoint] = bestTarget
		moves++
	}

	return moves, eris.Wrapf(ErrCapacity,
		"cluster: capacity %d not satisfied after %d redistribution iterations",
		capacity, redistributeMaxIterations)
}

func groupSizes(labels []int, k int) []int {
	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}
	return sizes
}

func anyOver(sizes []int, capacity int) bool {
	for _, s := range sizes {
		if s > capacity {
			return true
		}
	}
	return false
}

func anyUnder(sizes []int, capacity int) bool {
	for _, s := range sizes {
		if s < capacity {
			return true
		}
	}
	return false
}

// largestOver returns the index of the biggest group exceeding capacity,
// lowest index on ties.
func largestOver(sizes []int, capacity int) int {
	best := -1
	for g, s := range sizes {
		if s <= capacity {
			continue
		}
		if best == -1 || s > sizes[best] {
			best = g
		}
	}
	return best
}
