// Package cluster partitions geocoded addresses into balanced geographic
// teams. It runs seeded k-means, repairs capacity overruns by moving single
// addresses between teams, scores each team's spread with a minimum spanning
// tree, flags outliers, and assigns team colors.
package cluster

import (
	"github.com/sells-group/pickup-planner/internal/model"
)

// Request describes one partitioning call. The same request always produces
// the same result: the seed drives every random choice.
type Request struct {
	Addresses []model.Address
	Teams     int
	Names     []string // at least Teams entries
	Capacity  int      // max addresses per team; 0 disables repair
	Seed      int64
}

// Group is one team's final assignment.
type Group struct {
	Name      string          `json:"name"`
	Color     string          `json:"color"`
	Addresses []model.Address `json:"addresses"`
	MSTKm     float64         `json:"mst_km"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// Result is the complete outcome of a Plan call. Every input address appears
// in exactly one group.
type Result struct {
	Groups         []Group  `json:"groups"`
	TotalAddresses int      `json:"total_addresses"`
	Teams          int      `json:"teams"`
	GlobalWarnings []string `json:"global_warnings,omitempty"`
}

// centroid returns the mean coordinate over the addresses labelled g.
// ok is false when the group is empty.
func centroid(addrs []model.Address, labels []int, g int) (model.Coordinate, bool) {
	var lat, lon float64
	n := 0
	for i, l := range labels {
		if l != g {
			continue
		}
		lat += addrs[i].Coordinate.Latitude
		lon += addrs[i].Coordinate.Longitude
		n++
	}
	if n == 0 {
		return model.Coordinate{}, false
	}
	return model.Coordinate{Latitude: lat / float64(n), Longitude: lon / float64(n)}, true
}
