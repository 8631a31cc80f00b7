package cluster

import (
	"fmt"

	"github.com/sells-group/pickup-planner/internal/geodist"
	"github.com/sells-group/pickup-planner/internal/model"
)

// pairOutlierWarning scans a group for any two addresses farther apart than
// thresholdKm and returns a single warning on the first hit. One signal is
// enough for a human to re-check the group; enumerating every bad pair would
// drown the table in noise. Groups of 0 or 1 address never warn.
func pairOutlierWarning(addrs []model.Address, thresholdKm float64) (string, bool) {
	for i := 0; i < len(addrs); i++ {
		for j := i + 1; j < len(addrs); j++ {
			if geodist.Kilometers(*addrs[i].Coordinate, *addrs[j].Coordinate) > thresholdKm {
				return fmt.Sprintf("addresses more than %.0f km (%.0f miles) apart detected",
					thresholdKm, thresholdKm*geodist.MilesPerKM), true
			}
		}
	}
	return "", false
}

// GlobalOutliers returns the addresses farther than thresholdKm from the
// centroid of the entire input set. Sets of two or fewer addresses have no
// meaningful center and are never flagged.
func GlobalOutliers(addrs []model.Address, thresholdKm float64) []model.Address {
	if len(addrs) <= 2 {
		return nil
	}

	var lat, lon float64
	for _, a := range addrs {
		lat += a.Coordinate.Latitude
		lon += a.Coordinate.Longitude
	}
	center := model.Coordinate{
		Latitude:  lat / float64(len(addrs)),
		Longitude: lon / float64(len(addrs)),
	}

	var out []model.Address
	for _, a := range addrs {
		if geodist.Kilometers(*a.Coordinate, center) > thresholdKm {
			out = append(out, a)
		}
	}
	return out
}
