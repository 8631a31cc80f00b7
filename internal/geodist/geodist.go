// Package geodist computes great-circle distances between coordinates.
package geodist

import (
	"math"

	"github.com/sells-group/pickup-planner/internal/model"
)

// earthRadiusKM is the mean radius of the Earth sphere used by the
// haversine formula.
const earthRadiusKM = 6371.0

// MilesPerKM converts kilometers to statute miles.
const MilesPerKM = 0.621371

// Kilometers returns the haversine great-circle distance between two
// coordinates in kilometers. Identical coordinates return exactly 0 so that
// duplicate locations never accumulate floating-point noise.
func Kilometers(a, b model.Coordinate) float64 {
	if a.Latitude == b.Latitude && a.Longitude == b.Longitude {
		return 0
	}

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKM * c
}

// Miles returns the great-circle distance between two coordinates in miles.
func Miles(a, b model.Coordinate) float64 {
	return Kilometers(a, b) * MilesPerKM
}
