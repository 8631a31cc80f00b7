// Package model defines the shared data types for the pickup planner.
package model

import "github.com/rotisserie/eris"

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the coordinate lies within valid ranges.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return eris.Errorf("model: latitude %.6f out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return eris.Errorf("model: longitude %.6f out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// Address is a single pickup stop. Row is the 1-based position in the input
// roster and serves as the address's identity; Text is carried through
// unchanged for presentation. Coordinate is nil until geocoding resolves it.
type Address struct {
	Row        int         `json:"row"`
	Text       string      `json:"text"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}

// Resolved reports whether the address has a geocoded coordinate.
func (a Address) Resolved() bool {
	return a.Coordinate != nil
}
