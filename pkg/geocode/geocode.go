// Package geocode resolves address strings to coordinates via the Nominatim
// search API, with a persistent SQLite cache in front of the network.
package geocode

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
)

// Result is one geocoding outcome. Matched is false when the backend found
// no candidate for the address; that is a valid, cacheable answer, not an
// error.
type Result struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name,omitempty"`
	Matched     bool    `json:"matched"`
	Source      string  `json:"source"` // "nominatim" or "cache"
}

// Provider is a single geocoding backend.
type Provider interface {
	Name() string
	Geocode(ctx context.Context, address string) (*Result, error)
}

// cacheKey returns SHA-256 hex of the normalized address.
func cacheKey(address string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(address)), " ")
	h := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", h)
}
