package geocode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/pickup-planner/internal/model"
)

// Client resolves address rosters through a cache-first lookup. The cache is
// optional; with a nil cache every address goes to the provider.
type Client struct {
	provider Provider
	cache    *Cache
}

// NewClient creates a Client. cache may be nil to disable caching.
func NewClient(provider Provider, cache *Cache) *Client {
	return &Client{provider: provider, cache: cache}
}

// Resolve geocodes every address in the roster, returning a new slice with
// coordinates filled in. Any address that cannot be resolved makes the whole
// call fail, with every failure listed by row so the roster can be fixed in
// one pass.
func (c *Client) Resolve(ctx context.Context, addrs []model.Address) ([]model.Address, error) {
	resolved := make([]model.Address, len(addrs))
	var failures []string
	hits, misses := 0, 0

	for i, a := range addrs {
		resolved[i] = a

		r, err := c.lookup(ctx, a.Text)
		if err != nil {
			return nil, err
		}
		if !r.Matched {
			failures = append(failures, fmt.Sprintf("address #%d %q could not be geocoded", a.Row, a.Text))
			continue
		}

		coord := model.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude}
		if err := coord.Validate(); err != nil {
			return nil, eris.Wrapf(err, "geocode: backend returned invalid coordinate for address #%d", a.Row)
		}
		resolved[i].Coordinate = &coord

		if r.Source == "cache" {
			hits++
		} else {
			misses++
		}
	}

	zap.L().Info("geocode: roster resolved",
		zap.Int("addresses", len(addrs)),
		zap.Int("cache_hits", hits),
		zap.Int("lookups", misses),
		zap.Int("failures", len(failures)),
	)

	if len(failures) > 0 {
		return nil, eris.Errorf("geocode: %d address(es) failed:\n%s",
			len(failures), strings.Join(failures, "\n"))
	}
	return resolved, nil
}

// lookup consults the cache before the provider and writes fresh provider
// answers back through.
func (c *Client) lookup(ctx context.Context, address string) (*Result, error) {
	key := cacheKey(address)

	if c.cache != nil {
		if r, ok, err := c.cache.Get(ctx, key); err != nil {
			// A broken cache should not block geocoding; fall through to the
			// provider and try to rebuild the entry.
			zap.L().Warn("geocode: cache read failed", zap.Error(err))
		} else if ok {
			return r, nil
		}
	}

	r, err := c.provider.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, r); err != nil {
			zap.L().Warn("geocode: cache write failed", zap.Error(err))
		}
	}
	return r, nil
}
