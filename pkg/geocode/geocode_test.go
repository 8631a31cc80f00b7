package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/sells-group/pickup-planner/internal/model"
)

func unlimited() NominatimOption {
	return WithRateLimit(rate.NewLimiter(rate.Inf, 1))
}

func TestCacheKey_NormalizesInput(t *testing.T) {
	assert.Equal(t, cacheKey("123 Main St"), cacheKey("  123   MAIN   st "))
	assert.NotEqual(t, cacheKey("123 Main St"), cacheKey("124 Main St"))
}

func TestNominatim_Geocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "pickup-planner-test", r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"lat":"47.6062","lon":"-122.3321","display_name":"Seattle, WA"}]`))
	}))
	defer srv.Close()

	p := NewNominatim("pickup-planner-test", WithBaseURL(srv.URL), unlimited())
	r, err := p.Geocode(context.Background(), "400 Broad St, Seattle")
	require.NoError(t, err)

	assert.True(t, r.Matched)
	assert.InDelta(t, 47.6062, r.Latitude, 1e-9)
	assert.InDelta(t, -122.3321, r.Longitude, 1e-9)
	assert.Equal(t, "Seattle, WA", r.DisplayName)
	assert.Equal(t, "nominatim", r.Source)
}

func TestNominatim_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := NewNominatim("pickup-planner-test", WithBaseURL(srv.URL), unlimited())
	r, err := p.Geocode(context.Background(), "nowhere at all")
	require.NoError(t, err)
	assert.False(t, r.Matched)
}

func TestNominatim_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewNominatim("pickup-planner-test", WithBaseURL(srv.URL), unlimited())
	_, err := p.Geocode(context.Background(), "anywhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()
	require.NoError(t, cache.Migrate(ctx))

	key := cacheKey("123 Main St")

	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	put := &Result{Latitude: 47.6, Longitude: -122.3, DisplayName: "Seattle", Matched: true, Source: "nominatim"}
	require.NoError(t, cache.Put(ctx, key, put))

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cache", got.Source)
	assert.True(t, got.Matched)
	assert.InDelta(t, 47.6, got.Latitude, 1e-9)
	assert.Equal(t, "Seattle", got.DisplayName)
}

func TestCache_StoresNonMatches(t *testing.T) {
	ctx := context.Background()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()
	require.NoError(t, cache.Migrate(ctx))

	key := cacheKey("unresolvable")
	require.NoError(t, cache.Put(ctx, key, &Result{Matched: false, Source: "nominatim"}))

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got.Matched)
}

// countingProvider records how many times the backend is actually hit.
type countingProvider struct {
	calls  int
	result Result
}

func (p *countingProvider) Name() string { return "fake" }

func (p *countingProvider) Geocode(_ context.Context, _ string) (*Result, error) {
	p.calls++
	r := p.result
	return &r, nil
}

func TestClient_CacheHitSkipsProvider(t *testing.T) {
	ctx := context.Background()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()
	require.NoError(t, cache.Migrate(ctx))

	provider := &countingProvider{result: Result{Latitude: 47.6, Longitude: -122.3, Matched: true, Source: "fake"}}
	client := NewClient(provider, cache)

	roster := []model.Address{{Row: 1, Text: "123 Main St"}}

	first, err := client.Resolve(ctx, roster)
	require.NoError(t, err)
	require.True(t, first[0].Resolved())
	assert.Equal(t, 1, provider.calls)

	second, err := client.Resolve(ctx, roster)
	require.NoError(t, err)
	require.True(t, second[0].Resolved())
	assert.Equal(t, 1, provider.calls, "cache hit should not reach the provider")
}

func TestClient_FailuresListEveryRow(t *testing.T) {
	provider := &countingProvider{result: Result{Matched: false, Source: "fake"}}
	client := NewClient(provider, nil)

	roster := []model.Address{
		{Row: 1, Text: "bad one"},
		{Row: 2, Text: "bad two"},
	}

	_, err := client.Resolve(context.Background(), roster)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address #1")
	assert.Contains(t, err.Error(), "address #2")
	assert.Contains(t, err.Error(), "2 address(es) failed")
}

func TestClient_InputUntouched(t *testing.T) {
	provider := &countingProvider{result: Result{Latitude: 10, Longitude: 20, Matched: true, Source: "fake"}}
	client := NewClient(provider, nil)

	roster := []model.Address{{Row: 1, Text: "123 Main St"}}
	out, err := client.Resolve(context.Background(), roster)
	require.NoError(t, err)

	assert.Nil(t, roster[0].Coordinate, "Resolve must not mutate its input")
	assert.NotNil(t, out[0].Coordinate)
}
