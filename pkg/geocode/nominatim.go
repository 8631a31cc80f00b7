package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// NominatimProvider geocodes through the Nominatim /search endpoint. The
// public instance's usage policy allows at most one request per second, so
// every call waits on the limiter first.
type NominatimProvider struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

// NominatimOption configures a NominatimProvider.
type NominatimOption func(*NominatimProvider)

// WithBaseURL points the provider at a different Nominatim instance.
func WithBaseURL(u string) NominatimOption {
	return func(p *NominatimProvider) {
		p.baseURL = u
	}
}

// WithHTTPClient swaps the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) NominatimOption {
	return func(p *NominatimProvider) {
		p.client = c
	}
}

// WithRateLimit overrides the default 1 req/s limit, for self-hosted
// instances that allow more.
func WithRateLimit(l *rate.Limiter) NominatimOption {
	return func(p *NominatimProvider) {
		p.limiter = l
	}
}

// NewNominatim creates a provider identifying itself with userAgent.
// Nominatim rejects requests without a meaningful User-Agent.
func NewNominatim(userAgent string, opts ...NominatimOption) *NominatimProvider {
	p := &NominatimProvider{
		baseURL:   DefaultBaseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements Provider.
func (p *NominatimProvider) Name() string { return "nominatim" }

// nominatimResult is one entry of the /search JSON response. Nominatim
// serializes coordinates as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode implements Provider. A response with no candidates yields
// Matched=false and no error.
func (p *NominatimProvider) Geocode(ctx context.Context, address string) (*Result, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: rate limiter wait")
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/search?%s", p.baseURL, q.Encode()), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: build request")
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "geocode: query nominatim for %q", address)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, eris.Errorf("geocode: nominatim returned %d: %s", resp.StatusCode, body)
	}

	var candidates []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, eris.Wrap(err, "geocode: decode nominatim response")
	}

	if len(candidates) == 0 {
		zap.L().Debug("geocode: no match", zap.String("address", address))
		return &Result{Matched: false, Source: p.Name()}, nil
	}

	lat, err := strconv.ParseFloat(candidates[0].Lat, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "geocode: parse latitude %q", candidates[0].Lat)
	}
	lon, err := strconv.ParseFloat(candidates[0].Lon, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "geocode: parse longitude %q", candidates[0].Lon)
	}

	return &Result{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: candidates[0].DisplayName,
		Matched:     true,
		Source:      p.Name(),
	}, nil
}
