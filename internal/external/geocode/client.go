package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/plotwise/plotwise/internal/contracts"
	"github.com/plotwise/plotwise/pkg/config"
	"github.com/plotwise/plotwise/pkg/httputil"
	"github.com/plotwise/plotwise/pkg/logger"
	"github.com/plotwise/plotwise/pkg/redis"
)

// Client resolves free-form addresses into coordinates via a
// Nominatim-compatible geocoding service. Resolved locations are cached;
// the upstream usage policy caps request rates, so the HTTP client is
// rate limited to 1 req/s.
type Client struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	logger     *logger.Logger
	baseURL    string
	userAgent  string
}

// NewClient creates a new geocoding client
func NewClient(cfg *config.Config, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) *Client {
	httpClient.WithRateLimit(1, 1)

	return &Client{
		httpClient: httpClient,
		cache:      cache,
		logger:     log,
		baseURL:    cfg.Geocode.BaseURL,
		userAgent:  cfg.Geocode.UserAgent,
	}
}

// nominatimResult is one entry of a Nominatim search response
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve turns an address and/or explicit coordinates into a Location.
// Explicit coordinates win over the address. Returns an unresolved
// (zero) location rather than an error when nothing matches; the
// orchestrator short-circuits on that.
func (c *Client) Resolve(ctx context.Context, address string, lat, lng *float64) (*contracts.Location, error) {
	if lat != nil && lng != nil && (*lat != 0 || *lng != 0) {
		return &contracts.Location{Lat: *lat, Lng: *lng}, nil
	}

	if address == "" {
		return &contracts.Location{}, nil
	}

	cacheKey := "geocode:" + address
	if c.cache != nil {
		var cached contracts.Location
		if found, err := c.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	loc, err := c.search(ctx, address)
	if err != nil {
		return nil, err
	}

	if c.cache != nil && loc.Resolved() {
		if err := c.cache.Set(ctx, cacheKey, loc, redis.TTLMedium); err != nil {
			c.logger.WithError(err).Warn("Failed to cache geocode result")
		}
	}

	return loc, nil
}

// search queries the geocoding service
func (c *Client) search(ctx context.Context, address string) (*contracts.Location, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", "in")

	fullURL := httputil.BuildURL(c.baseURL, "/search", params)

	resp, err := c.httpClient.GetWithHeaders(ctx, fullURL, map[string]string{
		"User-Agent": c.userAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode service returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if len(results) == 0 {
		c.logger.WithField("address", address).Warn("Address could not be geocoded")
		return &contracts.Location{}, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocode response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocode response: %w", err)
	}

	return &contracts.Location{
		Lat:         lat,
		Lng:         lng,
		DisplayName: results[0].DisplayName,
	}, nil
}
