package aqi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/plotwise/plotwise/internal/signals"
	"github.com/plotwise/plotwise/pkg/config"
	"github.com/plotwise/plotwise/pkg/httputil"
	"github.com/plotwise/plotwise/pkg/logger"
	"github.com/plotwise/plotwise/pkg/redis"
)

// Ensure Client satisfies the provider contract
var _ signals.AQIClient = (*Client)(nil)

// Client fetches air quality readings from a WAQI-compatible feed
type Client struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	logger     *logger.Logger
	baseURL    string
	apiKey     string
}

// NewClient creates a new AQI client
func NewClient(cfg *config.Config, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		cache:      cache,
		logger:     log,
		baseURL:    cfg.AQI.BaseURL,
		apiKey:     cfg.AQI.APIKey,
	}
}

// feedResponse is the WAQI geo feed response shape
type feedResponse struct {
	Status string `json:"status"`
	Data   struct {
		AQI  int `json:"aqi"`
		IAQI map[string]struct {
			V float64 `json:"v"`
		} `json:"iaqi"`
		Dominant string `json:"dominentpol"`
	} `json:"data"`
}

// Nearest returns the reading of the monitoring station closest to the
// coordinates.
func (c *Client) Nearest(ctx context.Context, lat, lng float64) (*signals.AQIReading, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("AQI API key not configured")
	}

	cacheKey := fmt.Sprintf("aqi:%.3f:%.3f", lat, lng)
	if c.cache != nil {
		var cached signals.AQIReading
		if found, err := c.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	fullURL := fmt.Sprintf("%s/feed/geo:%f;%f/?token=%s", c.baseURL, lat, lng, c.apiKey)

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("AQI request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AQI service returned status %d", resp.StatusCode)
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode AQI response: %w", err)
	}

	if feed.Status != "ok" {
		return nil, fmt.Errorf("AQI feed status: %s", feed.Status)
	}

	reading := &signals.AQIReading{
		AQI:               feed.Data.AQI,
		DominantPollutant: feed.Data.Dominant,
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, reading, redis.TTLShort); err != nil {
			c.logger.WithError(err).Warn("Failed to cache AQI reading")
		}
	}

	return reading, nil
}
