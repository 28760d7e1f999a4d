package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/plotwise/plotwise/internal/signals"
	"github.com/plotwise/plotwise/pkg/httputil"
	"github.com/plotwise/plotwise/pkg/logger"
)

// Ensure Client satisfies the provider contract
var _ signals.AmenityCounter = (*Client)(nil)

const defaultBaseURL = "https://overpass-api.de/api/interpreter"

// Client counts mapped features near a location using the Overpass API.
// Hospital density, school density and waterway proximity all come from
// here.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Overpass client
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    defaultBaseURL,
	}
}

// overpassResponse is the subset of the Overpass JSON output we consume
type overpassResponse struct {
	Elements []struct {
		ID int64 `json:"id"`
	} `json:"elements"`
}

// CountNearby counts features of a kind within radiusM of the
// coordinates. Supported kinds: "hospital", "school" (amenity nodes and
// ways) and "waterway" (rivers, streams, drains and canals).
func (c *Client) CountNearby(ctx context.Context, lat, lng float64, kind string, radiusM int) (int, error) {
	query, err := buildQuery(lat, lng, kind, radiusM)
	if err != nil {
		return 0, err
	}

	form := url.Values{}
	form.Set("data", query)

	resp, err := c.httpClient.Post(ctx, c.baseURL,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("overpass returned status %d", resp.StatusCode)
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	return len(parsed.Elements), nil
}

// buildQuery renders the Overpass QL query for a kind
func buildQuery(lat, lng float64, kind string, radiusM int) (string, error) {
	switch kind {
	case "hospital", "school":
		return fmt.Sprintf(
			`[out:json][timeout:10];(node["amenity"=%q](around:%d,%f,%f);way["amenity"=%q](around:%d,%f,%f););out ids;`,
			kind, radiusM, lat, lng, kind, radiusM, lat, lng,
		), nil
	case "waterway":
		return fmt.Sprintf(
			`[out:json][timeout:10];way["waterway"~"river|stream|drain|canal"](around:%d,%f,%f);out ids;`,
			radiusM, lat, lng,
		), nil
	default:
		return "", fmt.Errorf("unsupported amenity kind: %s", kind)
	}
}
