package listings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/plotwise/plotwise/internal/contracts"
	"github.com/plotwise/plotwise/pkg/config"
	"github.com/plotwise/plotwise/pkg/httputil"
	"github.com/plotwise/plotwise/pkg/logger"
)

const sourceName = "listings_portal"

// Scraper collects property sale listings from a listings portal. The
// scraped records keep the comparable-transaction store fresh; pricing
// degrades gracefully when the store is empty, so scraping is best
// effort.
type Scraper struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	enabled    bool
}

// NewScraper creates a new listings scraper
func NewScraper(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Scraper {
	return &Scraper{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.Listings.BaseURL,
		enabled:    cfg.Listings.Enabled,
	}
}

// Enabled reports whether scraping is configured
func (s *Scraper) Enabled() bool {
	return s.enabled && s.baseURL != ""
}

// ScrapeCity fetches current sale listings for one city slug
func (s *Scraper) ScrapeCity(ctx context.Context, citySlug string) ([]*contracts.Listing, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("listings scraping is disabled")
	}

	html, err := s.fetchHTML(ctx, fmt.Sprintf("/property-for-sale/%s", citySlug))
	if err != nil {
		return nil, err
	}

	listings, err := s.parseListingsHTML(html)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"city":  citySlug,
		"count": len(listings),
	}).Debug("Scraped listings")
	return listings, nil
}

// fetchHTML fetches one portal page
func (s *Scraper) fetchHTML(ctx context.Context, path string) (string, error) {
	resp, err := s.httpClient.Get(ctx, s.baseURL+path)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}

// parseListingsHTML extracts listing cards from a portal results page
func (s *Scraper) parseListingsHTML(html string) ([]*contracts.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listings HTML: %w", err)
	}

	var listings []*contracts.Listing

	doc.Find("div.listing-card").Each(func(i int, card *goquery.Selection) {
		ref, ok := card.Attr("data-listing-id")
		if !ok || ref == "" {
			return
		}

		price, ok := ParsePriceINR(card.Find(".listing-price").Text())
		if !ok {
			return
		}

		lat, latOK := parseCoord(card.AttrOr("data-lat", ""))
		lng, lngOK := parseCoord(card.AttrOr("data-lng", ""))
		if !latOK || !lngOK {
			return
		}

		listings = append(listings, &contracts.Listing{
			Source:       sourceName,
			SourceRef:    ref,
			Title:        strings.TrimSpace(card.Find(".listing-title").Text()),
			PropertyType: normalizeListingType(card.AttrOr("data-property-type", "")),
			Price:        price,
			Lat:          lat,
			Lng:          lng,
			ListedAt:     time.Now().UTC(),
		})
	})

	return listings, nil
}

var priceRe = regexp.MustCompile(`(?i)([\d,.]+)\s*(cr|crore|lac|lakh|l|k)?`)

// ParsePriceINR parses portal price text like "₹ 45 Lakh" or "₹1.2 Cr"
// into rupees.
func ParsePriceINR(text string) (int64, bool) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "₹", ""))
	if text == "" {
		return 0, false
	}

	m := priceRe.FindStringSubmatch(text)
	if m == nil || m[1] == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || value <= 0 {
		return 0, false
	}

	switch strings.ToLower(m[2]) {
	case "cr", "crore":
		value *= 10_000_000
	case "lac", "lakh", "l":
		value *= 100_000
	case "k":
		value *= 1_000
	}

	return int64(value), true
}

// parseCoord parses a latitude or longitude attribute
func parseCoord(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}

// normalizeListingType maps portal type labels onto the request
// vocabulary.
func normalizeListingType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "flat", "apartment":
		return "flat"
	case "house", "villa", "independent house":
		return "house"
	case "plot", "land", "residential land":
		return "land"
	default:
		return "unknown"
	}
}
