package listings

import (
	"testing"

	"github.com/plotwise/plotwise/pkg/config"
	"github.com/plotwise/plotwise/pkg/logger"
)

func TestParsePriceINR(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"₹ 45 Lakh", 4_500_000, true},
		{"₹1.2 Cr", 12_000_000, true},
		{"₹ 2 Crore", 20_000_000, true},
		{"₹ 85 Lac", 8_500_000, true},
		{"₹ 95L", 9_500_000, true},
		{"₹ 750k", 750_000, true},
		{"₹ 45,00,000", 4_500_000, true},
		{"4500000", 4_500_000, true},
		{"", 0, false},
		{"Price on request", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParsePriceINR(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParsePriceINR(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseListingsHTML(t *testing.T) {
	html := `
	<html><body>
	<div class="listing-card" data-listing-id="A100" data-lat="25.5941" data-lng="85.1376" data-property-type="Flat">
		<span class="listing-title">2 BHK near Boring Road</span>
		<span class="listing-price">₹ 45 Lakh</span>
	</div>
	<div class="listing-card" data-listing-id="A101" data-lat="25.6" data-lng="85.1" data-property-type="Residential Land">
		<span class="listing-title">3 dismil plot, Danapur</span>
		<span class="listing-price">₹1.2 Cr</span>
	</div>
	<div class="listing-card" data-lat="25.6" data-lng="85.1">
		<span class="listing-title">Missing id, skipped</span>
		<span class="listing-price">₹ 30 Lakh</span>
	</div>
	<div class="listing-card" data-listing-id="A102" data-lat="25.6" data-lng="85.1">
		<span class="listing-title">No price, skipped</span>
		<span class="listing-price">Price on request</span>
	</div>
	</body></html>`

	s := &Scraper{logger: testLogger()}

	got, err := s.parseListingsHTML(html)
	if err != nil {
		t.Fatalf("parseListingsHTML() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(got))
	}

	first := got[0]
	if first.SourceRef != "A100" || first.Price != 4_500_000 || first.PropertyType != "flat" {
		t.Errorf("unexpected first listing: %+v", first)
	}
	if first.Lat != 25.5941 || first.Lng != 85.1376 {
		t.Errorf("unexpected coordinates: %v,%v", first.Lat, first.Lng)
	}
	if first.Title != "2 BHK near Boring Road" {
		t.Errorf("unexpected title: %q", first.Title)
	}

	second := got[1]
	if second.SourceRef != "A101" || second.Price != 12_000_000 || second.PropertyType != "land" {
		t.Errorf("unexpected second listing: %+v", second)
	}
}

func TestNormalizeListingType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Flat", "flat"},
		{"apartment", "flat"},
		{"Villa", "house"},
		{"Independent House", "house"},
		{"Plot", "land"},
		{"Residential Land", "land"},
		{"Commercial", "unknown"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		if got := normalizeListingType(tt.in); got != tt.want {
			t.Errorf("normalizeListingType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScraper_Disabled(t *testing.T) {
	s := NewScraper(&config.Config{}, nil, testLogger())

	if s.Enabled() {
		t.Error("scraper without base URL should be disabled")
	}
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
	})
}
