package signals

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/plotwise/plotwise/internal/contracts"
)

func testLocation() *contracts.Location {
	return &contracts.Location{Lat: 25.5941, Lng: 85.1376, DisplayName: "Patna, Bihar"}
}

// fakeTxnRepo returns a fixed comparable set
type fakeTxnRepo struct {
	txns []Transaction
	err  error
}

func (f *fakeTxnRepo) GetComparables(ctx context.Context, loc *contracts.Location, propertyType string, radiusM int) ([]Transaction, error) {
	return f.txns, f.err
}

func builtUpRequest(price int64) *contracts.EvaluationRequest {
	req := &contracts.EvaluationRequest{
		AskingPrice:  price,
		PropertyType: "2bhk",
	}
	req.Normalize()
	return req
}

func comparables(price int64, n int) []Transaction {
	txns := make([]Transaction, n)
	for i := range txns {
		txns[i] = Transaction{Price: price, PropertyType: "2bhk"}
	}
	return txns
}

func TestPricingProvider_NoComparables(t *testing.T) {
	p := NewPricingProvider(&fakeTxnRepo{}, nil)

	sig := p.Signal(context.Background(), testLocation(), builtUpRequest(4_500_000), contracts.RegionTier2_3)

	if sig.Score != 0.5 {
		t.Errorf("Score = %v, want 0.5", sig.Score)
	}
	if sig.Detail("pricing_basis") != PricingBasisNoComparables {
		t.Errorf("pricing_basis = %v, want %v", sig.Detail("pricing_basis"), PricingBasisNoComparables)
	}
	if !strings.Contains(sig.Summary, "Insufficient transaction data") {
		t.Errorf("unexpected summary: %s", sig.Summary)
	}
}

func TestPricingProvider_ComparableBands(t *testing.T) {
	tests := []struct {
		name      string
		asking    int64
		avg       int64
		count     int
		wantScore float64
	}{
		{"within 15 pct", 4_300_000, 4_000_000, 8, 0.85},
		{"within 35 pct", 5_200_000, 4_000_000, 8, 0.65},
		{"far above", 6_500_000, 4_000_000, 8, 0.4},
		{"thin data penalty", 4_300_000, 4_000_000, 3, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPricingProvider(&fakeTxnRepo{txns: comparables(tt.avg, tt.count)}, nil)

			sig := p.Signal(context.Background(), testLocation(), builtUpRequest(tt.asking), contracts.RegionTier2_3)

			if math.Abs(sig.Score-tt.wantScore) > 0.0001 {
				t.Errorf("Score = %v, want %v", sig.Score, tt.wantScore)
			}
			if got := sig.Details["transaction_count"]; got != tt.count {
				t.Errorf("transaction_count = %v, want %v", got, tt.count)
			}
		})
	}
}

func TestPricingProvider_ComparableDirection(t *testing.T) {
	p := NewPricingProvider(&fakeTxnRepo{txns: comparables(4_000_000, 6)}, nil)

	above := p.Signal(context.Background(), testLocation(), builtUpRequest(4_400_000), contracts.RegionTier2_3)
	if !strings.Contains(above.Summary, "above the local average") {
		t.Errorf("expected 'above' phrasing: %s", above.Summary)
	}

	below := p.Signal(context.Background(), testLocation(), builtUpRequest(3_600_000), contracts.RegionTier2_3)
	if !strings.Contains(below.Summary, "below the local average") {
		t.Errorf("expected 'below' phrasing: %s", below.Summary)
	}
}

func TestPricingProvider_LandBands(t *testing.T) {
	area := 1306.8 // 3 dismil

	tests := []struct {
		name      string
		tier      contracts.RegionTier
		asking    int64
		wantScore float64
	}{
		// tier 2/3 band: 200k - 600k per dismil, mid 400k, high compressed to 570k
		{"reasonable tier23", contracts.RegionTier2_3, 1_000_000, 0.7},  // ~333k/dismil
		{"high-end tier23", contracts.RegionTier2_3, 1_500_000, 0.55},   // 500k/dismil
		{"aggressive tier23", contracts.RegionTier2_3, 2_400_000, 0.35}, // 800k/dismil
		// tier 1 band: 600k - 2.5M per dismil, mid 1.55M
		{"reasonable tier1", contracts.RegionTier1, 4_000_000, 0.7},   // ~1.33M/dismil
		{"aggressive tier1", contracts.RegionTier1, 9_000_000, 0.35},  // 3M/dismil
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPricingProvider(&fakeTxnRepo{}, nil)
			req := &contracts.EvaluationRequest{
				AskingPrice:  tt.asking,
				PropertyType: "land",
				LandAreaSqft: &area,
			}
			req.Normalize()

			sig := p.Signal(context.Background(), testLocation(), req, tt.tier)

			if math.Abs(sig.Score-tt.wantScore) > 0.0001 {
				t.Errorf("Score = %v, want %v", sig.Score, tt.wantScore)
			}
			if sig.Detail("pricing_basis") != "heuristic_land_band" {
				t.Errorf("pricing_basis = %v, want heuristic_land_band", sig.Detail("pricing_basis"))
			}
			if _, ok := sig.Details["recommended_band"].(map[string]int64); !ok {
				t.Errorf("recommended_band missing or mistyped: %v", sig.Details["recommended_band"])
			}
		})
	}
}

func TestPricingProvider_LandWithoutArea(t *testing.T) {
	p := NewPricingProvider(&fakeTxnRepo{}, nil)
	req := &contracts.EvaluationRequest{
		AskingPrice:  2_000_000,
		PropertyType: "plot",
	}
	req.Normalize()

	sig := p.Signal(context.Background(), testLocation(), req, contracts.RegionTier2_3)

	if sig.Score != 0.45 {
		t.Errorf("Score = %v, want 0.45", sig.Score)
	}
	if !strings.Contains(sig.Summary, "Land area not provided") {
		t.Errorf("unexpected summary: %s", sig.Summary)
	}
}

func TestPricingProvider_RepoErrorDegrades(t *testing.T) {
	p := NewPricingProvider(&fakeTxnRepo{err: errors.New("db down")}, testLogger())

	sig := p.Signal(context.Background(), testLocation(), builtUpRequest(4_500_000), contracts.RegionTier2_3)

	if sig.Score != 0.5 || sig.Detail("pricing_basis") != PricingBasisNoComparables {
		t.Errorf("repo failure should degrade to the no-comparables signal, got %v / %v",
			sig.Score, sig.Detail("pricing_basis"))
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{600, "600"},
		{600000, "600,000"},
		{2500000, "2,500,000"},
		{-45000, "-45,000"},
	}

	for _, tt := range tests {
		if got := formatINR(tt.in); got != tt.want {
			t.Errorf("formatINR(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
