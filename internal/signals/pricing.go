package signals

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/plotwise/plotwise/internal/contracts"
	"github.com/plotwise/plotwise/pkg/logger"
)

// One dismil in square feet (land rates in Tier 2/3 India are quoted
// per dismil)
const dismilSqft = 435.6

// Transaction is one comparable sale near the evaluated property
type Transaction struct {
	Price        int64
	PropertyType string
}

// TransactionRepository provides comparable transactions (dependency
// inversion: the concrete repository lives in internal/repository)
type TransactionRepository interface {
	GetComparables(ctx context.Context, loc *contracts.Location, propertyType string, radiusM int) ([]Transaction, error)
}

// PricingProvider produces the pricing signal.
// Built-up property is scored against comparable transactions; land is
// scored against a regional per-dismil negotiation band.
type PricingProvider struct {
	txns   TransactionRepository
	logger *logger.Logger
}

// NewPricingProvider creates a new pricing provider
func NewPricingProvider(txns TransactionRepository, log *logger.Logger) *PricingProvider {
	return &PricingProvider{
		txns:   txns,
		logger: log,
	}
}

// Signal computes the pricing signal for one request
func (p *PricingProvider) Signal(
	ctx context.Context,
	loc *contracts.Location,
	req *contracts.EvaluationRequest,
	tier contracts.RegionTier,
) *contracts.Signal {
	if req.IsLand() {
		return p.landSignal(req, tier)
	}

	return p.builtUpSignal(ctx, loc, req)
}

// builtUpSignal scores flats and houses against recent comparables
func (p *PricingProvider) builtUpSignal(
	ctx context.Context,
	loc *contracts.Location,
	req *contracts.EvaluationRequest,
) *contracts.Signal {
	txns, err := p.txns.GetComparables(ctx, loc, req.PropertyType, req.RadiusM)
	if err != nil {
		p.logger.WithError(err).Warn("Comparable lookup failed, degrading pricing signal")
		txns = nil
	}

	if len(txns) == 0 {
		return &contracts.Signal{
			Score:   0.5,
			Summary: "Insufficient transaction data; pricing confidence is low",
			Details: map[string]interface{}{
				"pricing_basis":   PricingBasisNoComparables,
				"confidence_note": "Low confidence due to lack of recent transactions",
			},
		}
	}

	var sum int64
	for _, t := range txns {
		sum += t.Price
	}
	avgPrice := float64(sum) / float64(len(txns))

	diffPct := (float64(req.AskingPrice) - avgPrice) / avgPrice
	absDiff := math.Abs(diffPct)

	var score float64
	switch {
	case absDiff <= 0.15:
		score = 0.85
	case absDiff <= 0.35:
		score = 0.65
	default:
		score = 0.4
	}

	if len(txns) < 5 {
		score -= 0.1
	}

	score = math.Max(0.0, math.Min(1.0, score))

	direction := "below"
	if diffPct > 0 {
		direction = "above"
	}

	confidenceNote := "Pricing confidence is high"
	if len(txns) < 5 {
		confidenceNote = "Pricing confidence is moderate due to limited transaction volume"
	}

	return &contracts.Signal{
		Score: math.Round(score*100) / 100,
		Summary: fmt.Sprintf(
			"Asking price is %.1f%% %s the local average based on %d recent transactions",
			absDiff*100, direction, len(txns),
		),
		Details: map[string]interface{}{
			"local_avg_price":   math.Round(avgPrice),
			"difference_pct":    math.Round(diffPct*1000) / 10,
			"transaction_count": len(txns),
			"pricing_basis":     "transaction_comparison",
			"confidence_note":   confidenceNote,
		},
	}
}

// landSignal scores land parcels against an India-realistic per-dismil
// negotiation band for the region tier.
func (p *PricingProvider) landSignal(req *contracts.EvaluationRequest, tier contracts.RegionTier) *contracts.Signal {
	liquidityNote := "Land resale liquidity is typically lower in Tier 2/3 regions"
	if tier == contracts.RegionTier1 {
		liquidityNote = "Land liquidity is generally stronger in metro regions"
	}

	if req.LandAreaSqft == nil || *req.LandAreaSqft <= 0 {
		return &contracts.Signal{
			Score:   0.45,
			Summary: "Land area not provided; pricing assessment is incomplete",
			Details: map[string]interface{}{
				"asking_rate_per_dismil": nil,
				"recommended_band":       nil,
				"pricing_basis":          "heuristic_land_band",
				"confidence_note":        "Land area not provided; unable to estimate rate",
				"liquidity_note":         liquidityNote,
			},
		}
	}

	dismil := *req.LandAreaSqft / dismilSqft
	askingRate := float64(req.AskingPrice) / dismil

	var baseLow, baseHigh float64
	if tier == contracts.RegionTier1 {
		baseLow, baseHigh = 600_000, 2_500_000
	} else {
		baseLow, baseHigh = 200_000, 600_000
	}

	baseMid := (baseLow + baseHigh) / 2

	// Liquidity compression for Tier 2/3
	if tier == contracts.RegionTier2_3 {
		baseHigh *= 0.95
	}

	var score float64
	var verdict string
	switch {
	case askingRate <= baseMid:
		score = 0.7
		verdict = "falls within a reasonable negotiation range"
	case askingRate <= baseHigh:
		score = 0.55
		verdict = "is priced toward the higher end of the local range"
	default:
		score = 0.35
		verdict = "appears aggressively priced for this locality"
	}

	return &contracts.Signal{
		Score: math.Round(score*100) / 100,
		Summary: fmt.Sprintf(
			"Asking land rate is ₹%s per dismil, which %s. "+
				"A practical negotiation range is ₹%s–₹%s per dismil for a %s market.",
			formatINR(askingRate), verdict,
			formatINR(baseLow), formatINR(baseHigh),
			strings.ReplaceAll(string(tier), "_", " "),
		),
		Details: map[string]interface{}{
			"asking_rate_per_dismil": math.Round(askingRate),
			"recommended_band": map[string]int64{
				"low":  int64(math.Round(baseLow)),
				"mid":  int64(math.Round(baseMid)),
				"high": int64(math.Round(baseHigh)),
			},
			"pricing_basis": "heuristic_land_band",
			"confidence_note": "Derived from regional heuristics and liquidity patterns; " +
				"exact transaction data is unavailable",
			"liquidity_note": liquidityNote,
		},
	}
}

// formatINR renders a rupee amount with thousand separators
func formatINR(v float64) string {
	s := strconv.FormatInt(int64(math.Round(v)), 10)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
