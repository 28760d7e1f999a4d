package signals

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/plotwise/plotwise/internal/contracts"
	"github.com/plotwise/plotwise/pkg/logger"
	"github.com/plotwise/plotwise/pkg/redis"
)

// roadWidthRule classifies plots purely on road width (feet), the single
// strongest determinant of land value, construction feasibility and
// resale liquidity in Tier 2/3 India. Rules are checked top-down; the
// first rule whose minimum is met wins.
type roadWidthRule struct {
	category        string
	label           string
	minFt           float64
	priceMultiplier float64
	liquidityFactor float64
}

var roadWidthRules = []roadWidthRule{
	{"excellent", "Excellent road frontage (≥35 ft)", 35, 1.15, 0.75},
	{"good", "Good internal road (30–34 ft)", 30, 1.05, 0.9},
	{"average", "Average residential road (20–29 ft)", 20, 0.95, 1.1},
	{"bad", "Narrow access / gali (<20 ft)", 0, 0.8, 1.4},
}

// RoadAccessProvider classifies road frontage.
// Width beats road name; user input beats inference; low confidence
// beats wrong confidence.
type RoadAccessProvider struct {
	cache  *redis.Cache
	logger *logger.Logger
}

// NewRoadAccessProvider creates a new road access provider
func NewRoadAccessProvider(cache *redis.Cache, log *logger.Logger) *RoadAccessProvider {
	return &RoadAccessProvider{
		cache:  cache,
		logger: log,
	}
}

// Signal classifies the plot's road access
func (p *RoadAccessProvider) Signal(ctx context.Context, loc *contracts.Location, userWidthFt *float64) *contracts.RoadAccess {
	cacheKey := roadCacheKey(loc, userWidthFt)

	if p.cache != nil {
		var cached contracts.RoadAccess
		if found, err := p.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			return &cached
		}
	}

	result := p.classify(userWidthFt)

	if p.cache != nil {
		if err := p.cache.Set(ctx, cacheKey, result, redis.TTLLong); err != nil {
			p.logger.WithError(err).Warn("Failed to cache road access signal")
		}
	}

	return result
}

// classify applies the width rules
func (p *RoadAccessProvider) classify(userWidthFt *float64) *contracts.RoadAccess {
	confidence := 0.4

	if userWidthFt == nil {
		return &contracts.RoadAccess{
			Signal: contracts.Signal{
				Score: 0.5,
				Summary: "Exact road width could not be verified. " +
					"Internal residential access is assumed, which may impact " +
					"construction feasibility and resale liquidity.",
				Details: map[string]interface{}{
					"road_width_ft": nil,
					"source":        "not_provided",
				},
			},
			Category:        "unknown",
			Label:           "Road width not verified",
			Confidence:      confidence,
			PriceMultiplier: 1.0,
			LiquidityFactor: 1.0,
		}
	}

	widthFt := *userWidthFt
	confidence = 0.9

	for _, rule := range roadWidthRules {
		if widthFt < rule.minFt {
			continue
		}

		return &contracts.RoadAccess{
			Signal: contracts.Signal{
				Score: scoreForLiquidity(rule.liquidityFactor),
				Summary: fmt.Sprintf(
					"Plot has approximately %d ft road frontage, classified as %s. "+
						"This materially impacts land value, construction ease, "+
						"and long-term resale potential.",
					int(widthFt), strings.ToLower(rule.label),
				),
				Details: map[string]interface{}{
					"road_width_ft":        widthFt,
					"classification_basis": "user_provided",
				},
			},
			Category:        rule.category,
			Label:           rule.label,
			Confidence:      confidence,
			PriceMultiplier: rule.priceMultiplier,
			LiquidityFactor: rule.liquidityFactor,
		}
	}

	// Unreachable: the last rule accepts any non-negative width
	return &contracts.RoadAccess{
		Signal: contracts.Signal{
			Score:   0.5,
			Summary: "Unable to classify road access reliably.",
			Details: map[string]interface{}{},
		},
		Category:        "unknown",
		Label:           "Unclassified road access",
		Confidence:      confidence,
		PriceMultiplier: 1.0,
		LiquidityFactor: 1.0,
	}
}

// scoreForLiquidity maps a liquidity factor onto the common [0,1] signal
// scale (factor 1.0 neutral → 0.5)
func scoreForLiquidity(factor float64) float64 {
	score := 0.5 + (1.0-factor)*0.8
	return math.Round(math.Max(0, math.Min(1, score))*100) / 100
}

func roadCacheKey(loc *contracts.Location, widthFt *float64) string {
	if widthFt == nil {
		return fmt.Sprintf("road_access:%.5f:%.5f:unknown", loc.Lat, loc.Lng)
	}
	return fmt.Sprintf("road_access:%.5f:%.5f:%.1f", loc.Lat, loc.Lng, *widthFt)
}
