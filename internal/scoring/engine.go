package scoring

import (
	"math"

	"github.com/plotwise/plotwise/internal/contracts"
)

// Weights is the per-dimension weight vector used for the base score.
// Each tier's weights sum to 1.0.
type Weights struct {
	Pricing    float64
	Livability float64
	Flood      float64
	Access     float64
	Commute    float64
	Schools    float64
}

// WeightsForTier returns the fixed weight vector for a region tier.
// Tier 2/3 markets weigh pricing, flood exposure and schools more
// heavily; metro markets weigh livability and access more.
func WeightsForTier(tier contracts.RegionTier) Weights {
	if tier == contracts.RegionTier1 {
		return Weights{
			Pricing:    0.25,
			Livability: 0.20,
			Flood:      0.15,
			Access:     0.15,
			Commute:    0.15,
			Schools:    0.10,
		}
	}

	return Weights{
		Pricing:    0.30,
		Livability: 0.15,
		Flood:      0.20,
		Access:     0.10,
		Commute:    0.10,
		Schools:    0.15,
	}
}

// Sum returns the total of all weights (1.0 for valid vectors)
func (w Weights) Sum() float64 {
	return w.Pricing + w.Livability + w.Flood + w.Access + w.Commute + w.Schools
}

// Input holds the normalized per-dimension scores for one evaluation
type Input struct {
	Pricing    float64
	Livability float64
	Access     float64
	Commute    float64
	Schools    float64
	Flood      float64

	RegionTier contracts.RegionTier
	EndUse     contracts.EndUse

	// RoadLiquidity is a resale-friction multiplier: 1.0 neutral,
	// >1.0 penalizes the score (more so for investment intent).
	RoadLiquidity float64
}

// Combine turns per-dimension signals into one numeric score in [0,1].
// Pure and total: out-of-range inputs are clamped, never rejected.
// The result is the sole source of truth for the decision band.
func Combine(in Input) float64 {
	w := WeightsForTier(in.RegionTier)

	base := w.Pricing*in.Pricing +
		w.Livability*in.Livability +
		w.Flood*in.Flood +
		w.Access*in.Access +
		w.Commute*in.Commute +
		w.Schools*in.Schools

	final := base + adjustment(in)

	return round2(clamp01(final))
}

// adjustment computes the intent-based score adjustment
func adjustment(in Input) float64 {
	liquidity := in.RoadLiquidity
	if liquidity == 0 {
		liquidity = 1.0
	}

	adj := 0.0

	switch in.EndUse {
	case contracts.EndUseSelfUse:
		adj += 0.05 * in.Schools
		adj += 0.05 * in.Livability
		adj -= 0.05 * in.Commute

		// Road access matters, but is not dominant for own use
		adj -= 0.03 * (liquidity - 1.0)

	case contracts.EndUseInvestment:
		adj += 0.05 * in.Pricing
		adj -= 0.05 * in.Access

		// Road access matters more for resale
		adj -= 0.08 * (liquidity - 1.0)

	default:
		// both / unspecified: moderate liquidity sensitivity
		adj -= 0.05 * (liquidity - 1.0)
	}

	return adj
}

func clamp01(v float64) float64 {
	return math.Min(1.0, math.Max(0.0, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
