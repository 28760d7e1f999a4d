package scoring

import (
	"math"
	"testing"

	"github.com/plotwise/plotwise/internal/contracts"
)

const epsilon = 0.0001

func TestWeightsForTier_SumToOne(t *testing.T) {
	for _, tier := range []contracts.RegionTier{contracts.RegionTier1, contracts.RegionTier2_3} {
		w := WeightsForTier(tier)
		if diff := w.Sum() - 1.0; math.Abs(diff) > epsilon {
			t.Errorf("WeightsForTier(%s).Sum() = %v, want 1.0", tier, w.Sum())
		}
	}
}

func TestWeightsForTier_TierDifferences(t *testing.T) {
	t1 := WeightsForTier(contracts.RegionTier1)
	t23 := WeightsForTier(contracts.RegionTier2_3)

	if t23.Pricing <= t1.Pricing {
		t.Errorf("tier 2/3 pricing weight %v should exceed tier 1 %v", t23.Pricing, t1.Pricing)
	}
	if t23.Flood <= t1.Flood {
		t.Errorf("tier 2/3 flood weight %v should exceed tier 1 %v", t23.Flood, t1.Flood)
	}
	if t1.Livability <= t23.Livability {
		t.Errorf("tier 1 livability weight %v should exceed tier 2/3 %v", t1.Livability, t23.Livability)
	}
}

func TestCombine_WeightedBase(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want float64
	}{
		{
			// Overpriced metro flat with strong everything else:
			// 0.25*0.30 + 0.20*0.90 + 0.15*0.90 + 0.15*0.90 + 0.15*0.90 + 0.10*0.90
			name: "tier 1 buy scenario",
			in: Input{
				Pricing:       0.30,
				Livability:    0.90,
				Flood:         0.90,
				Access:        0.90,
				Commute:       0.90,
				Schools:       0.90,
				RegionTier:    contracts.RegionTier1,
				EndUse:        contracts.EndUseBoth,
				RoadLiquidity: 1.0,
			},
			want: 0.75,
		},
		{
			// Uniform strong plot in a tier 2/3 market with neutral road access:
			// 0.30*0.45 + 0.15*0.70 + 0.20*0.80 + 0.10*0.85 + 0.10*0.90 + 0.15*0.85
			name: "tier 2/3 mixed signals",
			in: Input{
				Pricing:       0.45,
				Livability:    0.70,
				Flood:         0.80,
				Access:        0.85,
				Commute:       0.90,
				Schools:       0.85,
				RegionTier:    contracts.RegionTier2_3,
				EndUse:        contracts.EndUseBoth,
				RoadLiquidity: 1.0,
			},
			want: 0.70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combine(tt.in)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Combine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCombine_EndUseAdjustments(t *testing.T) {
	base := Input{
		Pricing:       0.6,
		Livability:    0.6,
		Flood:         0.6,
		Access:        0.6,
		Commute:       0.6,
		Schools:       0.6,
		RegionTier:    contracts.RegionTier2_3,
		RoadLiquidity: 1.0,
	}

	selfUse := base
	selfUse.EndUse = contracts.EndUseSelfUse

	investment := base
	investment.EndUse = contracts.EndUseInvestment

	both := base
	both.EndUse = contracts.EndUseBoth

	// Uniform 0.6 signals: self_use nets +0.05*0.6 + 0.05*0.6 - 0.05*0.6,
	// investment nets +0.05*0.6 - 0.05*0.6, both nets zero.
	if got, want := Combine(selfUse), 0.63; math.Abs(got-want) > epsilon {
		t.Errorf("Combine(self_use) = %v, want %v", got, want)
	}
	if got, want := Combine(investment), 0.60; math.Abs(got-want) > epsilon {
		t.Errorf("Combine(investment) = %v, want %v", got, want)
	}
	if got, want := Combine(both), 0.60; math.Abs(got-want) > epsilon {
		t.Errorf("Combine(both) = %v, want %v", got, want)
	}
}

func TestCombine_RoadLiquidityPenalty(t *testing.T) {
	in := Input{
		Pricing:       0.6,
		Livability:    0.6,
		Flood:         0.6,
		Access:        0.6,
		Commute:       0.6,
		Schools:       0.6,
		RegionTier:    contracts.RegionTier2_3,
		EndUse:        contracts.EndUseInvestment,
		RoadLiquidity: 1.4, // narrow gali access
	}

	neutral := in
	neutral.RoadLiquidity = 1.0

	penalized := Combine(in)
	baseline := Combine(neutral)

	// Investment intent carries the steepest liquidity sensitivity:
	// -0.08 * (1.4 - 1.0) = -0.032, rounded into the final score
	if penalized >= baseline {
		t.Errorf("narrow road should lower investment score: got %v >= %v", penalized, baseline)
	}
	if diff := baseline - penalized; math.Abs(diff-0.03) > 0.011 {
		t.Errorf("liquidity penalty = %v, want ~0.03", diff)
	}
}

func TestCombine_ZeroLiquidityTreatedAsNeutral(t *testing.T) {
	in := Input{
		Pricing:    0.6,
		Livability: 0.6,
		Flood:      0.6,
		Access:     0.6,
		Commute:    0.6,
		Schools:    0.6,
		RegionTier: contracts.RegionTier1,
		EndUse:     contracts.EndUseBoth,
	}

	withNeutral := in
	withNeutral.RoadLiquidity = 1.0

	if got, want := Combine(in), Combine(withNeutral); math.Abs(got-want) > epsilon {
		t.Errorf("Combine(liquidity=0) = %v, want %v (neutral)", got, want)
	}
}

func TestCombine_Clamping(t *testing.T) {
	high := Input{
		Pricing: 1.0, Livability: 1.0, Flood: 1.0,
		Access: 1.0, Commute: 1.0, Schools: 1.0,
		RegionTier:    contracts.RegionTier2_3,
		EndUse:        contracts.EndUseSelfUse,
		RoadLiquidity: 0.75,
	}
	if got := Combine(high); got > 1.0 {
		t.Errorf("Combine() = %v, want <= 1.0", got)
	}

	low := Input{
		RegionTier:    contracts.RegionTier2_3,
		EndUse:        contracts.EndUseInvestment,
		RoadLiquidity: 1.4,
	}
	if got := Combine(low); got < 0.0 {
		t.Errorf("Combine() = %v, want >= 0.0", got)
	}
}

func TestCombine_Rounding(t *testing.T) {
	in := Input{
		Pricing:       0.333,
		Livability:    0.333,
		Flood:         0.333,
		Access:        0.333,
		Commute:       0.333,
		Schools:       0.333,
		RegionTier:    contracts.RegionTier1,
		EndUse:        contracts.EndUseBoth,
		RoadLiquidity: 1.0,
	}

	got := Combine(in)
	if math.Abs(got*100-math.Round(got*100)) > epsilon {
		t.Errorf("Combine() = %v, want two-decimal rounding", got)
	}
}
