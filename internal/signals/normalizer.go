package signals

import (
	"strings"

	"github.com/plotwise/plotwise/internal/contracts"
)

// Dimension identifies a signal dimension for contextualization
type Dimension string

const (
	DimensionPricing    Dimension = "pricing"
	DimensionHospital   Dimension = "hospital_access"
	DimensionAirQuality Dimension = "air_quality"
	DimensionSchools    Dimension = "school_access"
	DimensionFlood      Dimension = "flood_risk"
	DimensionCommute    Dimension = "commute_stress"
	DimensionRoad       Dimension = "road_access"
)

// PricingBasisNoComparables marks a pricing signal computed without any
// comparable transactions
const PricingBasisNoComparables = "no_comparables"

// noComparablesCap is the highest score a pricing signal may keep when it
// was computed without comparables
const noComparablesCap = 0.45

// noComparablesCaveat is the fixed risk caveat appended to such signals
const noComparablesCaveat = "Absence of transaction data increases valuation risk and resale uncertainty."

// NormalizePricing corrects the known optimism bias of pricing signals
// that lack comparable transactions: the score is capped (never raised)
// and a fixed risk caveat is appended to the summary.
// Idempotent: applying twice keeps the capped score and does not
// duplicate the caveat.
func NormalizePricing(sig *contracts.Signal) *contracts.Signal {
	if sig.Detail("pricing_basis") != PricingBasisNoComparables {
		return sig
	}

	if sig.Score > noComparablesCap {
		sig.Score = noComparablesCap
	}

	if !strings.Contains(sig.Summary, noComparablesCaveat) {
		sig.Summary = strings.TrimRight(sig.Summary, ".") + ". " + noComparablesCaveat
	}

	return sig
}

// Contextualize appends a dimension-specific regional caveat sentence to
// the signal summary based on score thresholds. Never mutates the score;
// no-op outside the listed thresholds.
func Contextualize(sig *contracts.Signal, dim Dimension) *contracts.Signal {
	switch dim {
	case DimensionHospital:
		if sig.Score < 0.4 {
			sig.Summary += " This reflects typical infrastructure gaps in Tier 2/3 regions."
		}

	case DimensionAirQuality:
		if sig.Score >= 0.7 {
			sig.Summary += " This is typical across many Indian cities."
		} else if sig.Score < 0.5 {
			sig.Summary += " Sensitive individuals may experience discomfort."
		}

	case DimensionSchools:
		if sig.Score >= 0.7 {
			sig.Summary += " This supports family end-use suitability."
		}
	}

	return sig
}
