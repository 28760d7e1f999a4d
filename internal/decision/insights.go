package decision

import (
	"math"
	"strings"

	"github.com/plotwise/plotwise/internal/contracts"
)

// Auxiliary deterministic outputs derived from the normalized signal set.
// Everything here is pure; nothing calls external services.

const noConcernsSummary = "Based on available data, the property meets most baseline livability " +
	"criteria and does not show any major red flags for long-term residential use."

const concernsSuffix = ". These factors may negatively impact daily living comfort, " +
	"long-term usability, and resale demand."

// BuildHumanSummary condenses the signal set into one readable paragraph.
// Dimension-specific thresholds gate a fixed concern phrase each.
func BuildHumanSummary(signals *contracts.SignalSet) string {
	reasons := make([]string, 0, 5)

	if signals.HospitalAccess.Score < 0.4 {
		reasons = append(reasons, "limited emergency medical access")
	}

	if signals.SchoolAccess.Score < 0.4 {
		reasons = append(reasons, "poor availability of schools within daily travel range")
	}

	if signals.FloodRisk.Score <= 0.4 {
		reasons = append(reasons, "elevated or uncertain flood risk during heavy rains")
	}

	if signals.AirQuality.Score <= 0.4 {
		reasons = append(reasons, "suboptimal air quality affecting long-term health")
	}

	if signals.CommuteStress.Score <= 0.4 {
		reasons = append(reasons, "high daily commute burden")
	}

	if len(reasons) == 0 {
		return noConcernsSummary
	}

	return "Key concerns include " + strings.Join(reasons, ", ") + concernsSuffix
}

// DeriveBuyConditions lists the concrete preconditions under which a
// purchase still makes sense.
func DeriveBuyConditions(signals *contracts.SignalSet) []string {
	conditions := make([]string, 0, 3)

	if signals.Pricing.Score < 0.6 {
		conditions = append(conditions, "Price reduction of 15–20% from current asking")
	}

	if signals.HospitalAccess.Score < 0.4 {
		conditions = append(conditions,
			"Emergency hospital access within 25–30 minutes or verified medical tie-up")
	}

	if signals.FloodRisk.Score < 0.5 {
		conditions = append(conditions,
			"Site-level drainage and elevation verification before purchase")
	}

	if len(conditions) == 0 {
		conditions = append(conditions, "No major blockers identified at current valuation")
	}

	return conditions
}

// DerivePositiveFactors lists the independent strengths of the property
func DerivePositiveFactors(signals *contracts.SignalSet) []string {
	positives := make([]string, 0, 3)

	if signals.SchoolAccess.Score >= 0.8 {
		positives = append(positives, "Strong school ecosystem suitable for family living")
	}

	if signals.FloodRisk.Score >= 0.6 {
		positives = append(positives, "No major flood vulnerability observed")
	}

	if signals.AirQuality.Score >= 0.7 {
		positives = append(positives, "Acceptable air quality by Indian urban standards")
	}

	return positives
}

// DeriveBuyerProfile builds the suitable / not-suitable buyer lists
func DeriveBuyerProfile(signals *contracts.SignalSet, endUse contracts.EndUse) *contracts.BuyerProfile {
	buy := make([]string, 0, 1)
	avoid := make([]string, 0, 3)

	if signals.SchoolAccess.Score >= 0.8 {
		buy = append(buy, "Families prioritizing education access")
	}

	if signals.Pricing.Score < 0.6 {
		avoid = append(avoid, "Buyers unwilling to negotiate on price")
	}

	if signals.HospitalAccess.Score < 0.4 {
		avoid = append(avoid, "Elderly buyers or households with medical dependency")
	}

	if (endUse == contracts.EndUseInvestment || endUse == contracts.EndUseBoth) &&
		signals.Pricing.Score < 0.6 {
		avoid = append(avoid, "Short-term investors seeking quick liquidity")
	}

	if len(buy) == 0 {
		buy = append(buy, "Buyers comfortable with Tier 2/3 infrastructure trade-offs")
	}

	return &contracts.BuyerProfile{
		SuitableFor:    buy,
		NotSuitableFor: avoid,
	}
}

// aqiUnavailableToken marks a degraded air-quality signal (see the AQI
// provider contract: unavailable data yields this summary token)
const aqiUnavailableToken = "AQI data unavailable"

// LocationConfidence estimates the reliability of the signal set itself,
// independent of the decision confidence. Floors at 0.4.
func LocationConfidence(signals *contracts.SignalSet) float64 {
	score := 1.0

	if signals.Pricing.Score <= 0.5 {
		score -= 0.15
	}

	if signals.HospitalAccess.Score < 0.3 {
		score -= 0.20
	}

	if signals.FloodRisk.Score < 0.5 {
		score -= 0.15
	}

	if strings.Contains(signals.AirQuality.Summary, aqiUnavailableToken) {
		score -= 0.10
	}

	score = math.Max(0.4, score)
	return math.Round(score*100) / 100
}
