package decision

import (
	"math"
	"strings"
	"testing"

	"github.com/plotwise/plotwise/internal/contracts"
)

// signalSet builds a full set with every score defaulted to a healthy 0.8
func signalSet(overrides map[string]float64) *contracts.SignalSet {
	get := func(key string, def float64) float64 {
		if v, ok := overrides[key]; ok {
			return v
		}
		return def
	}

	return &contracts.SignalSet{
		Pricing:        &contracts.Signal{Score: get("pricing", 0.8)},
		AirQuality:     &contracts.Signal{Score: get("air", 0.8), Summary: "AQI ~80 (Moderate air quality)"},
		HospitalAccess: &contracts.Signal{Score: get("hospital", 0.8)},
		SchoolAccess:   &contracts.Signal{Score: get("school", 0.8)},
		FloodRisk:      &contracts.Signal{Score: get("flood", 0.8)},
		CommuteStress:  &contracts.Signal{Score: get("commute", 0.8)},
		RoadAccess:     &contracts.RoadAccess{Signal: contracts.Signal{Score: 0.5}},
	}
}

func TestBuildHumanSummary_NoConcerns(t *testing.T) {
	got := BuildHumanSummary(signalSet(nil))
	if got != noConcernsSummary {
		t.Errorf("BuildHumanSummary() = %q, want boilerplate no-concerns summary", got)
	}
}

func TestBuildHumanSummary_ListsConcerns(t *testing.T) {
	got := BuildHumanSummary(signalSet(map[string]float64{
		"hospital": 0.3,
		"flood":    0.4,
		"commute":  0.3,
	}))

	if !strings.HasPrefix(got, "Key concerns include ") {
		t.Errorf("summary should open with concern phrasing, got: %q", got)
	}
	for _, phrase := range []string{
		"limited emergency medical access",
		"elevated or uncertain flood risk",
		"high daily commute burden",
	} {
		if !strings.Contains(got, phrase) {
			t.Errorf("summary missing %q: %s", phrase, got)
		}
	}
	if strings.Contains(got, "schools") {
		t.Errorf("healthy school score should not raise a concern: %s", got)
	}
}

func TestBuildHumanSummary_ThresholdEdges(t *testing.T) {
	// Flood and AQI gate at <= 0.4; hospital and school at < 0.4
	atEdge := BuildHumanSummary(signalSet(map[string]float64{
		"hospital": 0.4,
		"school":   0.4,
		"flood":    0.4,
		"air":      0.4,
	}))

	if strings.Contains(atEdge, "medical") || strings.Contains(atEdge, "schools") {
		t.Errorf("hospital/school at exactly 0.4 should not be concerns: %s", atEdge)
	}
	if !strings.Contains(atEdge, "flood") || !strings.Contains(atEdge, "air quality") {
		t.Errorf("flood/air at exactly 0.4 should be concerns: %s", atEdge)
	}
}

func TestDeriveBuyConditions(t *testing.T) {
	conditions := DeriveBuyConditions(signalSet(map[string]float64{
		"pricing":  0.5,
		"hospital": 0.3,
		"flood":    0.4,
	}))

	if len(conditions) != 3 {
		t.Fatalf("expected 3 conditions, got %d: %v", len(conditions), conditions)
	}
	if !strings.Contains(conditions[0], "Price reduction") {
		t.Errorf("first condition should demand price correction: %v", conditions)
	}
}

func TestDeriveBuyConditions_CleanProperty(t *testing.T) {
	conditions := DeriveBuyConditions(signalSet(nil))

	if len(conditions) != 1 || conditions[0] != "No major blockers identified at current valuation" {
		t.Errorf("clean property should yield the no-blockers condition, got %v", conditions)
	}
}

func TestDerivePositiveFactors(t *testing.T) {
	positives := DerivePositiveFactors(signalSet(map[string]float64{
		"school": 0.85,
		"flood":  0.7,
		"air":    0.75,
	}))

	if len(positives) != 3 {
		t.Errorf("expected 3 positives, got %d: %v", len(positives), positives)
	}

	none := DerivePositiveFactors(signalSet(map[string]float64{
		"school": 0.5,
		"flood":  0.4,
		"air":    0.4,
	}))
	if len(none) != 0 {
		t.Errorf("weak signals should yield no positives, got %v", none)
	}
}

func TestDeriveBuyerProfile(t *testing.T) {
	profile := DeriveBuyerProfile(signalSet(map[string]float64{
		"school":   0.85,
		"pricing":  0.5,
		"hospital": 0.3,
	}), contracts.EndUseInvestment)

	if len(profile.SuitableFor) != 1 || !strings.Contains(profile.SuitableFor[0], "Families") {
		t.Errorf("strong schools should suit families: %v", profile.SuitableFor)
	}

	if len(profile.NotSuitableFor) != 3 {
		t.Errorf("expected 3 not-suitable entries, got %v", profile.NotSuitableFor)
	}
}

func TestDeriveBuyerProfile_DefaultBuyer(t *testing.T) {
	profile := DeriveBuyerProfile(signalSet(map[string]float64{"school": 0.5}), contracts.EndUseSelfUse)

	if len(profile.SuitableFor) != 1 ||
		profile.SuitableFor[0] != "Buyers comfortable with Tier 2/3 infrastructure trade-offs" {
		t.Errorf("expected the default buyer entry, got %v", profile.SuitableFor)
	}
}

func TestLocationConfidence(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]float64
		aqiNA     bool
		want      float64
	}{
		{"all healthy", nil, false, 1.0},
		{"weak pricing", map[string]float64{"pricing": 0.5}, false, 0.85},
		{"hospital gap", map[string]float64{"hospital": 0.2}, false, 0.80},
		{"flood uncertainty", map[string]float64{"flood": 0.4}, false, 0.85},
		{"aqi unavailable", nil, true, 0.90},
		{"floors at 0.4", map[string]float64{
			"pricing": 0.3, "hospital": 0.1, "flood": 0.2,
		}, true, 0.40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := signalSet(tt.overrides)
			if tt.aqiNA {
				set.AirQuality.Summary = "AQI data unavailable; assuming average Indian urban air quality"
			}

			got := LocationConfidence(set)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("LocationConfidence() = %v, want %v", got, tt.want)
			}
		})
	}
}
