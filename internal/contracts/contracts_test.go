package contracts

import "testing"

func TestNormalizeEndUse(t *testing.T) {
	tests := []struct {
		in   string
		want EndUse
	}{
		{"self_use", EndUseSelfUse},
		{"investment", EndUseInvestment},
		{"both", EndUseBoth},
		{"", EndUseBoth},
		{"flip", EndUseBoth},
		{"SELF_USE", EndUseBoth},
	}

	for _, tt := range tests {
		if got := NormalizeEndUse(tt.in); got != tt.want {
			t.Errorf("NormalizeEndUse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDecision_Valid(t *testing.T) {
	for _, d := range []Decision{DecisionBuy, DecisionCaution, DecisionAvoid} {
		if !d.Valid() {
			t.Errorf("%v should be valid", d)
		}
	}
	for _, d := range []Decision{"", "buy", "MAYBE"} {
		if d.Valid() {
			t.Errorf("%v should be invalid", d)
		}
	}
}

func TestSignal_Clamp(t *testing.T) {
	low := &Signal{Score: -0.2}
	low.Clamp()
	if low.Score != 0 {
		t.Errorf("Clamp() low = %v, want 0", low.Score)
	}

	high := &Signal{Score: 1.3}
	high.Clamp()
	if high.Score != 1 {
		t.Errorf("Clamp() high = %v, want 1", high.Score)
	}
}

func TestSignal_Details(t *testing.T) {
	sig := &Signal{}

	if got := sig.Detail("missing"); got != "" {
		t.Errorf("Detail on nil map = %q, want empty", got)
	}

	sig.SetDetail("pricing_basis", "no_comparables")
	if got := sig.Detail("pricing_basis"); got != "no_comparables" {
		t.Errorf("Detail = %q, want no_comparables", got)
	}

	sig.SetDetail("count", 3)
	if got := sig.Detail("count"); got != "" {
		t.Errorf("non-string detail should read as empty, got %q", got)
	}
}

func TestNeutralSignal(t *testing.T) {
	sig := NeutralSignal("data unavailable")
	if sig.Score != 0.5 || sig.Summary != "data unavailable" || sig.Details == nil {
		t.Errorf("unexpected neutral signal: %+v", sig)
	}
}

func TestEvaluationRequest_IsLand(t *testing.T) {
	tests := []struct {
		propertyType string
		want         bool
	}{
		{"land", true},
		{"plot", true},
		{"2bhk", false},
		{"house", false},
		{"", false},
	}

	for _, tt := range tests {
		req := &EvaluationRequest{PropertyType: tt.propertyType}
		if got := req.IsLand(); got != tt.want {
			t.Errorf("IsLand(%q) = %v, want %v", tt.propertyType, got, tt.want)
		}
	}
}

func TestEvaluationRequest_Normalize(t *testing.T) {
	req := &EvaluationRequest{}
	req.Normalize()

	if req.PropertyType != "unknown" {
		t.Errorf("PropertyType = %q, want unknown", req.PropertyType)
	}
	if req.RadiusM != 2000 {
		t.Errorf("RadiusM = %v, want 2000", req.RadiusM)
	}

	set := &EvaluationRequest{PropertyType: "land", RadiusM: 500}
	set.Normalize()
	if set.PropertyType != "land" || set.RadiusM != 500 {
		t.Errorf("Normalize overwrote provided values: %+v", set)
	}
}

func TestLocation_Resolved(t *testing.T) {
	if (&Location{}).Resolved() {
		t.Error("zero location should be unresolved")
	}
	if !(&Location{Lat: 25.59, Lng: 85.14}).Resolved() {
		t.Error("coordinates should resolve")
	}
	var nilLoc *Location
	if nilLoc.Resolved() {
		t.Error("nil location should be unresolved")
	}
}

func TestQualitativeDecision_Clone(t *testing.T) {
	orig := &QualitativeDecision{
		Decision:       DecisionCaution,
		Confidence:     0.6,
		PrimaryRisks:   []string{"pricing", "flood"},
		Recommendation: "Negotiate.",
	}

	clone := orig.Clone()
	clone.PrimaryRisks[0] = "changed"
	clone.Recommendation = "Different."

	if orig.PrimaryRisks[0] != "pricing" || orig.Recommendation != "Negotiate." {
		t.Errorf("Clone shares state with the original: %+v", orig)
	}
}
