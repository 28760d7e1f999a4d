package decision

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/plotwise/plotwise/internal/contracts"
	"github.com/plotwise/plotwise/pkg/logger"
)

// Decision band thresholds over the numeric score
const (
	buyThreshold     = 0.70
	cautionThreshold = 0.50
)

// Calibrated confidence bounds: never below a plausible-assessment floor,
// never above moderate-high certainty.
const (
	confidenceFloor   = 0.30
	confidenceCeiling = 0.70
)

// ErrInconsistentRecommendation is returned when a CAUTION recommendation
// still carries rejection-severity language after the full sanitization
// pipeline. This is a fatal internal-consistency failure: the evaluation
// must abort rather than return a self-contradictory result.
var ErrInconsistentRecommendation = errors.New("recommendation tone exceeds CAUTION severity")

// cautionSafeguardPhrase replaces hard-rejection language under CAUTION
const cautionSafeguardPhrase = "Proceed only with significant negotiation and safeguards"

// cautionPrefix is prepended to CAUTION recommendations
const cautionPrefix = "This property requires caution. "

// cautionClosure clarifies that CAUTION is conditional, not a rejection
const cautionClosure = " This assessment does not rule out the property entirely; " +
	"it indicates that proceeding only makes sense if the price " +
	"corrects materially or if key infrastructure risks are mitigated."

// closureMarker detects an already-appended closure
const closureMarker = "does not rule out the property entirely"

// replacement is an ordered literal phrase substitution.
// Order matters: longer phrases must be replaced before their substrings.
type replacement struct {
	from, to string
}

// tier23Softening replaces harsh fixed phrases with milder equivalents
// for non-metro markets.
var tier23Softening = []replacement{
	{"Extreme overvaluation", "Aggressive pricing"},
	{"Reject the proposal", "Proceed only with strong negotiation"},
	{"fundamentally decoupled", "misaligned"},
	{"unsafe investment", "higher-risk entry"},
}

// cautionHardPhrases are rejection-severity phrases neutralized under CAUTION
var cautionHardPhrases = []string{
	"Reject the current proposal",
	"Reject the proposal",
	"Do not proceed",
	"Capital preservation is at risk",
	"unsafe investment",
}

// cautionForbidden must never survive in a CAUTION recommendation
// (checked case-insensitively as the final post-condition)
var cautionForbidden = []string{
	"reject",
	"avoid",
	"capital trap",
	"do not proceed",
}

// Reconciler forces an externally produced qualitative decision to agree
// with the deterministic numeric score. The reasoner's own decision value
// is discarded; its confidence is recalibrated; its recommendation text is
// rewritten until severity, tone and content match the enforced band.
type Reconciler struct {
	logger *logger.Logger
}

// NewReconciler creates a new reconciler
func NewReconciler(log *logger.Logger) *Reconciler {
	return &Reconciler{logger: log}
}

// Reconcile runs the full reconciliation pipeline in its fixed order:
// confidence calibration, band enforcement, region tone softening,
// decision-conditional normalization, caution closure, and the final
// consistency assertion. The input decision is never mutated.
func (r *Reconciler) Reconcile(
	qd *contracts.QualitativeDecision,
	numericScore float64,
	tier contracts.RegionTier,
) (*contracts.QualitativeDecision, error) {
	out := qd.Clone()

	// 1. Confidence calibration
	out.Confidence = CalibrateConfidence(qd.Confidence, numericScore)

	// 2. Band enforcement: the numeric score is the sole source of truth
	out.Decision = BandForScore(numericScore)

	// 3-5. Text sanitization in fixed order
	out.Recommendation = SanitizeRecommendation(out.Decision, out.Recommendation, tier)

	// 6. Post-condition over the fully transformed text
	if err := CheckConsistency(out.Decision, out.Recommendation); err != nil {
		return nil, err
	}

	if r.logger != nil {
		r.logger.WithFields(map[string]interface{}{
			"numeric_score":      numericScore,
			"decision":           out.Decision,
			"reasoner_decision":  qd.Decision,
			"confidence":         out.Confidence,
			"reasoner_confidence": qd.Confidence,
		}).Debug("Decision reconciled")
	}

	return out, nil
}

// CalibrateConfidence recalibrates the reasoner's confidence against the
// numeric score. Confidence measures reliability of the assessment, never
// attractiveness of the property, so it shrinks as the score drops.
func CalibrateConfidence(llmConfidence, numericScore float64) float64 {
	base := math.Min(llmConfidence, numericScore)

	// Penalize uncertainty zones (cumulative below 0.5)
	if numericScore < 0.6 {
		base -= 0.05
	}
	if numericScore < 0.5 {
		base -= 0.10
	}

	base = math.Max(confidenceFloor, math.Min(base, confidenceCeiling))
	return math.Round(base*100) / 100
}

// BandForScore maps the numeric score to its decision band
func BandForScore(numericScore float64) contracts.Decision {
	switch {
	case numericScore >= buyThreshold:
		return contracts.DecisionBuy
	case numericScore >= cautionThreshold:
		return contracts.DecisionCaution
	default:
		return contracts.DecisionAvoid
	}
}

// SanitizeRecommendation applies the ordered text rewriting stages
// (softening, decision-conditional normalization, caution closure).
// Idempotent: applying it to an already-sanitized text is a no-op.
//
// The rewriting is literal phrase replacement, which is deliberately a
// best-effort filter over reasoner phrasing, not a guaranteed-complete
// one; CheckConsistency is the hard backstop.
func SanitizeRecommendation(decision contracts.Decision, text string, tier contracts.RegionTier) string {
	text = softenForRegion(text, tier)
	text = normalizeByDecision(decision, text)
	text = appendCautionClosure(decision, text)
	return text
}

// softenForRegion replaces harsh phrasing for non-metro markets.
// Case-sensitive exact substring replacement, applied once per phrase.
func softenForRegion(text string, tier contracts.RegionTier) string {
	if tier != contracts.RegionTier2_3 {
		return text
	}

	for _, rep := range tier23Softening {
		text = strings.ReplaceAll(text, rep.from, rep.to)
	}
	return text
}

// normalizeByDecision rewrites the recommendation so its language agrees
// with the enforced decision band.
func normalizeByDecision(decision contracts.Decision, text string) string {
	if decision == contracts.DecisionCaution {
		for _, phrase := range cautionHardPhrases {
			text = strings.ReplaceAll(text, phrase, cautionSafeguardPhrase)
		}

		if !strings.HasPrefix(strings.ToLower(text), "this property requires caution") {
			text = cautionPrefix + text
		}
	}

	if decision == contracts.DecisionBuy {
		// Surface residual caution language as confident language
		text = strings.ReplaceAll(text, "Proceed only", "Proceed confidently")
	}

	return text
}

// appendCautionClosure appends the fixed conditional-verdict disclaimer
// to CAUTION recommendations. No-op for other decisions or when already
// present.
func appendCautionClosure(decision contracts.Decision, text string) string {
	if decision != contracts.DecisionCaution {
		return text
	}
	if strings.Contains(text, closureMarker) {
		return text
	}
	return text + cautionClosure
}

// CheckConsistency asserts that a CAUTION recommendation no longer carries
// rejection-severity language. Steps 3-5 must have fully neutralized the
// reasoner's phrasing; if not, the pipeline stops here.
func CheckConsistency(decision contracts.Decision, recommendation string) error {
	if decision != contracts.DecisionCaution {
		return nil
	}

	lowered := strings.ToLower(recommendation)
	for _, word := range cautionForbidden {
		if strings.Contains(lowered, word) {
			return fmt.Errorf("%w: found %q", ErrInconsistentRecommendation, word)
		}
	}
	return nil
}
