package contracts

// Decision is the final verdict band for a property evaluation
type Decision string

const (
	DecisionBuy     Decision = "BUY"
	DecisionCaution Decision = "CAUTION"
	DecisionAvoid   Decision = "AVOID"
)

// Valid reports whether d is one of the three known bands
func (d Decision) Valid() bool {
	return d == DecisionBuy || d == DecisionCaution || d == DecisionAvoid
}

// QualitativeDecision is the externally produced qualitative verdict.
// It is untrusted input: the reconciler overrides Decision and Confidence
// and sanitizes Recommendation before anything reaches the caller.
type QualitativeDecision struct {
	Decision       Decision `json:"decision"`
	Confidence     float64  `json:"confidence"`
	PrimaryRisks   []string `json:"primary_risks"`
	Recommendation string   `json:"recommendation"`
}

// Clone returns a deep copy so reconciliation never mutates the
// reasoner's original output.
func (q *QualitativeDecision) Clone() *QualitativeDecision {
	risks := make([]string, len(q.PrimaryRisks))
	copy(risks, q.PrimaryRisks)
	return &QualitativeDecision{
		Decision:       q.Decision,
		Confidence:     q.Confidence,
		PrimaryRisks:   risks,
		Recommendation: q.Recommendation,
	}
}

// BuyerProfile describes who the property does and does not suit
type BuyerProfile struct {
	SuitableFor    []string `json:"suitable_for"`
	NotSuitableFor []string `json:"not_suitable_for"`
}

// EvaluationResult is the assembled verdict for one evaluation request.
// Constructed once, never mutated after return.
type EvaluationResult struct {
	Decision       Decision `json:"decision"`
	Confidence     float64  `json:"confidence"`
	PrimaryRisks   []string `json:"primary_risks,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`

	NumericScore       float64       `json:"numeric_score"`
	Summary            string        `json:"summary"`
	Signals            *SignalSet    `json:"signals"`
	LocationConfidence float64       `json:"location_confidence"`
	Region             *Region       `json:"region,omitempty"`
	EndUseAssumed      EndUse        `json:"end_use_assumed,omitempty"`
	PositiveFactors    []string      `json:"positive_factors,omitempty"`
	BuyConditions      []string      `json:"buy_conditions,omitempty"`
	BuyerProfile       *BuyerProfile `json:"buyer_profile,omitempty"`
}
