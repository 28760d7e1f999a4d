package reasoner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/plotwise/plotwise/internal/contracts"
)

const promptTemplate = `You are a conservative property decision analyst in India.

You MUST return STRICT JSON only.
No markdown. No explanation outside JSON.

INPUT:
%s

NUMERIC_SCORE (0-1): %.2f

RULES:
- Be conservative
- Avoid irreversible mistakes
- Confidence must align with numeric_score
- Decision must be BUY, CAUTION, or AVOID

JSON FORMAT:
{
  "decision": "BUY|CAUTION|AVOID",
  "confidence": 0.0,
  "primary_risks": [],
  "recommendation": ""
}`

// BuildPrompt renders the analyst prompt for one evaluation
func BuildPrompt(rc *ReasoningContext, numericScore float64) string {
	contextJSON, err := json.MarshalIndent(rc, "", "  ")
	if err != nil {
		// Context is always marshalable; guard anyway
		contextJSON = []byte("{}")
	}

	return fmt.Sprintf(promptTemplate, string(contextJSON), numericScore)
}

// ParseDecision parses and validates raw reasoner output against the
// strict JSON contract. Markdown code fences are tolerated and stripped.
func ParseDecision(raw string) (*contracts.QualitativeDecision, error) {
	cleaned := stripCodeFences(strings.TrimSpace(raw))

	var decision contracts.QualitativeDecision
	if err := json.Unmarshal([]byte(cleaned), &decision); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if !decision.Decision.Valid() {
		return nil, fmt.Errorf("invalid decision value: %q", decision.Decision)
	}

	if decision.Confidence < 0 || decision.Confidence > 1 {
		return nil, fmt.Errorf("confidence out of range: %f", decision.Confidence)
	}

	return &decision, nil
}

// stripCodeFences removes a surrounding ```json ... ``` block if present
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
