package reasoner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/plotwise/plotwise/internal/contracts"
	"github.com/plotwise/plotwise/pkg/config"
	"github.com/plotwise/plotwise/pkg/httputil"
	"github.com/plotwise/plotwise/pkg/logger"
)

// ReasoningContext is the structured evaluation context handed to the
// qualitative reasoner.
type ReasoningContext struct {
	AskingPrice  int64                `json:"asking_price"`
	PropertyType string               `json:"property_type"`
	EndUse       contracts.EndUse     `json:"end_use"`
	Region       *contracts.Region    `json:"region"`
	Location     *contracts.Location  `json:"location"`
	Signals      *contracts.SignalSet `json:"signals"`
}

// Client calls the Gemini API for a qualitative property verdict.
// Its output is untrusted: anything that fails strict JSON validation is
// replaced by the pinned fallback, which flows through the reconciler
// exactly like a successful response.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	model      string
	baseURL    string
}

// NewClient creates a new reasoner client
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		apiKey:     cfg.Gemini.APIKey,
		model:      cfg.Gemini.Model,
		baseURL:    cfg.Gemini.BaseURL,
	}
}

// generateContent request/response shapes (Gemini REST API)

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Reason asks the reasoner for a qualitative decision. It never returns
// an error: any transport, parse or validation failure degrades to the
// pinned fallback decision.
func (c *Client) Reason(ctx context.Context, rc *ReasoningContext, numericScore float64) *contracts.QualitativeDecision {
	raw, err := c.generate(ctx, BuildPrompt(rc, numericScore))
	if err != nil {
		c.logger.WithError(err).Warn("Reasoner call failed, using fallback decision")
		return Fallback(numericScore)
	}

	decision, err := ParseDecision(raw)
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Warn("Reasoner output failed validation, using fallback decision")
		return Fallback(numericScore)
	}

	return decision
}

// generate calls the Gemini generateContent endpoint
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini API key not configured")
	}

	fullURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	resp, err := c.httpClient.PostJSON(ctx, fullURL, reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// Fallback is the pinned safe decision used whenever reasoner output is
// unusable. Not a distinct code path downstream: the reconciler treats
// it like any other qualitative decision.
func Fallback(numericScore float64) *contracts.QualitativeDecision {
	return &contracts.QualitativeDecision{
		Decision:       contracts.DecisionCaution,
		Confidence:     math.Round(numericScore*100) / 100,
		PrimaryRisks:   []string{"LLM output validation failed"},
		Recommendation: "Manual review recommended",
	}
}
