package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plotwise/plotwise/pkg/config"
	"github.com/plotwise/plotwise/pkg/logger"
)

func testHandler() *EvaluationHandler {
	log := logger.New(&config.Config{
		Env:       "development",
		LogLevel:  "error",
		LogFormat: "json",
	})
	// Validation paths never reach the orchestrator or the repository
	return NewEvaluationHandler(nil, nil, log)
}

func postDecision(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/decision", strings.NewReader(body))
	rec := httptest.NewRecorder()
	testHandler().Evaluate(rec, req)
	return rec
}

func TestEvaluate_InvalidBody(t *testing.T) {
	rec := postDecision(t, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request body", resp["error"])
}

func TestEvaluate_MissingLocation(t *testing.T) {
	rec := postDecision(t, `{"asking_price": 5000000}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "address or lat/lng")
}

func TestEvaluate_CoordinatesOnlyPassValidation(t *testing.T) {
	// Price validation fires after the location check, so a coordinate-only
	// request with a bad price proves coordinates satisfy the location rule.
	rec := postDecision(t, `{"lat": 25.59, "lng": 85.13, "asking_price": 0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "asking_price")
}

func TestEvaluate_NonPositivePrice(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero price", `{"address": "Kankarbagh, Patna", "asking_price": 0}`},
		{"negative price", `{"address": "Kankarbagh, Patna", "asking_price": -100}`},
		{"missing price", `{"address": "Kankarbagh, Patna"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postDecision(t, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "asking_price must be positive")
		})
	}
}

func TestListRecent_InvalidLimit(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"negative", "?limit=-5"},
		{"zero", "?limit=0"},
		{"not a number", "?limit=many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/evaluations"+tt.query, nil)
			rec := httptest.NewRecorder()
			testHandler().ListRecent(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "limit must be a positive integer")
		})
	}
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusCreated, map[string]int{"count": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp["count"])
}
