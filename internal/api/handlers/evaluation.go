package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/plotwise/plotwise/internal/contracts"
	"github.com/plotwise/plotwise/internal/decision"
	"github.com/plotwise/plotwise/internal/engine"
	"github.com/plotwise/plotwise/internal/repository"
	"github.com/plotwise/plotwise/pkg/logger"
)

// EvaluationHandler handles property evaluation endpoints
type EvaluationHandler struct {
	orchestrator *engine.Orchestrator
	evaluations  *repository.EvaluationRepository
	logger       *logger.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(
	orchestrator *engine.Orchestrator,
	evaluations *repository.EvaluationRepository,
	log *logger.Logger,
) *EvaluationHandler {
	return &EvaluationHandler{
		orchestrator: orchestrator,
		evaluations:  evaluations,
		logger:       log,
	}
}

// Evaluate runs a property evaluation
// POST /api/decision
func (h *EvaluationHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req contracts.EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Address == "" && (req.Lat == nil || req.Lng == nil) {
		respondError(w, http.StatusBadRequest, "Either address or lat/lng is required")
		return
	}

	if req.AskingPrice <= 0 {
		respondError(w, http.StatusBadRequest, "asking_price must be positive")
		return
	}

	result, err := h.orchestrator.Evaluate(ctx, &req)
	if err != nil {
		if errors.Is(err, decision.ErrInconsistentRecommendation) {
			h.logger.WithError(err).Error("Evaluation aborted on consistency check")
			respondError(w, http.StatusUnprocessableEntity,
				"Evaluation could not produce a consistent recommendation")
			return
		}

		h.logger.WithError(err).Error("Evaluation failed")
		respondError(w, http.StatusInternalServerError, "Evaluation failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID returns a stored evaluation
// GET /api/evaluations/{id}
func (h *EvaluationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	stored, err := h.evaluations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Evaluation not found")
			return
		}

		h.logger.WithError(err).Error("Failed to get evaluation")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve evaluation")
		return
	}

	respondJSON(w, http.StatusOK, stored)
}

// ListRecent returns the most recent evaluations
// GET /api/evaluations?limit=20
func (h *EvaluationHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	stored, err := h.evaluations.ListRecent(ctx, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list evaluations")
		respondError(w, http.StatusInternalServerError, "Failed to list evaluations")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"evaluations": stored,
		"count":       len(stored),
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
