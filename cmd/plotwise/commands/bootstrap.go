package commands

import (
	"github.com/plotwise/plotwise/internal/decision"
	"github.com/plotwise/plotwise/internal/engine"
	"github.com/plotwise/plotwise/internal/events"
	"github.com/plotwise/plotwise/internal/external/aqi"
	"github.com/plotwise/plotwise/internal/external/geocode"
	"github.com/plotwise/plotwise/internal/external/overpass"
	"github.com/plotwise/plotwise/internal/reasoner"
	"github.com/plotwise/plotwise/internal/repository"
	"github.com/plotwise/plotwise/internal/signals"
	"github.com/plotwise/plotwise/pkg/config"
	"github.com/plotwise/plotwise/pkg/database"
	"github.com/plotwise/plotwise/pkg/httputil"
	"github.com/plotwise/plotwise/pkg/logger"
	"github.com/plotwise/plotwise/pkg/redis"
)

// buildOrchestrator wires the full evaluation pipeline from its parts.
// The geocoder gets a dedicated HTTP client because its rate limit must
// not throttle the other external calls.
func buildOrchestrator(
	cfg *config.Config,
	log *logger.Logger,
	db *database.DB,
	cache *redis.Cache,
	sink events.Sink,
) *engine.Orchestrator {
	httpClient := httputil.New(cfg, log)
	geocodeHTTP := httputil.New(cfg, log)
	geminiHTTP := httputil.NewWithTimeout(cfg, log, cfg.Gemini.Timeout)

	geocoder := geocode.NewClient(cfg, geocodeHTTP, cache, log)
	aqiClient := aqi.NewClient(cfg, httpClient, cache, log)
	amenities := overpass.NewClient(httpClient, log)

	txnRepo := repository.NewTransactionRepository(db.Pool)
	evalRepo := repository.NewEvaluationRepository(db.Pool)

	return engine.New(engine.Deps{
		Geocoder: geocoder,
		Reasoner: reasoner.NewClient(cfg, geminiHTTP, log),

		Pricing:  signals.NewPricingProvider(txnRepo, log),
		Road:     signals.NewRoadAccessProvider(cache, log),
		Air:      signals.NewAirQualityProvider(aqiClient, log),
		Hospital: signals.NewHospitalAccessProvider(amenities, log),
		School:   signals.NewSchoolAccessProvider(amenities, log),
		Flood:    signals.NewFloodRiskProvider(amenities, log),
		Commute:  signals.NewCommuteStressProvider(log),

		Reconciler: decision.NewReconciler(log),
		Store:      evalRepo,
		Sink:       sink,
		Logger:     log,
	})
}
