package engine

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/plotwise/plotwise/internal/contracts"
	"github.com/plotwise/plotwise/internal/decision"
	"github.com/plotwise/plotwise/internal/events"
	"github.com/plotwise/plotwise/internal/reasoner"
	"github.com/plotwise/plotwise/internal/region"
	"github.com/plotwise/plotwise/internal/scoring"
	"github.com/plotwise/plotwise/internal/signals"
	"github.com/plotwise/plotwise/pkg/logger"
)

// Short-circuit values for unresolvable locations
const (
	unresolvedScore   = 0.3
	unresolvedSummary = "Location could not be resolved accurately."
)

// roadAdjustmentNote is appended to land pricing summaries when road
// frontage shifts the negotiation band
const roadAdjustmentNote = " Road frontage adjustment applied (×%.2f) based on access width."

// Geocoder resolves addresses into coordinates
type Geocoder interface {
	Resolve(ctx context.Context, address string, lat, lng *float64) (*contracts.Location, error)
}

// Reasoner produces the qualitative verdict for an evaluation
type Reasoner interface {
	Reason(ctx context.Context, rc *reasoner.ReasoningContext, numericScore float64) *contracts.QualitativeDecision
}

// EvaluationStore persists completed evaluations
type EvaluationStore interface {
	Save(ctx context.Context, address string, result *contracts.EvaluationResult) (string, error)
}

// Orchestrator runs the full evaluation pipeline: location resolution,
// signal collection, normalization, scoring, qualitative reasoning,
// reconciliation and insight derivation.
type Orchestrator struct {
	geocoder Geocoder
	reasoner Reasoner

	pricing  *signals.PricingProvider
	road     *signals.RoadAccessProvider
	air      *signals.AirQualityProvider
	hospital *signals.HospitalAccessProvider
	school   *signals.SchoolAccessProvider
	flood    *signals.FloodRiskProvider
	commute  *signals.CommuteStressProvider

	reconciler *decision.Reconciler
	store      EvaluationStore
	sink       events.Sink
	logger     *logger.Logger
}

// Deps bundles the orchestrator's collaborators. Store and Sink are
// optional; everything else is required.
type Deps struct {
	Geocoder Geocoder
	Reasoner Reasoner

	Pricing  *signals.PricingProvider
	Road     *signals.RoadAccessProvider
	Air      *signals.AirQualityProvider
	Hospital *signals.HospitalAccessProvider
	School   *signals.SchoolAccessProvider
	Flood    *signals.FloodRiskProvider
	Commute  *signals.CommuteStressProvider

	Reconciler *decision.Reconciler
	Store      EvaluationStore
	Sink       events.Sink
	Logger     *logger.Logger
}

// New creates a new evaluation orchestrator
func New(deps Deps) *Orchestrator {
	return &Orchestrator{
		geocoder:   deps.Geocoder,
		reasoner:   deps.Reasoner,
		pricing:    deps.Pricing,
		road:       deps.Road,
		air:        deps.Air,
		hospital:   deps.Hospital,
		school:     deps.School,
		flood:      deps.Flood,
		commute:    deps.Commute,
		reconciler: deps.Reconciler,
		store:      deps.Store,
		sink:       deps.Sink,
		logger:     deps.Logger,
	}
}

// Evaluate runs one property evaluation end to end. The returned result
// is fully assembled and, when a store is configured, already persisted.
func (o *Orchestrator) Evaluate(ctx context.Context, req *contracts.EvaluationRequest) (*contracts.EvaluationResult, error) {
	req.Normalize()

	o.publish(events.TypeEvaluationStarted, "", req.Address, nil)

	loc, err := o.geocoder.Resolve(ctx, req.Address, req.Lat, req.Lng)
	if err != nil {
		o.publish(events.TypeEvaluationFailed, "", req.Address, map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("location resolution failed: %w", err)
	}

	if !loc.Resolved() {
		result := unresolvedResult()
		id := o.persist(ctx, req.Address, result)
		o.publish(events.TypeEvaluationCompleted, id, req.Address, map[string]interface{}{
			"decision": string(result.Decision),
		})
		return result, nil
	}

	reg := region.InferTier(loc)
	endUse := contracts.NormalizeEndUse(req.EndUse)

	signalSet := o.collectSignals(ctx, loc, req, reg.Tier)

	o.publish(events.TypeSignalsCollected, "", req.Address, map[string]interface{}{
		"region": reg.Label,
	})

	numericScore := scoring.Combine(scoring.Input{
		Pricing:       signalSet.Pricing.Score,
		Livability:    signalSet.AirQuality.Score,
		Access:        signalSet.HospitalAccess.Score,
		Commute:       signalSet.CommuteStress.Score,
		Schools:       signalSet.SchoolAccess.Score,
		Flood:         signalSet.FloodRisk.Score,
		RegionTier:    reg.Tier,
		EndUse:        endUse,
		RoadLiquidity: signalSet.RoadAccess.LiquidityFactor,
	})

	o.publish(events.TypeScoreComputed, "", req.Address, map[string]interface{}{
		"numeric_score": numericScore,
	})

	qd := o.reasoner.Reason(ctx, &reasoner.ReasoningContext{
		AskingPrice:  req.AskingPrice,
		PropertyType: req.PropertyType,
		EndUse:       endUse,
		Region:       reg,
		Location:     loc,
		Signals:      signalSet,
	}, numericScore)

	reconciled, err := o.reconciler.Reconcile(qd, numericScore, reg.Tier)
	if err != nil {
		o.publish(events.TypeEvaluationFailed, "", req.Address, map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("decision reconciliation failed: %w", err)
	}

	o.publish(events.TypeDecisionReconciled, "", req.Address, map[string]interface{}{
		"decision":   string(reconciled.Decision),
		"confidence": reconciled.Confidence,
	})

	result := &contracts.EvaluationResult{
		Decision:           reconciled.Decision,
		Confidence:         reconciled.Confidence,
		PrimaryRisks:       reconciled.PrimaryRisks,
		Recommendation:     reconciled.Recommendation,
		NumericScore:       numericScore,
		Summary:            decision.BuildHumanSummary(signalSet),
		Signals:            signalSet,
		LocationConfidence: decision.LocationConfidence(signalSet),
		Region:             reg,
		EndUseAssumed:      endUse,
		PositiveFactors:    decision.DerivePositiveFactors(signalSet),
		BuyConditions:      decision.DeriveBuyConditions(signalSet),
		BuyerProfile:       decision.DeriveBuyerProfile(signalSet, endUse),
	}

	id := o.persist(ctx, req.Address, result)
	o.publish(events.TypeEvaluationCompleted, id, req.Address, map[string]interface{}{
		"decision":      string(result.Decision),
		"numeric_score": result.NumericScore,
	})

	return result, nil
}

// collectSignals gathers the full signal set. Pricing and road access
// run first (road frontage feeds the land price band); the independent
// map-backed lookups fan out concurrently.
func (o *Orchestrator) collectSignals(
	ctx context.Context,
	loc *contracts.Location,
	req *contracts.EvaluationRequest,
	tier contracts.RegionTier,
) *contracts.SignalSet {
	set := &contracts.SignalSet{}

	set.RoadAccess = o.road.Signal(ctx, loc, req.RoadWidthFt)

	set.Pricing = signals.NormalizePricing(o.pricing.Signal(ctx, loc, req, tier))
	if req.IsLand() {
		applyRoadAdjustment(set.Pricing, set.RoadAccess)
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		set.AirQuality = signals.Contextualize(o.air.Signal(ctx, loc), signals.DimensionAirQuality)
	}()
	go func() {
		defer wg.Done()
		set.HospitalAccess = signals.Contextualize(o.hospital.Signal(ctx, loc), signals.DimensionHospital)
	}()
	go func() {
		defer wg.Done()
		set.FloodRisk = o.flood.Signal(ctx, loc)
	}()

	// Schools run on the same amenity backend as hospitals; keep them on
	// this goroutine so at most three Overpass queries are in flight.
	set.SchoolAccess = signals.Contextualize(o.school.Signal(ctx, loc), signals.DimensionSchools)

	set.CommuteStress = o.commute.Signal(loc, signals.DeriveReferenceHub(loc))

	wg.Wait()
	return set
}

// applyRoadAdjustment shifts a land pricing band by the road frontage
// multiplier and records the adjustment in the summary.
func applyRoadAdjustment(pricing *contracts.Signal, road *contracts.RoadAccess) {
	if road.PriceMultiplier == 1.0 || road.PriceMultiplier == 0 {
		return
	}

	if band, ok := pricing.Details["recommended_band"].(map[string]int64); ok {
		for k, v := range band {
			band[k] = int64(math.Round(float64(v) * road.PriceMultiplier))
		}
	}

	pricing.Summary += fmt.Sprintf(roadAdjustmentNote, road.PriceMultiplier)
	pricing.SetDetail("road_price_multiplier", road.PriceMultiplier)
}

// unresolvedResult is the fixed short-circuit verdict for locations that
// cannot be geocoded.
func unresolvedResult() *contracts.EvaluationResult {
	return &contracts.EvaluationResult{
		Decision:     contracts.DecisionCaution,
		Confidence:   unresolvedScore,
		NumericScore: unresolvedScore,
		Summary:      unresolvedSummary,
		Signals: &contracts.SignalSet{
			Pricing: &contracts.Signal{
				Score:   unresolvedScore,
				Summary: unresolvedSummary,
				Details: map[string]interface{}{
					"location_resolution": "failed",
				},
			},
		},
		LocationConfidence: unresolvedScore,
	}
}

// persist saves the result when a store is configured
func (o *Orchestrator) persist(ctx context.Context, address string, result *contracts.EvaluationResult) string {
	if o.store == nil {
		return ""
	}

	id, err := o.store.Save(ctx, address, result)
	if err != nil {
		o.logger.WithError(err).Error("Failed to persist evaluation")
		return ""
	}
	return id
}

// publish emits a pipeline event when a sink is configured
func (o *Orchestrator) publish(eventType, id, address string, payload map[string]interface{}) {
	if o.sink == nil {
		return
	}
	o.sink.Publish(events.New(eventType, id, address, payload))
}
