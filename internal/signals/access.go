package signals

import (
	"context"
	"fmt"

	"github.com/plotwise/plotwise/internal/contracts"
	"github.com/plotwise/plotwise/pkg/logger"
)

// AmenityCounter counts mapped amenities of a kind near a location
// (implemented by external/overpass)
type AmenityCounter interface {
	CountNearby(ctx context.Context, lat, lng float64, kind string, radiusM int) (int, error)
}

// Search radii for infrastructure lookups
const (
	hospitalRadiusM = 5000
	schoolRadiusM   = 3000
	waterwayRadiusM = 1000
)

// HospitalAccessProvider scores emergency medical access by hospital
// density within practical reach.
type HospitalAccessProvider struct {
	amenities AmenityCounter
	logger    *logger.Logger
}

// NewHospitalAccessProvider creates a new hospital access provider
func NewHospitalAccessProvider(amenities AmenityCounter, log *logger.Logger) *HospitalAccessProvider {
	return &HospitalAccessProvider{
		amenities: amenities,
		logger:    log,
	}
}

// Signal scores hospital access, degrading to neutral when map data is
// unreachable.
func (p *HospitalAccessProvider) Signal(ctx context.Context, loc *contracts.Location) *contracts.Signal {
	count, err := p.amenities.CountNearby(ctx, loc.Lat, loc.Lng, "hospital", hospitalRadiusM)
	if err != nil {
		p.logger.WithError(err).Warn("Hospital lookup failed, degrading to neutral signal")
		return contracts.NeutralSignal("Hospital access data unavailable; assuming average emergency access")
	}

	var score float64
	var summary string
	switch {
	case count >= 3:
		score = 0.85
		summary = fmt.Sprintf("Good emergency access with %d hospitals within 5 km", count)
	case count >= 1:
		score = 0.55
		summary = fmt.Sprintf("Limited emergency access with %d hospital(s) within 5 km", count)
	default:
		score = 0.25
		summary = "No hospital found within 5 km; emergency access is a concern"
	}

	return &contracts.Signal{
		Score:   score,
		Summary: summary,
		Details: map[string]interface{}{
			"hospital_count": count,
			"radius_m":       hospitalRadiusM,
		},
	}
}

// SchoolAccessProvider scores school availability within daily travel
// range.
type SchoolAccessProvider struct {
	amenities AmenityCounter
	logger    *logger.Logger
}

// NewSchoolAccessProvider creates a new school access provider
func NewSchoolAccessProvider(amenities AmenityCounter, log *logger.Logger) *SchoolAccessProvider {
	return &SchoolAccessProvider{
		amenities: amenities,
		logger:    log,
	}
}

// Signal scores school density, degrading to neutral when map data is
// unreachable.
func (p *SchoolAccessProvider) Signal(ctx context.Context, loc *contracts.Location) *contracts.Signal {
	count, err := p.amenities.CountNearby(ctx, loc.Lat, loc.Lng, "school", schoolRadiusM)
	if err != nil {
		p.logger.WithError(err).Warn("School lookup failed, degrading to neutral signal")
		return contracts.NeutralSignal("School density data unavailable; assuming average availability")
	}

	var score float64
	var summary string
	switch {
	case count >= 5:
		score = 0.85
		summary = fmt.Sprintf("Strong school availability with %d schools within 3 km", count)
	case count >= 2:
		score = 0.65
		summary = fmt.Sprintf("Reasonable school availability with %d schools within 3 km", count)
	case count == 1:
		score = 0.45
		summary = "Only one school within 3 km; options are limited"
	default:
		score = 0.25
		summary = "No school found within 3 km of the property"
	}

	return &contracts.Signal{
		Score:   score,
		Summary: summary,
		Details: map[string]interface{}{
			"school_count": count,
			"radius_m":     schoolRadiusM,
		},
	}
}

// FloodRiskProvider approximates flood exposure from mapped waterways
// near the plot. Proximity to drains and streams dominates monsoon
// flooding risk in the absence of site-level elevation surveys.
type FloodRiskProvider struct {
	amenities AmenityCounter
	logger    *logger.Logger
}

// NewFloodRiskProvider creates a new flood risk provider
func NewFloodRiskProvider(amenities AmenityCounter, log *logger.Logger) *FloodRiskProvider {
	return &FloodRiskProvider{
		amenities: amenities,
		logger:    log,
	}
}

// Signal scores flood exposure (higher score = lower risk), degrading to
// neutral when map data is unreachable.
func (p *FloodRiskProvider) Signal(ctx context.Context, loc *contracts.Location) *contracts.Signal {
	count, err := p.amenities.CountNearby(ctx, loc.Lat, loc.Lng, "waterway", waterwayRadiusM)
	if err != nil {
		p.logger.WithError(err).Warn("Waterway lookup failed, degrading to neutral signal")
		return contracts.NeutralSignal("Flood risk data unavailable; site-level verification recommended")
	}

	var score float64
	var summary string
	switch {
	case count == 0:
		score = 0.8
		summary = "No major waterway within 1 km; flood exposure appears low"
	case count <= 2:
		score = 0.5
		summary = fmt.Sprintf("%d waterway(s) within 1 km; monsoon drainage should be verified", count)
	default:
		score = 0.3
		summary = fmt.Sprintf("%d waterways within 1 km; elevated flood exposure during heavy rains", count)
	}

	return &contracts.Signal{
		Score:   score,
		Summary: summary,
		Details: map[string]interface{}{
			"waterway_count": count,
			"radius_m":       waterwayRadiusM,
		},
	}
}
