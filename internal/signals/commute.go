package signals

import (
	"fmt"
	"math"

	"github.com/plotwise/plotwise/internal/contracts"
	"github.com/plotwise/plotwise/pkg/logger"
)

// Assumed average door-to-door speed for Indian urban commutes (km/h)
const assumedCommuteSpeedKmh = 25.0

// commuteAssumption is recorded in the signal details for transparency
const commuteAssumption = "Approximate local commute estimate."

// CommuteStressProvider estimates the daily commute burden between the
// property and a reference employment hub. Purely geometric; no routing
// service is called.
type CommuteStressProvider struct {
	logger *logger.Logger
}

// NewCommuteStressProvider creates a new commute stress provider
func NewCommuteStressProvider(log *logger.Logger) *CommuteStressProvider {
	return &CommuteStressProvider{logger: log}
}

// DeriveReferenceHub derives the assumed commute destination from the
// resolved location when the buyer supplies no workplace.
func DeriveReferenceHub(loc *contracts.Location) *contracts.ReferenceHub {
	return &contracts.ReferenceHub{
		Lat:   loc.Lat,
		Lng:   loc.Lng,
		Label: "local employment cluster (approximate)",
	}
}

// Signal estimates the commute stress signal
func (p *CommuteStressProvider) Signal(home *contracts.Location, hub *contracts.ReferenceHub) *contracts.Signal {
	distanceKm := haversineKm(home.Lat, home.Lng, hub.Lat, hub.Lng)
	minutes := distanceKm / assumedCommuteSpeedKmh * 60

	var score float64
	var summary string
	switch {
	case minutes <= 20:
		score = 0.9
		summary = "Commute to the nearest employment cluster is short"
	case minutes <= 40:
		score = 0.7
		summary = "Commute to the nearest employment cluster is manageable"
	case minutes <= 60:
		score = 0.45
		summary = "Commute to the nearest employment cluster is significant"
	default:
		score = 0.25
		summary = "Commute to the nearest employment cluster is a daily burden"
	}

	return &contracts.Signal{
		Score: score,
		Summary: fmt.Sprintf("%s (~%d min each way, %s)",
			summary, int(math.Round(minutes)), hub.Label),
		Details: map[string]interface{}{
			"estimated_minutes": math.Round(minutes),
			"distance_km":       math.Round(distanceKm*10) / 10,
			"hub_label":         hub.Label,
			"assumption":        commuteAssumption,
		},
	}
}

// haversineKm returns the great-circle distance between two coordinates
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0

	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
