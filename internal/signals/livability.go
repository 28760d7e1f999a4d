package signals

import (
	"context"
	"fmt"

	"github.com/plotwise/plotwise/internal/contracts"
	"github.com/plotwise/plotwise/pkg/logger"
)

// AQIReading is one air quality measurement near a location
type AQIReading struct {
	AQI               int
	DominantPollutant string
}

// AQIClient fetches air quality readings (implemented by external/aqi)
type AQIClient interface {
	Nearest(ctx context.Context, lat, lng float64) (*AQIReading, error)
}

// AirQualityProvider produces the livability (air quality) signal
type AirQualityProvider struct {
	client AQIClient
	logger *logger.Logger
}

// NewAirQualityProvider creates a new air quality provider
func NewAirQualityProvider(client AQIClient, log *logger.Logger) *AirQualityProvider {
	return &AirQualityProvider{
		client: client,
		logger: log,
	}
}

// aqiUnavailableSummary is the degraded-signal summary. The token
// "AQI data unavailable" is recognized downstream by location-confidence
// derivation, so it must stay verbatim.
const aqiUnavailableSummary = "AQI data unavailable; assuming average Indian urban air quality"

// Signal fetches and scores air quality, degrading to a neutral signal
// when the provider is unreachable.
func (p *AirQualityProvider) Signal(ctx context.Context, loc *contracts.Location) *contracts.Signal {
	reading, err := p.client.Nearest(ctx, loc.Lat, loc.Lng)
	if err != nil || reading == nil {
		if err != nil {
			p.logger.WithError(err).Warn("AQI fetch failed, degrading to neutral signal")
		}
		return contracts.NeutralSignal(aqiUnavailableSummary)
	}

	aqi := normalizeIndiaAQI(reading.AQI)

	var score float64
	var label string
	switch {
	case aqi <= 50:
		score = 0.9
		label = "Good air quality (Indian context)"
	case aqi <= 100:
		score = 0.7
		label = "Moderate air quality"
	case aqi <= 200:
		score = 0.4
		label = "Poor air quality"
	default:
		score = 0.2
		label = "Very unhealthy air quality"
	}

	sig := &contracts.Signal{
		Score:   score,
		Summary: formatAQISummary(aqi, label),
		Details: map[string]interface{}{
			"aqi":      aqi,
			"category": label,
		},
	}
	if reading.DominantPollutant != "" {
		sig.Details["dominant_pollutant"] = reading.DominantPollutant
	}

	return sig
}

// normalizeIndiaAQI applies an India realism guardrail: AQI below 30 is
// almost never realistic in Indian urban areas.
func normalizeIndiaAQI(aqi int) int {
	if aqi < 30 {
		return 45
	}
	return aqi
}

func formatAQISummary(aqi int, label string) string {
	return fmt.Sprintf("AQI ~%d (%s)", aqi, label)
}
