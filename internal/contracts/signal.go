package contracts

// Signal is a scored, explained assessment of one property dimension.
// Scores live in [0,1]; Summary is human-readable prose that downstream
// stages may extend but never truncate or replace wholesale.
type Signal struct {
	Score   float64                `json:"score"`
	Summary string                 `json:"summary"`
	Details map[string]interface{} `json:"details"`
}

// Clamp forces the score into [0,1]
func (s *Signal) Clamp() {
	if s.Score < 0 {
		s.Score = 0
	}
	if s.Score > 1 {
		s.Score = 1
	}
}

// Detail returns a string detail value, or "" when absent
func (s *Signal) Detail(key string) string {
	if s.Details == nil {
		return ""
	}
	if v, ok := s.Details[key].(string); ok {
		return v
	}
	return ""
}

// SetDetail stores a detail value, allocating the map on first use
func (s *Signal) SetDetail(key string, value interface{}) {
	if s.Details == nil {
		s.Details = make(map[string]interface{})
	}
	s.Details[key] = value
}

// NeutralSignal returns the designated "unavailable" signal for a dimension.
// Providers degrade to this instead of propagating fetch failures.
func NeutralSignal(summary string) *Signal {
	return &Signal{
		Score:   0.5,
		Summary: summary,
		Details: map[string]interface{}{},
	}
}

// SignalSet holds the full per-dimension signal set for one evaluation
type SignalSet struct {
	Pricing        *Signal     `json:"pricing"`
	RoadAccess     *RoadAccess `json:"road_access"`
	AirQuality     *Signal     `json:"air_quality"`
	HospitalAccess *Signal     `json:"hospital_access"`
	CommuteStress  *Signal     `json:"commute_stress"`
	SchoolAccess   *Signal     `json:"school_access"`
	FloodRisk      *Signal     `json:"flood_risk"`
}

// RoadAccess is a Signal extended with frontage classification outputs.
// PriceMultiplier adjusts land price bands; LiquidityFactor feeds the
// scoring engine (1.0 neutral, >1.0 means higher resale friction).
type RoadAccess struct {
	Signal
	Category        string  `json:"category"`
	Label           string  `json:"label"`
	Confidence      float64 `json:"confidence"`
	PriceMultiplier float64 `json:"price_multiplier"`
	LiquidityFactor float64 `json:"liquidity_factor"`
}
