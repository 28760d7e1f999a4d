package contracts

// EvaluationRequest is one property evaluation unit of work
type EvaluationRequest struct {
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`

	AskingPrice  int64    `json:"asking_price"`
	PropertyType string   `json:"property_type,omitempty"` // "2bhk", "land", "plot", ...
	RadiusM      int      `json:"radius_m,omitempty"`
	LandAreaSqft *float64 `json:"land_area_sqft,omitempty"`
	RoadWidthFt  *float64 `json:"road_width_ft,omitempty"`
	EndUse       string   `json:"end_use,omitempty"`
}

// IsLand reports whether the request concerns a land parcel
func (r *EvaluationRequest) IsLand() bool {
	return r.PropertyType == "land" || r.PropertyType == "plot"
}

// Normalize fills request defaults in place
func (r *EvaluationRequest) Normalize() {
	if r.PropertyType == "" {
		r.PropertyType = "unknown"
	}
	if r.RadiusM <= 0 {
		r.RadiusM = 2000
	}
}

// Location is a resolved geographic position
type Location struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name,omitempty"`
}

// Resolved reports whether the location carries usable coordinates
func (l *Location) Resolved() bool {
	return l != nil && (l.Lat != 0 || l.Lng != 0)
}

// ReferenceHub is the assumed commute destination derived from the
// resolved location when no workplace is provided.
type ReferenceHub struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}
