package region

import "github.com/plotwise/plotwise/internal/contracts"

// metroBox is an approximate bounding box for a Tier-1 metro area
type metroBox struct {
	minLat, maxLat float64
	minLng, maxLng float64
	label          string
}

// Conservative India-first boxes. Anything outside is treated as
// Tier 2/3 rather than guessed.
var metroBoxes = []metroBox{
	{28.4, 28.9, 76.8, 77.4, "Delhi NCR"},
	{12.8, 13.2, 77.4, 77.8, "Bengaluru"},
	{18.8, 19.3, 72.7, 73.1, "Mumbai"},
}

// InferTier classifies a resolved location into a region tier.
// Pure function, no I/O.
func InferTier(loc *contracts.Location) *contracts.Region {
	for _, box := range metroBoxes {
		if loc.Lat >= box.minLat && loc.Lat <= box.maxLat &&
			loc.Lng >= box.minLng && loc.Lng <= box.maxLng {
			return &contracts.Region{Tier: contracts.RegionTier1, Label: box.label}
		}
	}

	return &contracts.Region{Tier: contracts.RegionTier2_3, Label: "Non-metro India"}
}
