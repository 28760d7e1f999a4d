package contracts

// RegionTier is a coarse metro / non-metro classification.
// It drives scoring weights and recommendation tone.
type RegionTier string

const (
	RegionTier1   RegionTier = "tier_1"   // metro
	RegionTier2_3 RegionTier = "tier_2_3" // everything else
)

// Region describes the resolved region of a property.
// Immutable once computed.
type Region struct {
	Tier  RegionTier `json:"tier"`
	Label string     `json:"label"`
}

// EndUse is the buyer's declared intent for the property
type EndUse string

const (
	EndUseSelfUse    EndUse = "self_use"
	EndUseInvestment EndUse = "investment"
	EndUseBoth       EndUse = "both"
)

// NormalizeEndUse maps arbitrary input to a valid EndUse,
// defaulting to "both" when absent or invalid.
func NormalizeEndUse(raw string) EndUse {
	switch EndUse(raw) {
	case EndUseSelfUse, EndUseInvestment, EndUseBoth:
		return EndUse(raw)
	default:
		return EndUseBoth
	}
}
