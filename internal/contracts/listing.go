package contracts

import "time"

// Listing is one property sale record collected from a listings portal.
// Listings feed the comparable-transaction store used by pricing.
type Listing struct {
	Source       string    `json:"source"`
	SourceRef    string    `json:"source_ref"`
	Title        string    `json:"title"`
	PropertyType string    `json:"property_type"`
	Price        int64     `json:"price"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	ListedAt     time.Time `json:"listed_at"`
}
