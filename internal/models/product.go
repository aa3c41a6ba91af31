// internal/models/product.go
package models

// Seller is embedded in every product record. The catalog dataset carries the
// full seller snapshot so product listings never need a second lookup.
type Seller struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Avatar   string `json:"avatar,omitempty"`
}

// Product is a catalog item. The collection is loaded once at startup and is
// read-only afterwards; price is always denominated for Weight, prices for the
// other AvailableWeights are derived by linear scaling (see catalog.PriceForWeight).
type Product struct {
	ID               int      `json:"id"`
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Price            float64  `json:"price"` // KM, for Weight
	Weight           string   `json:"weight"`
	AvailableWeights []string `json:"available_weights"`
	Category         string   `json:"category"`
	CategorySlug     string   `json:"category_slug"`
	Additives        []string `json:"additives,omitempty"`
	Season           Season   `json:"season,omitempty"`
	Rating           float64  `json:"rating"`
	ReviewCount      int      `json:"review_count"`
	StockCount       int      `json:"stock_count"`
	// InStock is maintained independently of StockCount in the dataset and
	// must be checked explicitly, never derived.
	InStock         bool   `json:"in_stock"`
	Badge           Badge  `json:"badge,omitempty"`
	OnFeaturedOffer bool   `json:"on_featured_offer"`
	Seller          Seller `json:"seller"`
}

// HasWeight reports whether w is one of the product's offered weights.
func (p *Product) HasWeight(w string) bool {
	for _, aw := range p.AvailableWeights {
		if aw == w {
			return true
		}
	}
	return false
}
