// internal/catalog/filter.go
package catalog

import (
	"github.com/medolina/medolina-backend/internal/models"
)

// FilterState holds the transient query parameters for one catalog view.
// It is rebuilt per request, typically from URL query values, and never
// persisted. A zero FilterState matches everything.
type FilterState struct {
	Categories []string        `json:"categories,omitempty"` // category slugs
	Additives  []string        `json:"additives,omitempty"`
	Seasons    []models.Season `json:"seasons,omitempty"`
	Weights    []string        `json:"weights,omitempty"`
	MinPrice   *float64        `json:"min_price,omitempty"`
	MaxPrice   *float64        `json:"max_price,omitempty"`
	MinRating  *float64        `json:"min_rating,omitempty"`
	Locations  []string        `json:"locations,omitempty"`
	Badges     []models.Badge  `json:"badges,omitempty"`
	OnDiscount bool            `json:"on_discount,omitempty"`
}

// IsZero reports whether no predicate is active.
func (f FilterState) IsZero() bool {
	return len(f.Categories) == 0 && len(f.Additives) == 0 && len(f.Seasons) == 0 &&
		len(f.Weights) == 0 && f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinRating == nil && len(f.Locations) == 0 && len(f.Badges) == 0 &&
		!f.OnDiscount
}

// Filter returns the subset of products satisfying every active predicate.
// Dimensions combine with AND; values within one dimension combine with OR,
// so selecting two categories matches products in either. The input is never
// mutated and the result preserves input order.
func Filter(products []models.Product, f FilterState) []models.Product {
	if f.IsZero() {
		return products
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.matches(&p) {
			out = append(out, p)
		}
	}
	return out
}

func (f FilterState) matches(p *models.Product) bool {
	if len(f.Categories) > 0 && !containsString(f.Categories, p.CategorySlug) {
		return false
	}
	if len(f.Additives) > 0 && !intersects(f.Additives, p.Additives) {
		return false
	}
	if len(f.Seasons) > 0 && !containsSeason(f.Seasons, p.Season) {
		return false
	}
	if len(f.Weights) > 0 && !intersects(f.Weights, p.AvailableWeights) {
		return false
	}
	// Price range applies to the base price at the product's native weight.
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	if len(f.Locations) > 0 && !containsString(f.Locations, p.Seller.Location) {
		return false
	}
	if len(f.Badges) > 0 && !containsBadge(f.Badges, p.Badge) {
		return false
	}
	if f.OnDiscount && !IsFeaturedOffer(p) {
		return false
	}
	return true
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsSeason(set []models.Season, v models.Season) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsBadge(set []models.Badge, v models.Badge) bool {
	for _, b := range set {
		if b == v {
			return true
		}
	}
	return false
}

func intersects(selected, have []string) bool {
	for _, s := range selected {
		for _, h := range have {
			if s == h {
				return true
			}
		}
	}
	return false
}
