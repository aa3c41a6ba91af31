// internal/catalog/pricing.go
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/medolina/medolina-backend/internal/models"
)

// The storefront displays whole-KM amounts, so every derived price is rounded
// to the nearest integer unit.
const priceScale = 0

// FeaturedDiscountPercent is the flat promotional reduction applied to
// featured offers.
const FeaturedDiscountPercent = 15

var errUnknownWeight = errors.New("catalog: weight not offered for product")

// PriceForWeight returns the product price for one of its offered weights.
// The price at the product's native weight is returned unchanged; any other
// weight is scaled linearly by the ratio of gram magnitudes, e.g. the price
// for "850g" is price("450g") x 850/450.
func PriceForWeight(p *models.Product, targetWeight string) (float64, error) {
	if targetWeight == p.Weight {
		return p.Price, nil
	}
	if !p.HasWeight(targetWeight) {
		return 0, fmt.Errorf("%w: %q for product %d", errUnknownWeight, targetWeight, p.ID)
	}

	baseGrams, err := WeightGrams(p.Weight)
	if err != nil {
		return 0, err
	}
	targetGrams, err := WeightGrams(targetWeight)
	if err != nil {
		return 0, err
	}

	price := decimal.NewFromFloat(p.Price).
		Mul(decimal.NewFromInt(targetGrams)).
		Div(decimal.NewFromInt(baseGrams)).
		Round(priceScale)
	f, _ := price.Float64()
	return f, nil
}

// IsFeaturedOffer reports whether a product is eligible for the daily flat
// discount. Eligibility is a declarative per-product flag in the dataset, not
// a heuristic over category or seller.
func IsFeaturedOffer(p *models.Product) bool {
	return p.OnFeaturedOffer
}

// DiscountedPrice applies the flat featured reduction; for non-featured
// products the base price passes through unchanged.
func DiscountedPrice(basePrice float64, featured bool) float64 {
	if !featured {
		return basePrice
	}
	price := decimal.NewFromFloat(basePrice).
		Mul(decimal.NewFromInt(100 - FeaturedDiscountPercent)).
		Div(decimal.NewFromInt(100)).
		Round(priceScale)
	f, _ := price.Float64()
	return f
}

// WeightGrams parses weight strings like "450g" or "1kg" into grams.
func WeightGrams(w string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(w))
	switch {
	case strings.HasSuffix(s, "kg"):
		val, err := strconv.ParseFloat(strings.TrimSuffix(s, "kg"), 64)
		if err != nil {
			return 0, fmt.Errorf("catalog: bad weight %q: %w", w, err)
		}
		return int64(val * 1000), nil
	case strings.HasSuffix(s, "g"):
		val, err := strconv.ParseInt(strings.TrimSuffix(s, "g"), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("catalog: bad weight %q: %w", w, err)
		}
		return val, nil
	default:
		return 0, fmt.Errorf("catalog: bad weight %q", w)
	}
}
