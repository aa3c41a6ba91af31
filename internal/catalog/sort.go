// internal/catalog/sort.go
package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/medolina/medolina-backend/internal/models"
)

// collator handles diacritics in Bosnian product and place names so that
// "Čapljina" sorts after "Cazin", not after "Zvornik".
var collator = collate.New(language.Make("bs"))

// Sort returns a new list ordered by the given key. The input is never
// mutated; SortDefault preserves source order. Ordering is deterministic:
// equal primary keys fall back to product id ascending.
func Sort(products []models.Product, key models.SortKey) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	if key == models.SortDefault || key == "" {
		return out
	}

	var less func(a, b *models.Product) int
	switch key {
	case models.SortPriceAsc:
		less = func(a, b *models.Product) int { return compareFloat(a.Price, b.Price) }
	case models.SortPriceDesc:
		less = func(a, b *models.Product) int { return compareFloat(b.Price, a.Price) }
	case models.SortRatingDesc:
		less = func(a, b *models.Product) int { return compareFloat(b.Rating, a.Rating) }
	case models.SortReviewsDesc:
		less = func(a, b *models.Product) int { return b.ReviewCount - a.ReviewCount }
	case models.SortNameAsc:
		less = func(a, b *models.Product) int { return collator.CompareString(a.Name, b.Name) }
	case models.SortSellerAsc:
		less = func(a, b *models.Product) int { return collator.CompareString(a.Seller.Name, b.Seller.Name) }
	case models.SortLocationAsc:
		less = func(a, b *models.Product) int { return collator.CompareString(a.Seller.Location, b.Seller.Location) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := less(&out[i], &out[j]); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
