// internal/catalog/paginate.go
package catalog

import (
	"github.com/medolina/medolina-backend/internal/models"
)

// Page returns the 1-based page slice [(page-1)*size, page*size). Pages past
// the end and invalid arguments both come back as the empty (non-nil) slice,
// so the JSON rendering is always [] and never null. The engine does not
// clamp; callers that want to reset an out-of-range page to 1 do so
// themselves (see CatalogService).
func Page(products []models.Product, page, size int) []models.Product {
	if page < 1 || size < 1 {
		return []models.Product{}
	}
	start := (page - 1) * size
	if start >= len(products) {
		return []models.Product{}
	}
	end := start + size
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

// TotalPages is ceil(n/size); zero items means zero pages, so an empty result
// renders an empty state rather than a stray page control.
func TotalPages(n, size int) int {
	if n <= 0 || size < 1 {
		return 0
	}
	return (n + size - 1) / size
}
