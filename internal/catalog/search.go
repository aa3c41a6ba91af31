// internal/catalog/search.go
package catalog

import (
	"strings"

	"github.com/medolina/medolina-backend/internal/models"
)

// MaxSuggestions caps the autocomplete result set.
const MaxSuggestions = 5

// minQueryLen is the shortest query the autocomplete reacts to.
const minQueryLen = 2

// Search returns products whose name, description, seller name or seller
// location contains the query, case-insensitively. A blank or whitespace-only
// query returns the input unchanged.
func Search(products []models.Product, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesQuery(&p, q) {
			out = append(out, p)
		}
	}
	return out
}

// Autocomplete returns up to MaxSuggestions matches in source order. Queries
// shorter than two characters produce no suggestions.
func Autocomplete(products []models.Product, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < minQueryLen {
		return nil
	}

	out := make([]models.Product, 0, MaxSuggestions)
	for _, p := range products {
		if matchesQuery(&p, q) {
			out = append(out, p)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out
}

func matchesQuery(p *models.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Seller.Name), q) ||
		strings.Contains(strings.ToLower(p.Seller.Location), q)
}
