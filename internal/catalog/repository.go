// internal/catalog/repository.go
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/medolina/medolina-backend/internal/models"
)

//go:embed data/products.json
var seedData []byte

// Repository is the read-only in-memory product collection. It is loaded once
// at startup and never mutated afterwards, so all accessors are safe for
// concurrent use without locking.
type Repository struct {
	products []models.Product
	bySlug   map[string]int
	byID     map[int]int
}

// NewRepository builds a repository from raw JSON (an array of products).
func NewRepository(data []byte) (*Repository, error) {
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("catalog: decode dataset: %w", err)
	}

	r := &Repository{
		products: products,
		bySlug:   make(map[string]int, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for i, p := range products {
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		if _, dup := r.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("catalog: duplicate product slug %q", p.Slug)
		}
		r.byID[p.ID] = i
		r.bySlug[p.Slug] = i
	}
	return r, nil
}

// NewRepositoryFromFile loads a dataset from disk; an empty path falls back
// to the embedded seed catalog.
func NewRepositoryFromFile(path string) (*Repository, error) {
	if path == "" {
		return NewRepository(seedData)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read dataset: %w", err)
	}
	return NewRepository(data)
}

// All returns the catalog in source order. Callers get a fresh slice so the
// backing array stays immutable.
func (r *Repository) All() []models.Product {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out
}

func (r *Repository) Len() int {
	return len(r.products)
}

// BySlug looks a product up by its URL slug.
func (r *Repository) BySlug(slug string) (*models.Product, bool) {
	i, ok := r.bySlug[slug]
	if !ok {
		return nil, false
	}
	p := r.products[i]
	return &p, true
}

// ByID looks a product up by numeric id.
func (r *Repository) ByID(id int) (*models.Product, bool) {
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	p := r.products[i]
	return &p, true
}

// ByCategory returns products whose category slug matches, in source order.
func (r *Repository) ByCategory(categorySlug string) []models.Product {
	var out []models.Product
	for _, p := range r.products {
		if p.CategorySlug == categorySlug {
			out = append(out, p)
		}
	}
	return out
}

// BySeller returns every product offered by the given seller.
func (r *Repository) BySeller(sellerID int) []models.Product {
	var out []models.Product
	for _, p := range r.products {
		if p.Seller.ID == sellerID {
			out = append(out, p)
		}
	}
	return out
}

// Category is a distinct catalog category with its product count.
type Category struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories returns the distinct categories in first-seen order.
func (r *Repository) Categories() []Category {
	index := make(map[string]int)
	var out []Category
	for _, p := range r.products {
		if i, ok := index[p.CategorySlug]; ok {
			out[i].Count++
			continue
		}
		index[p.CategorySlug] = len(out)
		out = append(out, Category{Slug: p.CategorySlug, Name: p.Category, Count: 1})
	}
	return out
}
