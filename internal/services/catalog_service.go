// internal/services/catalog_service.go
package services

import (
	"errors"

	"github.com/medolina/medolina-backend/internal/catalog"
	"github.com/medolina/medolina-backend/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogService composes the query pipeline over the product repository in
// the fixed order Filter -> Search -> Sort -> Paginate.
type CatalogService struct {
	repo *catalog.Repository
}

type CatalogQuery struct {
	Filter catalog.FilterState
	Search string
	Sort   models.SortKey
	Page   int
	Limit  int
}

type CatalogPage struct {
	Products   []ProductView `json:"products"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
}

// ProductView is a product together with its derived promotional price.
type ProductView struct {
	models.Product
	DiscountPrice *float64 `json:"discount_price,omitempty"`
}

// ProductDetail adds the per-weight price table shown on a product page.
type ProductDetail struct {
	ProductView
	WeightPrices map[string]float64 `json:"weight_prices"`
}

func NewCatalogService(repo *catalog.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

// List runs the query pipeline. An out-of-range page resets to page 1; the
// pagination engine itself never clamps.
func (s *CatalogService) List(q CatalogQuery) CatalogPage {
	products := s.repo.All()
	products = catalog.Filter(products, q.Filter)
	products = catalog.Search(products, q.Search)
	products = catalog.Sort(products, q.Sort)

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 12
	}
	totalPages := catalog.TotalPages(len(products), q.Limit)
	if q.Page > totalPages && totalPages > 0 {
		q.Page = 1
	}
	pageItems := catalog.Page(products, q.Page, q.Limit)

	views := make([]ProductView, 0, len(pageItems))
	for i := range pageItems {
		views = append(views, newProductView(&pageItems[i]))
	}

	return CatalogPage{
		Products:   views,
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      len(products),
		TotalPages: totalPages,
	}
}

// Autocomplete returns the capped suggestion list for a free-text query.
func (s *CatalogService) Autocomplete(query string) []ProductView {
	matches := catalog.Autocomplete(s.repo.All(), query)
	views := make([]ProductView, 0, len(matches))
	for i := range matches {
		views = append(views, newProductView(&matches[i]))
	}
	return views
}

func (s *CatalogService) GetBySlug(slug string) (*ProductDetail, error) {
	p, ok := s.repo.BySlug(slug)
	if !ok {
		return nil, ErrProductNotFound
	}

	detail := &ProductDetail{
		ProductView:  newProductView(p),
		WeightPrices: make(map[string]float64, len(p.AvailableWeights)),
	}
	for _, w := range p.AvailableWeights {
		price, err := catalog.PriceForWeight(p, w)
		if err != nil {
			continue
		}
		detail.WeightPrices[w] = price
	}
	return detail, nil
}

func (s *CatalogService) Categories() []catalog.Category {
	return s.repo.Categories()
}

// SellerProducts lists a seller's catalog in source order.
func (s *CatalogService) SellerProducts(sellerID int) []ProductView {
	products := s.repo.BySeller(sellerID)
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, newProductView(&products[i]))
	}
	return views
}

// ResolveProduct looks one product id up in the catalog.
func (s *CatalogService) ResolveProduct(id int) (ProductView, bool) {
	p, ok := s.repo.ByID(id)
	if !ok {
		return ProductView{}, false
	}
	return newProductView(p), true
}

// ResolveProducts maps product ids to views, dropping ids that no longer
// exist in the catalog. The favorites endpoints use this to render the set.
func (s *CatalogService) ResolveProducts(ids []int) []ProductView {
	out := make([]ProductView, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.repo.ByID(id); ok {
			out = append(out, newProductView(p))
		}
	}
	return out
}

func newProductView(p *models.Product) ProductView {
	v := ProductView{Product: *p}
	if catalog.IsFeaturedOffer(p) {
		dp := catalog.DiscountedPrice(p.Price, true)
		v.DiscountPrice = &dp
	}
	return v
}
