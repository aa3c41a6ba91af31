// internal/services/cart_service.go
package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/medolina/medolina-backend/internal/catalog"
	"github.com/medolina/medolina-backend/internal/store"
)

var ErrWeightUnavailable = errors.New("weight not offered for product")

// CartService validates cart mutations against the catalog before handing
// them to the per-user store, and prices the cart view. A mutation suppressed
// by the store's in-flight guard is a silent success: the caller gets the
// current state back either way.
type CartService struct {
	repo   *catalog.Repository
	stores *store.Manager
}

// CartItemView is one priced line of the cart.
type CartItemView struct {
	ProductID int     `json:"product_id"`
	Slug      string  `json:"slug"`
	Name      string  `json:"name"`
	Weight    string  `json:"weight"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

type CartView struct {
	Items []CartItemView `json:"items"`
	Count int            `json:"count"`
	Total float64        `json:"total"`
}

func NewCartService(repo *catalog.Repository, stores *store.Manager) *CartService {
	return &CartService{repo: repo, stores: stores}
}

func (s *CartService) cart(userID string) *store.CartStore {
	return s.stores.Cart("cart:" + userID)
}

func (s *CartService) Add(userID string, productID, quantity int, weight string) error {
	p, ok := s.repo.ByID(productID)
	if !ok {
		return ErrProductNotFound
	}
	if !p.HasWeight(weight) {
		return ErrWeightUnavailable
	}
	s.cart(userID).Add(productID, quantity, weight)
	return nil
}

func (s *CartService) SetQuantity(userID string, productID int, weight string, quantity int) error {
	p, ok := s.repo.ByID(productID)
	if !ok {
		return ErrProductNotFound
	}
	if !p.HasWeight(weight) {
		return ErrWeightUnavailable
	}
	s.cart(userID).SetQuantity(productID, weight, quantity)
	return nil
}

func (s *CartService) Remove(userID string, productID int, weight string) {
	s.cart(userID).Remove(productID, weight)
}

func (s *CartService) Clear(userID string) {
	s.cart(userID).Clear()
}

// View prices every line at its weight, applying the featured discount where
// the product is eligible. Lines whose product has left the catalog are
// skipped rather than failing the whole view.
func (s *CartService) View(userID string) CartView {
	lines := s.cart(userID).Lines()
	view := CartView{Items: make([]CartItemView, 0, len(lines))}
	total := decimal.Zero

	for _, line := range lines {
		p, ok := s.repo.ByID(line.ProductID)
		if !ok {
			continue
		}
		unit, err := catalog.PriceForWeight(p, line.Weight)
		if err != nil {
			continue
		}
		unit = catalog.DiscountedPrice(unit, catalog.IsFeaturedOffer(p))
		lineTotal := decimal.NewFromFloat(unit).Mul(decimal.NewFromInt(int64(line.Quantity)))

		view.Items = append(view.Items, CartItemView{
			ProductID: p.ID,
			Slug:      p.Slug,
			Name:      p.Name,
			Weight:    line.Weight,
			Quantity:  line.Quantity,
			UnitPrice: unit,
			LineTotal: lineTotal.InexactFloat64(),
		})
		view.Count += line.Quantity
		total = total.Add(lineTotal)
	}

	view.Total = total.InexactFloat64()
	return view
}
