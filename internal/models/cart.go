// internal/models/cart.go
package models

// CartLine is one cart entry. Identity is the (ProductID, Weight) pair: the
// same product in two jar sizes makes two distinct lines, while re-adding an
// existing pair increments Quantity.
type CartLine struct {
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Weight    string `json:"weight"`
}

// Key returns the logical identity of the line.
func (l CartLine) Key() CartKey {
	return CartKey{ProductID: l.ProductID, Weight: l.Weight}
}

type CartKey struct {
	ProductID int
	Weight    string
}
