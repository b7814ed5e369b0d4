package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrEmptyCart       = errors.New("cart is empty")
	// ErrDuplicateSubmit is returned while a repeated add-to-cart is suppressed.
	ErrDuplicateSubmit = errors.New("already added, please wait a moment")
)

// CartItem is one line of the cart. There is at most one item per product and
// its quantity is always positive.
type CartItem struct {
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// FavoriteItem marks a product as liked by the shopper.
type FavoriteItem struct {
	ProductID string    `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartLine is a cart item joined with the product it references.
type CartLine struct {
	CartItem
	Product Product `json:"product"`
}

// Subtotal is the line price at the product's current price.
func (l CartLine) Subtotal() int {
	return l.Product.Price * l.Quantity
}

// Order is the outcome of a checkout. Orders are not persisted.
type Order struct {
	ID            string     `json:"id"`
	Lines         []CartLine `json:"lines"`
	TotalQuantity int        `json:"total_quantity"`
	TotalPrice    int        `json:"total_price"`
	PlacedAt      time.Time  `json:"placed_at"`
}

// IndexOfCartItem returns the position of productID in items, or -1.
func IndexOfCartItem(items []CartItem, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// IndexOfFavorite returns the position of productID in items, or -1.
func IndexOfFavorite(items []FavoriteItem, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
