package domain

import "errors"

// Category groups products in the storefront navigation.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryAccessories Category = "accessories"
)

var ErrProductNotFound = errors.New("product not found")

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == CategoryElectronics || c == CategoryAccessories
}

// Product is a purchasable catalog record. Price is in whole yen.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Category    Category `json:"category"`
	Stock       int      `json:"stock"`
}

// ProductInput carries every field of a product except its id.
type ProductInput struct {
	Name        string
	Price       int
	Description string
	ImageURL    string
	Category    Category
	Stock       int
}

// ProductPatch is a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Price       *int
	Description *string
	ImageURL    *string
	Category    *Category
	Stock       *int
}

// Apply returns a copy of p with the non-nil patch fields merged in.
// The id is never changed.
func (pp ProductPatch) Apply(p Product) Product {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.ImageURL != nil {
		p.ImageURL = *pp.ImageURL
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	return p
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}
