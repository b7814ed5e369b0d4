package handler

import (
	"time"

	"github.com/tagdemo/storefront/internal/core/domain"
)

// --- Request types ---

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

// updateCartItemRequest accepts zero or negative quantities; they remove the line.
type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type addFavoriteRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type pageViewRequest struct {
	Page   string         `json:"page"   validate:"required"`
	Params map[string]any `json:"params"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type attributesRequest struct {
	Birthday *string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Age      *int    `json:"age"      validate:"omitempty,min=0,max=150"`
	Gender   *string `json:"gender"   validate:"omitempty,oneof=male female other unknown"`
}

func (r attributesRequest) toDomain() domain.Attributes {
	return domain.Attributes{Birthday: r.Birthday, Age: r.Age, Gender: r.Gender}
}

type createProductRequest struct {
	Name        string `json:"name"        validate:"required"`
	Price       int    `json:"price"       validate:"min=0"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"    validate:"omitempty,imageref"`
	Category    string `json:"category"    validate:"required,oneof=electronics accessories"`
	Stock       int    `json:"stock"       validate:"min=0"`
}

func (r createProductRequest) toDomain() domain.ProductInput {
	return domain.ProductInput{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Category:    domain.Category(r.Category),
		Stock:       r.Stock,
	}
}

type updateProductRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1"`
	Price       *int    `json:"price"       validate:"omitempty,min=0"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"    validate:"omitempty,imageref"`
	Category    *string `json:"category"    validate:"omitempty,oneof=electronics accessories"`
	Stock       *int    `json:"stock"       validate:"omitempty,min=0"`
}

func (r updateProductRequest) toDomain() domain.ProductPatch {
	patch := domain.ProductPatch{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Stock:       r.Stock,
	}
	if r.Category != nil {
		c := domain.Category(*r.Category)
		patch.Category = &c
	}
	return patch
}

// --- Response types ---

type productListResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

type cartResponse struct {
	Items         []domain.CartLine `json:"items"`
	TotalQuantity int               `json:"total_quantity"`
	TotalPrice    int               `json:"total_price"`
}

type cartStateResponse struct {
	Cart []domain.CartItem `json:"cart"`
}

type cartTotalResponse struct {
	Total int `json:"total"`
}

type favoritesResponse struct {
	Products []domain.Product `json:"products"`
}

type favoriteStateResponse struct {
	Favorites []domain.FavoriteItem `json:"favorites"`
}

type orderResponse struct {
	OrderID       string            `json:"order_id"`
	Items         []domain.CartLine `json:"items"`
	TotalQuantity int               `json:"total_quantity"`
	TotalPrice    int               `json:"total_price"`
	PlacedAt      time.Time         `json:"placed_at"`
}

type userResponse struct {
	User domain.User `json:"user"`
}

type dataLayerResponse struct {
	Events  []domain.TagEvent `json:"events"`
	Count   int               `json:"count"`
	Drained bool              `json:"drained"`
}
