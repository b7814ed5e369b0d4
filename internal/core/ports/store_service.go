package ports

import (
	"context"

	"github.com/tagdemo/storefront/internal/core/domain"
)

// StoreState is a point-in-time copy of the shopper state.
type StoreState struct {
	Cart      []domain.CartItem     `json:"cart"`
	Favorites []domain.FavoriteItem `json:"favorites"`
	User      *domain.User          `json:"user"`
	IsLoading bool                  `json:"isLoading"`
	Error     string                `json:"error,omitempty"`
}

// StoreService is the action API of the shopper state container.
type StoreService interface {
	State() StoreState

	AddToCart(ctx context.Context, product domain.Product, quantity int) error
	RemoveFromCart(ctx context.Context, productID string) error
	UpdateQuantity(ctx context.Context, productID string, quantity int) error
	ClearCart(ctx context.Context) error
	CartTotal(ctx context.Context) (int, error)
	CartLines(ctx context.Context) ([]domain.CartLine, error)
	Checkout(ctx context.Context) (domain.Order, error)

	AddToFavorites(ctx context.Context, product domain.Product) error
	RemoveFromFavorites(ctx context.Context, productID string) error
	IsFavorite(productID string) bool
	FavoriteProducts(ctx context.Context) ([]domain.Product, error)

	Register(ctx context.Context, email, password, name string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	Logout(ctx context.Context) error
	CheckAuth(ctx context.Context) *domain.User
	UpdateAttributes(ctx context.Context, attrs domain.Attributes) (domain.User, error)

	ViewProduct(ctx context.Context, id string) (domain.Product, bool, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	Browse(ctx context.Context, category domain.Category) ([]domain.Product, error)
	PageView(page string, params map[string]any)
}
