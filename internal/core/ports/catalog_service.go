package ports

import (
	"context"

	"github.com/tagdemo/storefront/internal/core/domain"
)

// CatalogService serves product reads to shoppers and mutations to admins.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, bool, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error)

	Create(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	// Update merges patch into the product; found is false when id is unknown.
	Update(ctx context.Context, id string, patch domain.ProductPatch) (p domain.Product, found bool, err error)
	Delete(ctx context.Context, id string) (bool, error)
	ResetToDefault(ctx context.Context) error

	ExportJSON(ctx context.Context) ([]byte, error)
	ExportCSV(ctx context.Context) ([]byte, error)
}
