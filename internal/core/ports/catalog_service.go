package ports

import (
	"context"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

// ProductInput carries the fields an admin supplies when creating or
// updating a catalog product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Category    string
	InStock     bool
}

// CatalogService defines use-case operations for the product catalog.
// Listing is unauthenticated; writes are admin-gated.
type CatalogService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	Create(ctx context.Context, caller domain.Identity, input ProductInput) (string, error)
	Update(ctx context.Context, caller domain.Identity, productID string, input ProductInput) error
	Delete(ctx context.Context, caller domain.Identity, productID string) error
}
