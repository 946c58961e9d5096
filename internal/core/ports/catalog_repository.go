package ports

import (
	"context"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	ListAll(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByIDs returns the subset of ids that still exist, keyed by id.
	// Missing ids are simply absent from the result, not an error.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error)
	Insert(ctx context.Context, p *domain.Product) (string, error)
	Update(ctx context.Context, id string, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}
