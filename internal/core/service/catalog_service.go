package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/warungkita/storefront-api/internal/api/metrics"
	"github.com/warungkita/storefront-api/internal/core/domain"
	"github.com/warungkita/storefront-api/internal/core/ports"
)

// CatalogCache abstracts the catalog read cache (Redis). The empty category
// keys the full listing. A nil, nil Get result means a cache miss.
type CatalogCache interface {
	Get(ctx context.Context, category string) ([]*domain.Product, error)
	Set(ctx context.Context, category string, products []*domain.Product) error
	Invalidate(ctx context.Context) error
}

// CatalogService implements catalog browsing and the admin-gated writes.
type CatalogService struct {
	repo  ports.ProductRepository
	admin ports.AdminService
	cache CatalogCache
	log   zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, admin ports.AdminService, cache CatalogCache, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, admin: admin, cache: cache, log: log}
}

// List returns every product. Available to anonymous callers: catalog
// browsing must not require login.
func (s *CatalogService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.listCached(ctx, "", s.repo.ListAll)
}

// ListByCategory returns products in one category, also unauthenticated.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.listCached(ctx, category, func(ctx context.Context) ([]*domain.Product, error) {
		return s.repo.ListByCategory(ctx, category)
	})
}

// listCached is a cache-aside read. Cache failures are logged and tolerated;
// the catalog stays available as long as the repository answers.
func (s *CatalogService) listCached(ctx context.Context, category string, load func(context.Context) ([]*domain.Product, error)) ([]*domain.Product, error) {
	if cached, err := s.cache.Get(ctx, category); err != nil {
		s.log.Warn().Err(err).Str("category", category).Msg("catalog cache read failed")
	} else if cached != nil {
		metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()

	products, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if err := s.cache.Set(ctx, category, products); err != nil {
		s.log.Warn().Err(err).Str("category", category).Msg("catalog cache write failed")
	}
	return products, nil
}

// Create inserts a new product. Admin only.
func (s *CatalogService) Create(ctx context.Context, caller domain.Identity, input ports.ProductInput) (string, error) {
	if err := s.admin.RequireAdmin(ctx, caller); err != nil {
		return "", err
	}
	product, err := productFromInput(input)
	if err != nil {
		return "", err
	}

	id, err := s.repo.Insert(ctx, product)
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}
	s.invalidate(ctx)
	metrics.ProductWritesTotal.WithLabelValues("create").Inc()
	s.log.Info().Str("product_id", id).Str("name", input.Name).Msg("product created")
	return id, nil
}

// Update replaces a product's fields. Admin only.
func (s *CatalogService) Update(ctx context.Context, caller domain.Identity, productID string, input ports.ProductInput) error {
	if err := s.admin.RequireAdmin(ctx, caller); err != nil {
		return err
	}
	product, err := productFromInput(input)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, productID, product); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	s.invalidate(ctx)
	metrics.ProductWritesTotal.WithLabelValues("update").Inc()
	s.log.Info().Str("product_id", productID).Msg("product updated")
	return nil
}

// Delete removes a product. Admin only. Cart lines referencing it become
// dangling and are filtered from cart listings; order snapshots keep their
// copied data.
func (s *CatalogService) Delete(ctx context.Context, caller domain.Identity, productID string) error {
	if err := s.admin.RequireAdmin(ctx, caller); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.invalidate(ctx)
	metrics.ProductWritesTotal.WithLabelValues("delete").Inc()
	s.log.Info().Str("product_id", productID).Msg("product deleted")
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}

func productFromInput(input ports.ProductInput) (*domain.Product, error) {
	if input.Name == "" || input.Category == "" {
		return nil, fmt.Errorf("%w: name and category are required", domain.ErrInvalidArgument)
	}
	if !domain.ValidPrice(input.Price) {
		return nil, domain.ErrInvalidPrice
	}
	return &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		InStock:     input.InStock,
	}, nil
}
