package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/warungkita/storefront-api/internal/api/metrics"
	"github.com/warungkita/storefront-api/internal/core/domain"
	"github.com/warungkita/storefront-api/internal/core/ports"
)

// CartService implements the per-user cart. Every operation is scoped to
// the caller's own identity; there is no way to reach another user's cart.
type CartService struct {
	repo     ports.CartRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewCartService(repo ports.CartRepository, products ports.ProductRepository, log zerolog.Logger) *CartService {
	return &CartService{repo: repo, products: products, log: log}
}

// Items returns the caller's cart lines joined with their products.
// Anonymous callers see an empty cart. Lines whose product was deleted are
// hidden from the result but left in place.
func (s *CartService) Items(ctx context.Context, caller domain.Identity) ([]domain.CartEntry, error) {
	if caller.Anonymous() {
		return []domain.CartEntry{}, nil
	}

	items, err := s.repo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	if len(items) == 0 {
		return []domain.CartEntry{}, nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}

	entries := make([]domain.CartEntry, 0, len(items))
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue // dangling reference, product was deleted
		}
		entries = append(entries, domain.CartEntry{CartItem: *item, Product: *product})
	}
	return entries, nil
}

// Add merges qty into the caller's line for productID. Repeated adds
// accumulate: the line ends up with the sum of all added quantities, and at
// most one line ever exists per (user, product) pair.
func (s *CartService) Add(ctx context.Context, caller domain.Identity, productID string, qty int64) (string, error) {
	if caller.Anonymous() {
		return "", domain.ErrUnauthenticated
	}
	if qty < 1 {
		return "", domain.ErrInvalidQuantity
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return "", fmt.Errorf("add to cart: %w", err)
	}

	id, err := s.repo.AddOrIncrement(ctx, caller.UserID, productID, qty)
	if err != nil {
		return "", fmt.Errorf("add to cart: %w", err)
	}
	metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	return id, nil
}

// SetQuantity replaces the line's quantity. A quantity of zero or less
// deletes the line: decrementing to zero behaves as removal.
func (s *CartService) SetQuantity(ctx context.Context, caller domain.Identity, itemID string, qty int64) error {
	if caller.Anonymous() {
		return domain.ErrUnauthenticated
	}

	if qty <= 0 {
		if err := s.repo.Delete(ctx, caller.UserID, itemID); err != nil {
			return fmt.Errorf("remove cart item: %w", err)
		}
		metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
		return nil
	}

	if err := s.repo.UpdateQuantity(ctx, caller.UserID, itemID, qty); err != nil {
		return fmt.Errorf("set cart quantity: %w", err)
	}
	metrics.CartMutationsTotal.WithLabelValues("set_quantity").Inc()
	return nil
}

// Remove deletes the line unconditionally. Removing an absent line succeeds
// silently.
func (s *CartService) Remove(ctx context.Context, caller domain.Identity, itemID string) error {
	if caller.Anonymous() {
		return domain.ErrUnauthenticated
	}
	if err := s.repo.Delete(ctx, caller.UserID, itemID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	return nil
}

// Clear deletes every line owned by the caller.
func (s *CartService) Clear(ctx context.Context, caller domain.Identity) error {
	if caller.Anonymous() {
		return domain.ErrUnauthenticated
	}
	if err := s.repo.ClearUser(ctx, caller.UserID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	return nil
}
