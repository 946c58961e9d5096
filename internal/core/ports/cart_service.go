package ports

import (
	"context"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

// CartService defines use-case operations for the caller's own cart.
// Anonymous callers see an empty cart and cannot mutate it.
type CartService interface {
	// Items returns the caller's lines joined with their live products.
	// Lines whose product no longer exists are filtered out, not deleted.
	Items(ctx context.Context, caller domain.Identity) ([]domain.CartEntry, error)
	// Add merges qty into the caller's line for productID (accumulating,
	// never overwriting) and returns the line id.
	Add(ctx context.Context, caller domain.Identity, productID string, qty int64) (string, error)
	// SetQuantity replaces the line's quantity; qty <= 0 deletes the line.
	SetQuantity(ctx context.Context, caller domain.Identity, itemID string, qty int64) error
	// Remove deletes the line unconditionally; absent lines succeed silently.
	Remove(ctx context.Context, caller domain.Identity, itemID string) error
	// Clear empties the caller's cart.
	Clear(ctx context.Context, caller domain.Identity) error
}
