package ports

import (
	"context"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

// CartRepository defines persistence operations for cart lines.
//
// Every mutation is scoped by userID so a caller can never touch another
// user's lines, mirroring the unique (user_id, product_id) index the
// storage layer maintains.
type CartRepository interface {
	// AddOrIncrement atomically merges qty into the (userID, productID)
	// line, creating it when absent. Concurrent calls for the same pair
	// must serialize to a sum of increments, never a lost update or a
	// duplicate line. Returns the line id.
	AddOrIncrement(ctx context.Context, userID, productID string, qty int64) (string, error)
	// UpdateQuantity replaces the quantity of the caller's line.
	// Returns domain.ErrCartItemNotFound when no such line exists.
	UpdateQuantity(ctx context.Context, userID, itemID string, qty int64) error
	// Delete removes the caller's line. Deleting an absent line is a no-op.
	Delete(ctx context.Context, userID, itemID string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.CartItem, error)
	// ClearUser removes every line owned by userID.
	ClearUser(ctx context.Context, userID string) error
}
