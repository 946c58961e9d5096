package ports

import (
	"context"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

// CheckoutLine is one caller-supplied product snapshot in a checkout request.
type CheckoutLine struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int64
}

// CheckoutInput carries everything needed to turn a cart into an order.
// Prices and the total are taken as given; the engine does not recompute
// them from the catalog.
type CheckoutInput struct {
	Username       string
	WhatsappNumber string
	Lines          []CheckoutLine
	TotalAmount    float64
}

// CheckoutResult reports the outcome of a checkout. The order is durable as
// soon as OrderID is set; CartCleared is false when the follow-up cart wipe
// failed and the collaborator should retry the cleanup.
type CheckoutResult struct {
	OrderID     string
	CartCleared bool
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	Checkout(ctx context.Context, caller domain.Identity, input CheckoutInput) (*CheckoutResult, error)
	// ListMine returns the caller's orders, newest first; empty for anonymous.
	ListMine(ctx context.Context, caller domain.Identity) ([]*domain.Order, error)
	// ListAll is admin-only and returns every order, newest first.
	ListAll(ctx context.Context, caller domain.Identity) ([]*domain.Order, error)
	// UpdateStatus is admin-only and rejects transitions out of a terminal state.
	UpdateStatus(ctx context.Context, caller domain.Identity, orderID, status string) error
}
