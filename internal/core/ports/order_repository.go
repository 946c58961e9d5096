package ports

import (
	"context"

	"github.com/warungkita/storefront-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Insert(ctx context.Context, o *domain.Order) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	// ListAll returns every order across all users, newest first.
	ListAll(ctx context.Context) ([]*domain.Order, error)
	// UpdateStatus sets the order's status to next only while its current
	// status is still from (a conditional write, so a concurrent transition
	// cannot be overwritten). When nothing matched it returns
	// domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, from, next domain.OrderStatus) error
}
