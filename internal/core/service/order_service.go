package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/warungkita/storefront-api/internal/api/metrics"
	"github.com/warungkita/storefront-api/internal/core/domain"
	"github.com/warungkita/storefront-api/internal/core/ports"
)

// OrderService implements checkout and the order lifecycle.
type OrderService struct {
	repo  ports.OrderRepository
	cart  ports.CartRepository
	admin ports.AdminService
	log   zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, cart ports.CartRepository, admin ports.AdminService, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, cart: cart, admin: admin, log: log}
}

// Checkout turns the caller-supplied line snapshots into a pending order,
// then clears the caller's cart.
//
// The order insert is the durable step: once it succeeds, a cart-clear
// failure never rolls it back. The result reports CartCleared=false in that
// case so the collaborator can retry the cleanup. Prices and the total are
// recorded as given, not recomputed from the catalog.
func (s *OrderService) Checkout(ctx context.Context, caller domain.Identity, input ports.CheckoutInput) (*ports.CheckoutResult, error) {
	if caller.Anonymous() {
		return nil, domain.ErrUnauthenticated
	}
	if input.Username == "" || input.WhatsappNumber == "" {
		return nil, fmt.Errorf("%w: username and contact number are required", domain.ErrInvalidArgument)
	}
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("%w: checkout requires at least one line", domain.ErrInvalidArgument)
	}
	for _, line := range input.Lines {
		if line.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
		if !domain.ValidPrice(line.Price) {
			return nil, domain.ErrInvalidPrice
		}
	}
	if !domain.ValidPrice(input.TotalAmount) {
		return nil, fmt.Errorf("%w: total amount must be non-negative", domain.ErrInvalidArgument)
	}

	lines := make([]domain.OrderLine, len(input.Lines))
	for i, line := range input.Lines {
		lines[i] = domain.OrderLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		}
	}

	order := &domain.Order{
		UserID:         caller.UserID,
		Username:       input.Username,
		WhatsappNumber: input.WhatsappNumber,
		Products:       lines,
		TotalAmount:    input.TotalAmount,
		Status:         domain.OrderPending,
		CreatedAt:      time.Now().UTC(),
	}

	orderID, err := s.repo.Insert(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	metrics.OrdersCreatedTotal.Inc()

	result := &ports.CheckoutResult{OrderID: orderID, CartCleared: true}
	if err := s.cart.ClearUser(ctx, caller.UserID); err != nil {
		// The order stands; only the cleanup failed.
		result.CartCleared = false
		s.log.Error().Err(err).Str("order_id", orderID).Str("user_id", caller.UserID).
			Msg("cart clear failed after checkout")
	}

	s.log.Info().Str("order_id", orderID).Str("user_id", caller.UserID).
		Int("lines", len(lines)).Float64("total", input.TotalAmount).Msg("order created")
	return result, nil
}

// ListMine returns the caller's orders, newest first. Anonymous callers get
// an empty list rather than an error, matching the cart's read behavior.
func (s *OrderService) ListMine(ctx context.Context, caller domain.Identity) ([]*domain.Order, error) {
	if caller.Anonymous() {
		return []*domain.Order{}, nil
	}
	orders, err := s.repo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListAll returns every order across all users, newest first. Admin only.
func (s *OrderService) ListAll(ctx context.Context, caller domain.Identity) ([]*domain.Order, error) {
	if err := s.admin.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus applies an admin status transition. Orders in a terminal
// state (done, cancelled) cannot be resurrected.
func (s *OrderService) UpdateStatus(ctx context.Context, caller domain.Identity, orderID, status string) error {
	if err := s.admin.RequireAdmin(ctx, caller); err != nil {
		return err
	}

	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return err
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if !order.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, next)
	}

	// Conditional on the status we just read, so a concurrent admin cannot
	// sneak a second transition underneath us.
	if err := s.repo.UpdateStatus(ctx, orderID, order.Status, next); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	metrics.OrderStatusTotal.WithLabelValues(string(next)).Inc()
	s.log.Info().Str("order_id", orderID).Str("from", string(order.Status)).Str("to", string(next)).
		Msg("order status updated")
	return nil
}
