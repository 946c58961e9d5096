package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/warungkita/storefront-api/internal/api/middleware"
	"github.com/warungkita/storefront-api/internal/core/domain"
	"github.com/warungkita/storefront-api/internal/core/ports"
)

// Stub services with pluggable functions, one per port. Handlers under test
// return service errors unchanged; the mapping to HTTP codes lives in the
// central error handler and is tested there.

type stubCartService struct {
	itemsFn       func(ctx context.Context, caller domain.Identity) ([]domain.CartEntry, error)
	addFn         func(ctx context.Context, caller domain.Identity, productID string, qty int64) (string, error)
	setQuantityFn func(ctx context.Context, caller domain.Identity, itemID string, qty int64) error
	removeFn      func(ctx context.Context, caller domain.Identity, itemID string) error
	clearFn       func(ctx context.Context, caller domain.Identity) error
}

func (s *stubCartService) Items(ctx context.Context, caller domain.Identity) ([]domain.CartEntry, error) {
	return s.itemsFn(ctx, caller)
}

func (s *stubCartService) Add(ctx context.Context, caller domain.Identity, productID string, qty int64) (string, error) {
	return s.addFn(ctx, caller, productID, qty)
}

func (s *stubCartService) SetQuantity(ctx context.Context, caller domain.Identity, itemID string, qty int64) error {
	return s.setQuantityFn(ctx, caller, itemID, qty)
}

func (s *stubCartService) Remove(ctx context.Context, caller domain.Identity, itemID string) error {
	return s.removeFn(ctx, caller, itemID)
}

func (s *stubCartService) Clear(ctx context.Context, caller domain.Identity) error {
	return s.clearFn(ctx, caller)
}

type stubOrderService struct {
	checkoutFn     func(ctx context.Context, caller domain.Identity, input ports.CheckoutInput) (*ports.CheckoutResult, error)
	listMineFn     func(ctx context.Context, caller domain.Identity) ([]*domain.Order, error)
	listAllFn      func(ctx context.Context, caller domain.Identity) ([]*domain.Order, error)
	updateStatusFn func(ctx context.Context, caller domain.Identity, orderID, status string) error
}

func (s *stubOrderService) Checkout(ctx context.Context, caller domain.Identity, input ports.CheckoutInput) (*ports.CheckoutResult, error) {
	return s.checkoutFn(ctx, caller, input)
}

func (s *stubOrderService) ListMine(ctx context.Context, caller domain.Identity) ([]*domain.Order, error) {
	return s.listMineFn(ctx, caller)
}

func (s *stubOrderService) ListAll(ctx context.Context, caller domain.Identity) ([]*domain.Order, error) {
	return s.listAllFn(ctx, caller)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, caller domain.Identity, orderID, status string) error {
	return s.updateStatusFn(ctx, caller, orderID, status)
}

type stubAdminService struct {
	isAdminFn      func(ctx context.Context, caller domain.Identity) (bool, error)
	bootstrapFn    func(ctx context.Context, caller domain.Identity, email string) (string, error)
	requireAdminFn func(ctx context.Context, caller domain.Identity) error
}

func (s *stubAdminService) IsAdmin(ctx context.Context, caller domain.Identity) (bool, error) {
	return s.isAdminFn(ctx, caller)
}

func (s *stubAdminService) Bootstrap(ctx context.Context, caller domain.Identity, email string) (string, error) {
	return s.bootstrapFn(ctx, caller, email)
}

func (s *stubAdminService) RequireAdmin(ctx context.Context, caller domain.Identity) error {
	return s.requireAdminFn(ctx, caller)
}

type stubAuthService struct {
	registerFn func(ctx context.Context, username, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

// newTestContext builds an echo context with the request validator installed
// and the given caller identity resolved, the way the auth middleware would.
func newTestContext(t *testing.T, method, target, body string, caller domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if !caller.Anonymous() {
		middleware.SetIdentity(c, caller)
	}
	return c, rec
}

var testCaller = domain.Identity{UserID: "u1", Username: "budi"}
