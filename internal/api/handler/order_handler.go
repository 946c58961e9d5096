package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warungkita/storefront-api/internal/api/middleware"
	"github.com/warungkita/storefront-api/internal/core/ports"
)

// OrderHandler handles checkout and order lifecycle requests.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type checkoutLineRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int64   `json:"quantity" validate:"required,gt=0"`
}

type checkoutRequest struct {
	Username       string                `json:"username" validate:"required"`
	WhatsappNumber string                `json:"whatsapp_number" validate:"required"`
	Products       []checkoutLineRequest `json:"products" validate:"required,min=1,dive"`
	TotalAmount    float64               `json:"total_amount" validate:"gte=0"`
}

type checkoutResponse struct {
	OrderID     string `json:"order_id"`
	CartCleared bool   `json:"cart_cleared"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending done cancelled"`
}

// Checkout handles POST /v1/orders: converts the submitted line snapshots
// into a pending order and clears the caller's cart.
//
// @Summary      Check out the cart into an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkoutRequest  true  "Order snapshot"
// @Success      201   {object}  checkoutResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/orders [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lines := make([]ports.CheckoutLine, len(req.Products))
	for i, p := range req.Products {
		lines[i] = ports.CheckoutLine{
			ProductID: p.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  p.Quantity,
		}
	}

	result, err := h.service.Checkout(c.Request().Context(), middleware.Identity(c), ports.CheckoutInput{
		Username:       req.Username,
		WhatsappNumber: req.WhatsappNumber,
		Lines:          lines,
		TotalAmount:    req.TotalAmount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, checkoutResponse{
		OrderID:     result.OrderID,
		CartCleared: result.CartCleared,
	})
}

// ListMine handles GET /v1/orders — the caller's orders, newest first.
//
// @Summary      List the caller's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  map[string]string
// @Router       /v1/orders [get]
func (h *OrderHandler) ListMine(c echo.Context) error {
	orders, err := h.service.ListMine(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// ListAll handles GET /v1/admin/orders — every order, newest first (admin).
//
// @Summary      List all orders
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.service.ListAll(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus handles PATCH /v1/admin/orders/:id/status (admin).
//
// @Summary      Transition an order's status
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string               true  "Order id"
// @Param        body  body  updateStatusRequest  true  "Target status"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateStatus(c.Request().Context(), middleware.Identity(c), c.Param("id"), req.Status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
