package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warungkita/storefront-api/internal/api/middleware"
	"github.com/warungkita/storefront-api/internal/core/ports"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

type setQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

type setQuantityResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Get handles GET /v1/cart. Anonymous callers receive an empty cart.
//
// @Summary      Get the caller's cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.CartEntry
// @Failure      500  {object}  map[string]string
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	entries, err := h.service.Items(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Add handles POST /v1/cart/items. Adding a product already in the cart
// increments its quantity.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addToCartRequest  true  "Product and quantity"
// @Success      201   {object}  idResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/cart/items [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Add(c.Request().Context(), middleware.Identity(c), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, idResponse{ID: id})
}

// SetQuantity handles PUT /v1/cart/items/:id. A quantity of zero or less
// removes the line.
//
// @Summary      Set a cart line's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Cart line id"
// @Param        body  body      setQuantityRequest  true  "New quantity (<=0 deletes)"
// @Success      200   {object}  setQuantityResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/cart/items/{id} [put]
func (h *CartHandler) SetQuantity(c echo.Context) error {
	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	id := c.Param("id")
	if err := h.service.SetQuantity(c.Request().Context(), middleware.Identity(c), id, req.Quantity); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setQuantityResponse{ID: id, Deleted: req.Quantity <= 0})
}

// Remove handles DELETE /v1/cart/items/:id. Removing an absent line
// succeeds silently.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Security     BearerAuth
// @Param        id  path  string  true  "Cart line id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /v1/cart/items/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), middleware.Identity(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Clear handles DELETE /v1/cart.
//
// @Summary      Empty the caller's cart
// @Tags         cart
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.service.Clear(c.Request().Context(), middleware.Identity(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
