package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warungkita/storefront-api/internal/api/middleware"
	"github.com/warungkita/storefront-api/internal/core/ports"
)

// CatalogHandler handles HTTP requests for the product catalog.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type productRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category" validate:"required"`
	InStock     bool    `json:"in_stock"`
}

type idResponse struct {
	ID string `json:"id"`
}

func (r productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		InStock:     r.InStock,
	}
}

// List handles GET /v1/products. Anonymous callers are welcome; an optional
// category query parameter narrows the listing.
//
// @Summary      List catalog products
// @Tags         catalog
// @Produce      json
// @Param        category  query     string  false  "Filter by category"
// @Success      200       {array}   domain.Product
// @Failure      500       {object}  map[string]string
// @Router       /v1/products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if category := c.QueryParam("category"); category != "" {
		products, err := h.service.ListByCategory(ctx, category)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, products)
	}

	products, err := h.service.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Create handles POST /v1/products (admin only).
//
// @Summary      Create a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product fields"
// @Success      201   {object}  idResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/products [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), middleware.Identity(c), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, idResponse{ID: id})
}

// Update handles PUT /v1/products/:id (admin only).
//
// @Summary      Update a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product fields"
// @Success      200   {object}  idResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/products/{id} [put]
func (h *CatalogHandler) Update(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := c.Param("id")
	if err := h.service.Update(c.Request().Context(), middleware.Identity(c), id, req.toInput()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, idResponse{ID: id})
}

// Delete handles DELETE /v1/products/:id (admin only).
//
// @Summary      Delete a product
// @Tags         catalog
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/products/{id} [delete]
func (h *CatalogHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), middleware.Identity(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
