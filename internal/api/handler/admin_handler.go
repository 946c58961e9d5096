package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warungkita/storefront-api/internal/api/middleware"
	"github.com/warungkita/storefront-api/internal/core/ports"
)

// AdminHandler handles the admin registry endpoints.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type isAdminResponse struct {
	IsAdmin bool `json:"is_admin"`
}

type bootstrapRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type bootstrapResponse struct {
	GrantID string `json:"grant_id"`
}

// Me handles GET /v1/admin/me. Always answers, false for anonymous callers.
//
// @Summary      Report whether the caller is an admin
// @Tags         admin
// @Produce      json
// @Success      200  {object}  isAdminResponse
// @Router       /v1/admin/me [get]
func (h *AdminHandler) Me(c echo.Context) error {
	isAdmin, err := h.service.IsAdmin(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, isAdminResponse{IsAdmin: isAdmin})
}

// Bootstrap handles POST /v1/admin/bootstrap. The first caller on an empty
// registry becomes the first admin; a repeat call by the same user returns
// the same grant; anyone else is rejected.
//
// @Summary      Claim or re-fetch the first admin grant
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bootstrapRequest  true  "Contact email"
// @Success      200   {object}  bootstrapResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/admin/bootstrap [post]
func (h *AdminHandler) Bootstrap(c echo.Context) error {
	var req bootstrapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	grantID, err := h.service.Bootstrap(c.Request().Context(), middleware.Identity(c), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bootstrapResponse{GrantID: grantID})
}
