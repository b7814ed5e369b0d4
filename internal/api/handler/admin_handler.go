package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// AdminHandler manages the catalog.
type AdminHandler struct {
	catalog ports.CatalogService
}

func NewAdminHandler(catalog ports.CatalogService) *AdminHandler {
	return &AdminHandler{catalog: catalog}
}

// Create adds a product.
//
// @Summary      Create product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Router       /v1/admin/products [post]
func (h *AdminHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.catalog.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Update merges the given fields into a product.
//
// @Summary      Update product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product ID"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/products/{id} [patch]
func (h *AdminHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, found, err := h.catalog.Update(c.Request().Context(), c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrProductNotFound
	}
	return c.JSON(http.StatusOK, p)
}

// Delete removes a product.
//
// @Summary      Delete product
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Product ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/products/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	ok, err := h.catalog.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProductNotFound
	}
	return c.NoContent(http.StatusNoContent)
}

// Reset restores the bundled catalog.
//
// @Summary      Reset catalog
// @Tags         admin
// @Security     BearerAuth
// @Success      204
// @Router       /v1/admin/products/reset [post]
func (h *AdminHandler) Reset(c echo.Context) error {
	if err := h.catalog.ResetToDefault(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Export downloads the catalog as JSON or CSV.
//
// @Summary      Export catalog
// @Tags         admin
// @Produce      json
// @Produce      text/csv
// @Security     BearerAuth
// @Param        format  query  string  false  "json (default) or csv"
// @Success      200
// @Failure      400     {object}  map[string]string
// @Router       /v1/admin/products/export [get]
func (h *AdminHandler) Export(c echo.Context) error {
	ctx := c.Request().Context()
	switch format := c.QueryParam("format"); format {
	case "", "json":
		body, err := h.catalog.ExportJSON(ctx)
		if err != nil {
			return err
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.json"`)
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, body)
	case "csv":
		body, err := h.catalog.ExportCSV(ctx)
		if err != nil {
			return err
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
		return c.Blob(http.StatusOK, "text/csv; charset=UTF-8", body)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "format must be json or csv")
	}
}
