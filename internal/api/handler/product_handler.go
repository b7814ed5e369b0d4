package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// ProductHandler serves the shopper-facing catalog.
type ProductHandler struct {
	store ports.StoreService
}

func NewProductHandler(store ports.StoreService) *ProductHandler {
	return &ProductHandler{store: store}
}

// List returns the catalog, optionally filtered by category or search query.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "electronics or accessories"
// @Param        q         query     string  false  "Search keyword"
// @Success      200       {object}  productListResponse
// @Failure      400       {object}  map[string]string
// @Router       /v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		products []domain.Product
		err      error
	)
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		products, err = h.store.Search(ctx, q)
	} else {
		category := domain.Category(c.QueryParam("category"))
		if category != "" && !category.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "category must be one of: electronics accessories")
		}
		products, err = h.store.Browse(ctx, category)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{Products: products, Count: len(products)})
}

// Get returns one product for its detail page.
//
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /v1/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	p, ok, err := h.store.ViewProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProductNotFound
	}
	return c.JSON(http.StatusOK, p)
}

// PageView records a page visit.
//
// @Summary      Record page view
// @Tags         products
// @Accept       json
// @Param        body  body  pageViewRequest  true  "Page and parameters"
// @Success      202
// @Failure      400   {object}  map[string]string
// @Router       /v1/pageviews [post]
func (h *ProductHandler) PageView(c echo.Context) error {
	var req pageViewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	h.store.PageView(req.Page, req.Params)
	return c.NoContent(http.StatusAccepted)
}
