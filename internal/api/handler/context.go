package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// bindAndValidate decodes the request body into req and runs the registered
// validator. Both failures surface as 400.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// lookupProduct resolves a product id without emitting a view event.
func lookupProduct(ctx context.Context, catalog ports.CatalogService, id string) (domain.Product, error) {
	p, ok, err := catalog.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}
