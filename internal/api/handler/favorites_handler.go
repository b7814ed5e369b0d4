package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tagdemo/storefront/internal/core/ports"
)

type FavoritesHandler struct {
	store   ports.StoreService
	catalog ports.CatalogService
}

func NewFavoritesHandler(store ports.StoreService, catalog ports.CatalogService) *FavoritesHandler {
	return &FavoritesHandler{store: store, catalog: catalog}
}

// List returns the favorited products that still exist.
//
// @Summary      List favorites
// @Tags         favorites
// @Produce      json
// @Success      200  {object}  favoritesResponse
// @Router       /v1/favorites [get]
func (h *FavoritesHandler) List(c echo.Context) error {
	products, err := h.store.FavoriteProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favoritesResponse{Products: products})
}

// Add marks a product as a favorite. Adding twice is a no-op.
//
// @Summary      Add favorite
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Param        body  body      addFavoriteRequest  true  "Product"
// @Success      201   {object}  favoriteStateResponse
// @Failure      404   {object}  map[string]string
// @Router       /v1/favorites [post]
func (h *FavoritesHandler) Add(c echo.Context) error {
	var req addFavoriteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	product, err := lookupProduct(ctx, h.catalog, req.ProductID)
	if err != nil {
		return err
	}
	if err := h.store.AddToFavorites(ctx, product); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, favoriteStateResponse{Favorites: h.store.State().Favorites})
}

// Remove un-favorites a product.
//
// @Summary      Remove favorite
// @Tags         favorites
// @Produce      json
// @Param        product_id  path      string  true  "Product ID"
// @Success      200         {object}  favoriteStateResponse
// @Router       /v1/favorites/{product_id} [delete]
func (h *FavoritesHandler) Remove(c echo.Context) error {
	if err := h.store.RemoveFromFavorites(c.Request().Context(), c.Param("product_id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favoriteStateResponse{Favorites: h.store.State().Favorites})
}
