package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// CartHandler handles the cart and checkout.
type CartHandler struct {
	store   ports.StoreService
	catalog ports.CatalogService
	guard   ports.SubmitGuard
}

func NewCartHandler(store ports.StoreService, catalog ports.CatalogService, guard ports.SubmitGuard) *CartHandler {
	return &CartHandler{store: store, catalog: catalog, guard: guard}
}

// Get returns the cart joined with current product details.
//
// @Summary      View cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	lines, err := h.store.CartLines(c.Request().Context())
	if err != nil {
		return err
	}
	resp := cartResponse{Items: lines}
	for _, l := range lines {
		resp.TotalQuantity += l.Quantity
		resp.TotalPrice += l.Subtotal()
	}
	return c.JSON(http.StatusOK, resp)
}

// Total returns the cart total at current prices.
//
// @Summary      Cart total
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartTotalResponse
// @Router       /v1/cart/total [get]
func (h *CartHandler) Total(c echo.Context) error {
	total, err := h.store.CartTotal(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartTotalResponse{Total: total})
}

// AddItem adds a product to the cart. Repeated adds of the same product
// inside the debounce window are rejected with 429.
//
// @Summary      Add to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addCartItemRequest  true  "Product and quantity"
// @Success      201   {object}  cartStateResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	product, err := lookupProduct(ctx, h.catalog, req.ProductID)
	if err != nil {
		return err
	}
	if h.guard != nil {
		ok, err := h.guard.Acquire(ctx, "add_to_cart:"+product.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrDuplicateSubmit
		}
	}

	if err := h.store.AddToCart(ctx, product, req.Quantity); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cartStateResponse{Cart: h.store.State().Cart})
}

// UpdateItem sets the quantity of a line; zero or less removes it.
//
// @Summary      Update cart quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        product_id  path      string                 true  "Product ID"
// @Param        body        body      updateCartItemRequest  true  "New quantity"
// @Success      200         {object}  cartStateResponse
// @Failure      400         {object}  map[string]string
// @Router       /v1/cart/items/{product_id} [put]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.store.UpdateQuantity(c.Request().Context(), c.Param("product_id"), *req.Quantity); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartStateResponse{Cart: h.store.State().Cart})
}

// RemoveItem drops a line from the cart.
//
// @Summary      Remove from cart
// @Tags         cart
// @Produce      json
// @Param        product_id  path      string  true  "Product ID"
// @Success      200         {object}  cartStateResponse
// @Router       /v1/cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	if err := h.store.RemoveFromCart(c.Request().Context(), c.Param("product_id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartStateResponse{Cart: h.store.State().Cart})
}

// Clear empties the cart.
//
// @Summary      Clear cart
// @Tags         cart
// @Success      204
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.store.ClearCart(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Checkout places an order for the whole cart.
//
// @Summary      Checkout
// @Tags         cart
// @Produce      json
// @Success      201  {object}  orderResponse
// @Failure      422  {object}  map[string]string
// @Router       /v1/checkout [post]
func (h *CartHandler) Checkout(c echo.Context) error {
	order, err := h.store.Checkout(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, orderResponse{
		OrderID:       order.ID,
		Items:         order.Lines,
		TotalQuantity: order.TotalQuantity,
		TotalPrice:    order.TotalPrice,
		PlacedAt:      order.PlacedAt,
	})
}
