package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
	"github.com/tagdemo/storefront/internal/pkg/metrics"
)

// AddToCart adds quantity units of product, accumulating onto an existing line.
func (s *Store) AddToCart(ctx context.Context, product domain.Product, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	cart := s.cartItems()
	if i := domain.IndexOfCartItem(cart, product.ID); i >= 0 {
		cart[i].Quantity += quantity
	} else {
		cart = append(cart, domain.CartItem{ProductID: product.ID, Quantity: quantity, AddedAt: s.now().UTC()})
	}
	if err := s.saveCart(ctx, cart); err != nil {
		return err
	}

	metrics.StoreActionsTotal.WithLabelValues("cart_add").Inc()
	s.logger.Debug().Str("product_id", product.ID).Int("quantity", quantity).Msg("added to cart")
	s.emitCart(ctx, ports.CartChange{AddedID: product.ID}, cart)
	return nil
}

// RemoveFromCart drops the line for productID. Unknown ids are a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	return s.removeFromCart(ctx, productID)
}

func (s *Store) removeFromCart(ctx context.Context, productID string) error {
	cart := s.cartItems()
	i := domain.IndexOfCartItem(cart, productID)
	if i < 0 {
		return nil
	}
	cart = append(cart[:i], cart[i+1:]...)
	if err := s.saveCart(ctx, cart); err != nil {
		return err
	}

	metrics.StoreActionsTotal.WithLabelValues("cart_remove").Inc()
	s.emitCart(ctx, ports.CartChange{DeletedID: productID}, cart)
	return nil
}

// UpdateQuantity sets the quantity of a line. Zero or less removes it.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	if quantity <= 0 {
		return s.removeFromCart(ctx, productID)
	}

	cart := s.cartItems()
	i := domain.IndexOfCartItem(cart, productID)
	if i < 0 {
		return nil
	}
	cart[i].Quantity = quantity
	if err := s.saveCart(ctx, cart); err != nil {
		return err
	}

	metrics.StoreActionsTotal.WithLabelValues("cart_update").Inc()
	s.emitCart(ctx, ports.CartChange{}, cart)
	return nil
}

// ClearCart empties the cart without emitting an event.
func (s *Store) ClearCart(ctx context.Context) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	if err := s.saveCart(ctx, []domain.CartItem{}); err != nil {
		return err
	}
	metrics.StoreActionsTotal.WithLabelValues("cart_clear").Inc()
	return nil
}

// CartTotal prices the cart at current catalog prices.
func (s *Store) CartTotal(ctx context.Context) (int, error) {
	lines, err := s.lines(ctx, s.cartItems())
	if err != nil {
		return 0, err
	}
	return total(lines), nil
}

// CartLines joins the cart with the catalog. Lines whose product no longer
// exists are skipped.
func (s *Store) CartLines(ctx context.Context) ([]domain.CartLine, error) {
	lines, err := s.lines(ctx, s.cartItems())
	if err != nil {
		return nil, err
	}
	s.tracker.TrackViewCart(len(lines), total(lines))
	return lines, nil
}

// Checkout places an order for the current cart and empties it.
func (s *Store) Checkout(ctx context.Context) (domain.Order, error) {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	cart := s.cartItems()
	if len(cart) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}
	products, err := s.catalog.List(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("load catalog: %w", err)
	}
	lines := join(cart, products)
	if len(lines) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	order := domain.Order{Lines: lines, TotalPrice: total(lines)}
	for _, l := range lines {
		order.TotalQuantity += l.Quantity
	}
	s.tracker.TrackBeginCheckout(len(lines), order.TotalPrice)

	if err := sleep(ctx, s.checkoutDelay); err != nil {
		return domain.Order{}, err
	}
	order.PlacedAt = s.now().UTC()
	order.ID = "order_" + strconv.FormatInt(order.PlacedAt.UnixMilli(), 10)

	if err := s.saveCart(ctx, []domain.CartItem{}); err != nil {
		return domain.Order{}, err
	}

	metrics.StoreActionsTotal.WithLabelValues("checkout").Inc()
	metrics.CheckoutRevenueYen.Add(float64(order.TotalPrice))
	s.logger.Info().Str("order_id", order.ID).Int("total", order.TotalPrice).Msg("order placed")
	s.tracker.TrackPurchase(order, products)
	return order, nil
}

func (s *Store) saveCart(ctx context.Context, cart []domain.CartItem) error {
	if err := s.cart.Set(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	s.update(func(st *ports.StoreState) { st.Cart = cart })
	return nil
}

func (s *Store) emitCart(ctx context.Context, change ports.CartChange, cart []domain.CartItem) {
	products, ok := s.catalogForEvent(ctx, "cart")
	if !ok {
		return
	}
	s.tracker.TrackCart(change, cart, products)
}

func (s *Store) lines(ctx context.Context, cart []domain.CartItem) ([]domain.CartLine, error) {
	if len(cart) == 0 {
		return []domain.CartLine{}, nil
	}
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return join(cart, products), nil
}

func join(cart []domain.CartItem, products []domain.Product) []domain.CartLine {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	lines := make([]domain.CartLine, 0, len(cart))
	for _, it := range cart {
		if p, ok := byID[it.ProductID]; ok {
			lines = append(lines, domain.CartLine{CartItem: it, Product: p})
		}
	}
	return lines
}

func total(lines []domain.CartLine) int {
	sum := 0
	for _, l := range lines {
		sum += l.Subtotal()
	}
	return sum
}
