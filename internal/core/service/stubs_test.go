package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

// stubRecord keeps the JSON encoding so tests see the same copy semantics as
// a real backend.
type stubRecord[T any] struct {
	mu     sync.Mutex
	raw    []byte
	setErr error
	writes int
}

func (r *stubRecord[T]) Get(context.Context) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var v T
	if r.raw == nil {
		return v, false
	}
	if err := json.Unmarshal(r.raw, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

func (r *stubRecord[T]) Set(_ context.Context, v T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setErr != nil {
		return r.setErr
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.raw = raw
	r.writes++
	return nil
}

func (r *stubRecord[T]) Remove(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raw = nil
	return nil
}

type cartCall struct {
	change ports.CartChange
	items  []domain.CartItem
	names  []string
}

type favoriteCall struct {
	change ports.CartChange
	items  []domain.FavoriteItem
}

type stubTracker struct {
	mu        sync.Mutex
	identity  string
	events    []string
	cart      []cartCall
	favorites []favoriteCall
	orders    []domain.Order
	searches  []string
	views     []string
	users     []domain.User
}

func (t *stubTracker) record(name string) {
	t.events = append(t.events, name)
}

func (t *stubTracker) SetIdentity(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.identity = userID
}

func (t *stubTracker) TrackPageView(string, map[string]any) {}

func (t *stubTracker) TrackProductView(p domain.Product) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("view_item")
	t.views = append(t.views, p.ID)
}

func (t *stubTracker) TrackCart(change ports.CartChange, items []domain.CartItem, catalog []domain.Product) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("cart")
	names := make([]string, 0, len(items))
	for _, it := range items {
		for _, p := range catalog {
			if p.ID == it.ProductID {
				names = append(names, p.Name)
			}
		}
	}
	t.cart = append(t.cart, cartCall{change: change, items: append([]domain.CartItem{}, items...), names: names})
}

func (t *stubTracker) TrackFavorite(change ports.CartChange, items []domain.FavoriteItem, _ []domain.Product) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("favorite")
	t.favorites = append(t.favorites, favoriteCall{change: change, items: append([]domain.FavoriteItem{}, items...)})
}

func (t *stubTracker) TrackPurchase(order domain.Order, _ []domain.Product) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("buy")
	t.orders = append(t.orders, order)
}

func (t *stubTracker) TrackSearch(query string, _ int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("search")
	t.searches = append(t.searches, query)
}

func (t *stubTracker) TrackIdentify(u domain.User)  { t.user("identify", u) }
func (t *stubTracker) TrackAttribute(u domain.User) { t.user("attribute", u) }
func (t *stubTracker) TrackLogin(u domain.User)     { t.user("login", u) }
func (t *stubTracker) TrackSignup(u domain.User)    { t.user("signup", u) }

func (t *stubTracker) user(name string, u domain.User) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record(name)
	t.users = append(t.users, u)
}

func (t *stubTracker) TrackViewCart(int, int)      {}
func (t *stubTracker) TrackBeginCheckout(int, int) {}

var errBackendDown = errors.New("backend down")
