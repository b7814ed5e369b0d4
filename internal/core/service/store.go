package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// StoreDeps are the collaborators of a Store.
type StoreDeps struct {
	Catalog   ports.CatalogService
	Auth      ports.AuthService
	Cart      ports.Record[[]domain.CartItem]
	Favorites ports.Record[[]domain.FavoriteItem]
	Tracker   ports.Tracker
	Logger    zerolog.Logger
	// CheckoutDelay simulates order processing.
	CheckoutDelay time.Duration
}

// Store is the shopper state container. Every state-changing action persists
// first, then updates memory, then emits a full snapshot to the tracker.
type Store struct {
	catalog       ports.CatalogService
	auth          ports.AuthService
	cart          ports.Record[[]domain.CartItem]
	favorites     ports.Record[[]domain.FavoriteItem]
	tracker       ports.Tracker
	logger        zerolog.Logger
	checkoutDelay time.Duration
	now           func() time.Time

	// actionMu serializes actions; stateMu guards state so State() can
	// observe flags while an action is in flight.
	actionMu sync.Mutex
	stateMu  sync.RWMutex
	state    ports.StoreState
}

var _ ports.StoreService = (*Store)(nil)

// NewStore restores cart, favorites and session from persistence.
func NewStore(ctx context.Context, deps StoreDeps) *Store {
	s := &Store{
		catalog:       deps.Catalog,
		auth:          deps.Auth,
		cart:          deps.Cart,
		favorites:     deps.Favorites,
		tracker:       deps.Tracker,
		logger:        deps.Logger.With().Str("component", "store").Logger(),
		checkoutDelay: deps.CheckoutDelay,
		now:           time.Now,
	}

	cart, _ := s.cart.Get(ctx)
	favorites, _ := s.favorites.Get(ctx)
	s.state.Cart = cart
	s.state.Favorites = favorites
	s.CheckAuth(ctx)
	return s
}

// State returns a deep copy of the current state.
func (s *Store) State() ports.StoreState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	out := ports.StoreState{
		Cart:      append([]domain.CartItem{}, s.state.Cart...),
		Favorites: append([]domain.FavoriteItem{}, s.state.Favorites...),
		IsLoading: s.state.IsLoading,
		Error:     s.state.Error,
	}
	if s.state.User != nil {
		u := s.state.User.Clone()
		out.User = &u
	}
	return out
}

func (s *Store) update(fn func(st *ports.StoreState)) {
	s.stateMu.Lock()
	fn(&s.state)
	s.stateMu.Unlock()
}

func (s *Store) cartItems() []domain.CartItem {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return append([]domain.CartItem{}, s.state.Cart...)
}

func (s *Store) favoriteItems() []domain.FavoriteItem {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return append([]domain.FavoriteItem{}, s.state.Favorites...)
}

// catalogForEvent re-fetches the catalog for denormalizing an event. A failed
// fetch skips the event; emission is best-effort.
func (s *Store) catalogForEvent(ctx context.Context, event string) ([]domain.Product, bool) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("event", event).Msg("catalog unavailable, event skipped")
		return nil, false
	}
	return products, true
}
