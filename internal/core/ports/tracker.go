package ports

import (
	"context"

	"github.com/tagdemo/storefront/internal/core/domain"
)

// CartChange names the product that triggered a cart or favorite event.
// Both ids are empty for a quantity update.
type CartChange struct {
	AddedID   string
	DeletedID string
}

// Tracker shapes analytics events and hands them to the data layer.
// Implementations never fail; emission is best-effort.
type Tracker interface {
	// SetIdentity scopes subsequent events to userID for routing; "" is anonymous.
	SetIdentity(userID string)

	TrackPageView(page string, params map[string]any)
	TrackProductView(p domain.Product)
	TrackCart(change CartChange, items []domain.CartItem, catalog []domain.Product)
	TrackFavorite(change CartChange, items []domain.FavoriteItem, catalog []domain.Product)
	TrackPurchase(order domain.Order, catalog []domain.Product)
	TrackSearch(query string, resultCount int)
	TrackIdentify(u domain.User)
	TrackAttribute(u domain.User)
	TrackLogin(u domain.User)
	TrackSignup(u domain.User)
	TrackViewCart(itemCount, total int)
	TrackBeginCheckout(itemCount, total int)
}

// Collector receives data layer events forwarded out of process.
type Collector interface {
	Name() string
	Collect(ctx context.Context, event domain.TagEvent) error
	Close() error
}

// SubmitGuard suppresses repeated submissions of the same action within a
// fixed window. Acquire reports false while the window is still open.
type SubmitGuard interface {
	Acquire(ctx context.Context, key string) (bool, error)
}

// EventQueue is the read side of the data layer.
type EventQueue interface {
	Snapshot() []domain.TagEvent
	Drain() []domain.TagEvent
}
