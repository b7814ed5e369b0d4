// Package analytics shapes storefront events for the external tag and pushes
// them onto the data layer. Emission is best-effort and never returns errors.
package analytics

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// Tracker implements ports.Tracker on top of a DataLayer.
type Tracker struct {
	layer   *DataLayer
	baseURL string
	log     zerolog.Logger
	now     func() time.Time

	mu     sync.RWMutex
	userID string
}

var _ ports.Tracker = (*Tracker)(nil)

// NewTracker builds item URLs from baseURL, e.g. "https://shop.example".
func NewTracker(layer *DataLayer, baseURL string, log zerolog.Logger) *Tracker {
	return &Tracker{
		layer:   layer,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log.With().Str("component", "analytics").Logger(),
		now:     time.Now,
	}
}

func (t *Tracker) SetIdentity(userID string) {
	t.mu.Lock()
	t.userID = userID
	t.mu.Unlock()
}

func (t *Tracker) identity() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.userID
}

func (t *Tracker) push(name string, payload any) {
	e := domain.TagEvent{
		Name:      name,
		UserID:    t.identity(),
		Payload:   payload,
		Timestamp: t.now().UTC(),
	}
	t.layer.Push(e)
	t.log.Debug().Str("event", name).Msg("[Analytics] event pushed")
}

func (t *Tracker) itemURL(id string) string {
	if id == "" {
		return ""
	}
	return t.baseURL + "/products/" + id
}

// TrackPageView only logs; page views are counted by the tag itself.
func (t *Tracker) TrackPageView(page string, params map[string]any) {
	t.log.Debug().Str("page", page).Fields(params).Msg("[Analytics] page view")
}

func (t *Tracker) TrackProductView(p domain.Product) {
	t.push(EventViewItem, ViewItemPayload{
		ItemID:        p.ID,
		Name:          p.Name,
		Price:         p.Price,
		ItemURL:       t.itemURL(p.ID),
		ItemImageURL:  p.ImageURL,
		LCategoryName: string(p.Category),
	})
}

// TrackCart sends the whole cart joined against catalog. Items whose product
// is gone keep their id and quantity with an empty name and zero price.
func (t *Tracker) TrackCart(change ports.CartChange, items []domain.CartItem, catalog []domain.Product) {
	byID := index(catalog)
	p := CartPayload{
		Status:         len(items) > 0,
		Items:          make([]ItemPayload, 0, len(items)),
		AddedItemID:    optional(change.AddedID),
		DeletedItemID:  optional(change.DeletedID),
		ItemIDs:        make([]string, 0, len(items)),
		ItemNames:      make([]string, 0, len(items)),
		ItemPrices:     make([]int, 0, len(items)),
		ItemQuantities: make([]int, 0, len(items)),
		ItemURLs:       make([]string, 0, len(items)),
		ItemImageURLs:  make([]string, 0, len(items)),
	}
	for _, it := range items {
		line := t.item(it.ProductID, it.Quantity, byID)
		p.Price += line.Price * line.Quantity
		p.Quantity += line.Quantity
		p.Items = append(p.Items, line)
		p.ItemIDs = append(p.ItemIDs, line.ItemID)
		p.ItemNames = append(p.ItemNames, line.Name)
		p.ItemPrices = append(p.ItemPrices, line.Price)
		p.ItemQuantities = append(p.ItemQuantities, line.Quantity)
		p.ItemURLs = append(p.ItemURLs, line.ItemURL)
		p.ItemImageURLs = append(p.ItemImageURLs, line.ItemImageURL)
	}
	t.push(EventCart, p)
}

func (t *Tracker) TrackFavorite(change ports.CartChange, items []domain.FavoriteItem, catalog []domain.Product) {
	byID := index(catalog)
	p := FavoritePayload{
		Status:        len(items) > 0,
		Items:         make([]FavoriteItemPayload, 0, len(items)),
		AddedItemID:   optional(change.AddedID),
		DeletedItemID: optional(change.DeletedID),
		ItemIDs:       make([]string, 0, len(items)),
		ItemNames:     make([]string, 0, len(items)),
		ItemPrices:    make([]int, 0, len(items)),
		ItemURLs:      make([]string, 0, len(items)),
		ItemImageURLs: make([]string, 0, len(items)),
	}
	for _, it := range items {
		line := t.item(it.ProductID, 0, byID)
		p.Items = append(p.Items, FavoriteItemPayload{
			ItemID:       line.ItemID,
			Name:         line.Name,
			Price:        line.Price,
			ItemURL:      line.ItemURL,
			ItemImageURL: line.ItemImageURL,
			CategoryName: line.CategoryName,
		})
		p.ItemIDs = append(p.ItemIDs, line.ItemID)
		p.ItemNames = append(p.ItemNames, line.Name)
		p.ItemPrices = append(p.ItemPrices, line.Price)
		p.ItemURLs = append(p.ItemURLs, line.ItemURL)
		p.ItemImageURLs = append(p.ItemImageURLs, line.ItemImageURL)
	}
	t.push(EventFavorite, p)
}

func (t *Tracker) TrackPurchase(order domain.Order, catalog []domain.Product) {
	byID := index(catalog)
	p := BuyPayload{
		OrderID:  order.ID,
		Price:    order.TotalPrice,
		Quantity: order.TotalQuantity,
		Items:    make([]ItemPayload, 0, len(order.Lines)),
	}
	for _, l := range order.Lines {
		if _, ok := byID[l.ProductID]; !ok {
			byID[l.ProductID] = l.Product
		}
		p.Items = append(p.Items, t.item(l.ProductID, l.Quantity, byID))
	}
	t.push(EventBuy, p)
}

func (t *Tracker) TrackSearch(query string, resultCount int) {
	t.push(EventSearch, SearchPayload{Keyword: query, ResultCount: resultCount})
}

func (t *Tracker) TrackIdentify(u domain.User) {
	t.push(EventIdentify, IdentifyPayload{
		UserID:   u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Birthday: u.Birthday,
		Age:      u.Age,
		Gender:   u.Gender,
	})
}

func (t *Tracker) TrackAttribute(u domain.User) {
	t.push(EventAttribute, AttributePayload{
		UserID:   u.ID,
		Birthday: u.Birthday,
		Age:      u.Age,
		Gender:   u.Gender,
	})
}

func (t *Tracker) TrackLogin(u domain.User) {
	t.push(EventLogin, LoginPayload{UserID: u.ID})
}

func (t *Tracker) TrackSignup(u domain.User) {
	created := u.CreatedAt
	if created.IsZero() {
		created = t.now()
	}
	t.push(EventSignup, SignupPayload{
		UserID:     u.ID,
		Name:       u.Name,
		Email:      u.Email,
		SignupDate: created.UTC().Format(time.DateOnly),
	})
}

func (t *Tracker) TrackViewCart(itemCount, total int) {
	t.log.Debug().Int("item_count", itemCount).Int("total", total).Msg("[Analytics] view cart")
}

func (t *Tracker) TrackBeginCheckout(itemCount, total int) {
	t.log.Debug().Int("item_count", itemCount).Int("total", total).Msg("[Analytics] begin checkout")
}

func (t *Tracker) item(id string, qty int, byID map[string]domain.Product) ItemPayload {
	it := ItemPayload{ItemID: id, Quantity: qty, ItemURL: t.itemURL(id)}
	p, ok := byID[id]
	if !ok {
		return it
	}
	it.Name = p.Name
	it.Price = p.Price
	it.ItemImageURL = p.ImageURL
	it.CategoryName = string(p.Category)
	return it
}

func index(catalog []domain.Product) map[string]domain.Product {
	m := make(map[string]domain.Product, len(catalog))
	for _, p := range catalog {
		m[p.ID] = p
	}
	return m
}

func optional(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
