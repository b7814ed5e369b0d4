package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// stubStore implements only what a test sets; anything else panics through
// the nil embedded interface.
type stubStore struct {
	ports.StoreService

	state ports.StoreState

	addToCartFn      func(ctx context.Context, p domain.Product, qty int) error
	updateQuantityFn func(ctx context.Context, id string, qty int) error
	cartLinesFn      func(ctx context.Context) ([]domain.CartLine, error)
	checkoutFn       func(ctx context.Context) (domain.Order, error)
	addFavoriteFn    func(ctx context.Context, p domain.Product) error
	registerFn       func(ctx context.Context, email, password, name string) (domain.User, error)
	loginFn          func(ctx context.Context, email, password string) (domain.User, error)
	checkAuthFn      func(ctx context.Context) *domain.User
	viewProductFn    func(ctx context.Context, id string) (domain.Product, bool, error)
	searchFn         func(ctx context.Context, q string) ([]domain.Product, error)
	browseFn         func(ctx context.Context, c domain.Category) ([]domain.Product, error)
	pageViewFn       func(page string, params map[string]any)
}

func (s *stubStore) State() ports.StoreState { return s.state }

func (s *stubStore) AddToCart(ctx context.Context, p domain.Product, qty int) error {
	return s.addToCartFn(ctx, p, qty)
}

func (s *stubStore) UpdateQuantity(ctx context.Context, id string, qty int) error {
	return s.updateQuantityFn(ctx, id, qty)
}

func (s *stubStore) CartLines(ctx context.Context) ([]domain.CartLine, error) {
	return s.cartLinesFn(ctx)
}

func (s *stubStore) Checkout(ctx context.Context) (domain.Order, error) {
	return s.checkoutFn(ctx)
}

func (s *stubStore) AddToFavorites(ctx context.Context, p domain.Product) error {
	return s.addFavoriteFn(ctx, p)
}

func (s *stubStore) Register(ctx context.Context, email, password, name string) (domain.User, error) {
	return s.registerFn(ctx, email, password, name)
}

func (s *stubStore) Login(ctx context.Context, email, password string) (domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubStore) CheckAuth(ctx context.Context) *domain.User {
	return s.checkAuthFn(ctx)
}

func (s *stubStore) ViewProduct(ctx context.Context, id string) (domain.Product, bool, error) {
	return s.viewProductFn(ctx, id)
}

func (s *stubStore) Search(ctx context.Context, q string) ([]domain.Product, error) {
	return s.searchFn(ctx, q)
}

func (s *stubStore) Browse(ctx context.Context, c domain.Category) ([]domain.Product, error) {
	return s.browseFn(ctx, c)
}

func (s *stubStore) PageView(page string, params map[string]any) {
	s.pageViewFn(page, params)
}

type stubCatalog struct {
	ports.CatalogService

	products  map[string]domain.Product
	exportCSV []byte
	created   []domain.ProductInput
}

func (s *stubCatalog) Create(_ context.Context, in domain.ProductInput) (domain.Product, error) {
	s.created = append(s.created, in)
	return domain.Product{
		ID:          "9",
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Stock:       in.Stock,
	}, nil
}

func (s *stubCatalog) Get(_ context.Context, id string) (domain.Product, bool, error) {
	p, ok := s.products[id]
	return p, ok, nil
}

func (s *stubCatalog) Delete(_ context.Context, id string) (bool, error) {
	_, ok := s.products[id]
	delete(s.products, id)
	return ok, nil
}

func (s *stubCatalog) ExportCSV(context.Context) ([]byte, error) {
	return s.exportCSV, nil
}

type stubGuard struct {
	allow bool
	keys  []string
}

func (g *stubGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.keys = append(g.keys, key)
	return g.allow, nil
}

type stubQueue struct {
	events  []domain.TagEvent
	drained bool
}

func (q *stubQueue) Snapshot() []domain.TagEvent { return q.events }

func (q *stubQueue) Drain() []domain.TagEvent {
	q.drained = true
	out := q.events
	q.events = nil
	return out
}

// newContext builds an echo context with the validator installed. A non-empty
// body is sent as JSON.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// httpCode returns the status of an *echo.HTTPError, or 0 for anything else.
func httpCode(err error) int {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return 0
	}
	return he.Code
}

var headphones = domain.Product{ID: "1", Name: "Wireless Headphones", Price: 12800, Category: domain.CategoryElectronics, Stock: 15}
