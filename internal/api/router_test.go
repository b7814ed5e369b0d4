package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/tagdemo/storefront/internal/analytics"
	"github.com/tagdemo/storefront/internal/api/handler"
	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/service"
	"github.com/tagdemo/storefront/internal/infrastructure/storage"
)

// newTestServer wires the real services over an in-memory backend.
func newTestServer(t *testing.T, adminSecret string) *echo.Echo {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	kv := storage.NewMemoryKV()
	local := storage.NewLocal(kv, "storefront:", log)

	catalog, err := service.NewCatalogService(ctx, storage.NewRecord[[]domain.Product](local, storage.KeyProducts), service.Latency{}, log)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	auth := service.NewAuthService(
		storage.NewRecord[[]domain.StoredUser](local, storage.KeyUsers),
		storage.NewRecord[domain.User](local, storage.KeyCurrentUser),
		0, log,
	)
	layer := analytics.NewDataLayer(0)
	store := service.NewStore(ctx, service.StoreDeps{
		Catalog:   catalog,
		Auth:      auth,
		Cart:      storage.NewRecord[[]domain.CartItem](local, storage.KeyCart),
		Favorites: storage.NewRecord[[]domain.FavoriteItem](local, storage.KeyFavorites),
		Tracker:   analytics.NewTracker(layer, "http://shop.test", log),
		Logger:    log,
	})

	return NewRouter(Deps{
		Store:       store,
		Catalog:     catalog,
		Events:      layer,
		Guard:       storage.NewMemoryGuard(2 * time.Second),
		Readiness:   map[string]handler.Pinger{"storage": kv},
		AdminSecret: adminSecret,
		Registerer:  prometheus.NewRegistry(),
		Logger:      log,
	})
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	e := newTestServer(t, "")

	if rec := do(e, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/health/ready", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}
}

func TestRouter_CartToPurchase(t *testing.T) {
	e := newTestServer(t, "")

	rec := do(e, http.MethodPost, "/v1/cart/items", `{"product_id":"1","quantity":2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/v1/cart/items", `{"product_id":"1","quantity":1}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("repeat add: expected 429, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/v1/cart/total", "")
	var total struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &total); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if total.Total != 25600 {
		t.Fatalf("expected total 25600, got %d", total.Total)
	}

	rec = do(e, http.MethodPost, "/v1/checkout", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var order struct {
		OrderID string `json:"order_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !strings.HasPrefix(order.OrderID, "order_") {
		t.Fatalf("unexpected order id %q", order.OrderID)
	}

	rec = do(e, http.MethodGet, "/v1/datalayer?drain=true", "")
	var layer struct {
		Events []map[string]any `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &layer); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	var names []string
	for _, ev := range layer.Events {
		names = append(names, ev["event"].(string))
	}
	if strings.Join(names, ",") != "cart,buy" {
		t.Fatalf("unexpected events: %v", names)
	}
	if layer.Events[1]["price"] != float64(25600) {
		t.Fatalf("unexpected buy payload: %v", layer.Events[1])
	}

	rec = do(e, http.MethodPost, "/v1/checkout", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("second checkout: expected 422, got %d", rec.Code)
	}
}

func TestRouter_UnknownProduct(t *testing.T) {
	e := newTestServer(t, "")

	rec := do(e, http.MethodGet, "/v1/products/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"product not found"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRouter_AdminRequiresToken(t *testing.T) {
	e := newTestServer(t, "test-secret")

	if rec := do(e, http.MethodPost, "/v1/admin/products/reset", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/v1/products", ""); rec.Code != http.StatusOK {
		t.Fatalf("shopper routes must stay open, got %d", rec.Code)
	}
}
