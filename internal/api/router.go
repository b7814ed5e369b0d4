package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/tagdemo/storefront/docs" // registers the swagger spec
	"github.com/tagdemo/storefront/internal/api/handler"
	"github.com/tagdemo/storefront/internal/api/middleware"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// Deps are the services the HTTP surface is built on.
type Deps struct {
	Store   ports.StoreService
	Catalog ports.CatalogService
	Events  ports.EventQueue
	// Guard debounces add-to-cart; nil disables it.
	Guard ports.SubmitGuard
	// Readiness lists the dependencies probed by /health/ready.
	Readiness map[string]handler.Pinger
	// AdminSecret signs admin bearer tokens; empty leaves admin routes open.
	AdminSecret string
	// Registerer receives the HTTP metrics; nil uses the default registry.
	Registerer prometheus.Registerer
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "storefront",
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))

	// --- Health probes and tooling (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	// --- Catalog ---
	products := handler.NewProductHandler(d.Store)
	v1.GET("/products", products.List)
	v1.GET("/products/:id", products.Get)
	v1.POST("/pageviews", products.PageView)

	// --- Cart and checkout ---
	cart := handler.NewCartHandler(d.Store, d.Catalog, d.Guard)
	v1.GET("/cart", cart.Get)
	v1.DELETE("/cart", cart.Clear)
	v1.GET("/cart/total", cart.Total)
	v1.POST("/cart/items", cart.AddItem)
	v1.PUT("/cart/items/:product_id", cart.UpdateItem)
	v1.DELETE("/cart/items/:product_id", cart.RemoveItem)
	v1.POST("/checkout", cart.Checkout)

	// --- Favorites ---
	favorites := handler.NewFavoritesHandler(d.Store, d.Catalog)
	v1.GET("/favorites", favorites.List)
	v1.POST("/favorites", favorites.Add)
	v1.DELETE("/favorites/:product_id", favorites.Remove)

	// --- Session ---
	auth := handler.NewAuthHandler(d.Store)
	v1.POST("/auth/register", auth.Register)
	v1.POST("/auth/login", auth.Login)
	v1.POST("/auth/logout", auth.Logout)
	v1.GET("/auth/me", auth.Me)
	v1.PATCH("/auth/me/attributes", auth.UpdateAttributes)

	// --- Data layer ---
	v1.GET("/datalayer", handler.NewDataLayerHandler(d.Events).List)

	// --- Admin ---
	admin := v1.Group("/admin")
	if d.AdminSecret != "" {
		admin.Use(middleware.AdminOnly(d.AdminSecret))
	} else {
		d.Logger.Warn().Msg("ADMIN_JWT_SECRET is empty, admin routes are unauthenticated")
	}
	adminHandler := handler.NewAdminHandler(d.Catalog)
	admin.POST("/products", adminHandler.Create)
	admin.POST("/products/reset", adminHandler.Reset)
	admin.GET("/products/export", adminHandler.Export)
	admin.PATCH("/products/:id", adminHandler.Update)
	admin.DELETE("/products/:id", adminHandler.Delete)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	log = log.With().Str("component", "http").Logger()
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
