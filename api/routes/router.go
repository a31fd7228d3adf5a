package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/everestcrafts/souvenirs-backend/api/controllers"
	"github.com/everestcrafts/souvenirs-backend/api/middleware"
	cartsvc "github.com/everestcrafts/souvenirs-backend/internal/cart"
	"github.com/everestcrafts/souvenirs-backend/internal/catalog"
	ordersvc "github.com/everestcrafts/souvenirs-backend/internal/orders"
	"github.com/everestcrafts/souvenirs-backend/pkg/config"
	"github.com/everestcrafts/souvenirs-backend/pkg/db"
	"github.com/everestcrafts/souvenirs-backend/pkg/logger"
	"github.com/everestcrafts/souvenirs-backend/pkg/metrics"
	"github.com/everestcrafts/souvenirs-backend/pkg/redis"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          redis.Pinger
	SessionManager middleware.SessionManager
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	Catalog catalog.Service
	Cart    cartsvc.Service
	Orders  ordersvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	metricsHandler := deps.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", controllers.ListCategories(deps.Catalog, logg))
		r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/products/{productID}", controllers.GetProduct(deps.Catalog, logg))

		// session-scoped surface
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(deps.SessionManager, cfg.Session.CookieName, cfg.Session.TTL(), logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(deps.Cart, logg))
				r.Delete("/", controllers.ClearCart(deps.Cart, logg))
				r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
				r.Put("/items/{itemID}", controllers.UpdateCartItem(deps.Cart, logg))
				r.Delete("/items/{itemID}", controllers.RemoveCartItem(deps.Cart, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.PlaceOrder(deps.Orders, logg))
				r.Get("/", controllers.ListOrders(deps.Orders, logg))
				r.Get("/{orderID}", controllers.GetOrder(deps.Orders, logg))
			})
		})
	})

	return r
}
