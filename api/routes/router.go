package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dcastellanos/mobilecart/api/controllers"
	"github.com/dcastellanos/mobilecart/api/middleware"
	"github.com/dcastellanos/mobilecart/internal/cart"
	"github.com/dcastellanos/mobilecart/pkg/config"
	"github.com/dcastellanos/mobilecart/pkg/logger"
)

// NewRouter assembles the HTTP surface. The cart store is provisioned
// once here via middleware; handlers below this boundary resolve it
// from the request context.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storage controllers.Pinger,
	cartStore *cart.Store,
	catalog controllers.CatalogService,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins...),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, storage))
	})

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	addHook := cart.NewAddToCart(cartStore, cfg.Cart.AddedCooldown(), cart.Callbacks{})
	removeHook := cart.NewRemoveFromCart(cartStore, cart.Callbacks{})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartContext(cartStore))
			r.Get("/", controllers.CartFetch(logg))
			r.Delete("/", controllers.CartClear(logg))
			r.Get("/contains", controllers.CartContains(logg))
			r.Get("/status", controllers.CartStatus(addHook, removeHook, logg))
			r.Post("/items", controllers.CartAddItem(addHook, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(removeHook, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(catalog, logg))
		})
	})

	return r
}
