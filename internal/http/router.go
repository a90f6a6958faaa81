package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/acrsolucoedig-spec/cellparts/internal/clients"
	"github.com/acrsolucoedig-spec/cellparts/internal/config"
	"github.com/acrsolucoedig-spec/cellparts/internal/http/handlers"
	"github.com/acrsolucoedig-spec/cellparts/internal/middleware"
)

type Deps struct {
	Logger *log.Logger
	Cfg    config.Config

	Cart     *clients.CartClient
	Order    *clients.OrderClient
	Product  *clients.ProductClient
	Review   *clients.ReviewClient
	Tracking *clients.TrackingClient
	ViaCep   *clients.ViaCepClient

	// Watcher is nil when the tracking watcher is disabled.
	Watcher handlers.OrderWatcher

	HealthChecks []clients.HealthCheck
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// Middlewares (outer -> inner)
	r.Use(middleware.Logging(d.Logger))
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.CORS(d.Cfg.CORSAllowOrigins))
	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.AuthJWT(middleware.NewTokenParser(d.Cfg.JWTSecret)))

	health := &handlers.HealthHandler{Checks: d.HealthChecks}
	products := handlers.NewProductHandler(d.Product)
	reviews := handlers.NewReviewHandler(d.Review)
	viacep := handlers.NewViaCepHandler(d.ViaCep)
	cart := handlers.NewCartHandler(d.Cart)
	orders := handlers.NewOrderHandler(d.Order, d.Tracking, d.Watcher, d.Logger)
	tracking := handlers.NewTrackingHandler(d.Tracking)
	dashboards := handlers.NewDashboardHandler(d.Order)

	// Public
	r.Get("/health", health.Gateway)
	r.Get("/health/upstreams", health.Upstreams)

	r.Get("/products", products.List)
	r.Get("/products/popular", products.Popular)
	r.Get("/products/promotional", products.Promotional)
	r.Get("/products/category/{category}", products.ByCategory)
	r.Get("/products/{id}", products.Get)

	r.Get("/viacep/{cep}", viacep.Lookup)

	r.Get("/reviews", reviews.List)
	r.Get("/reviews/stats", reviews.Stats)
	r.Post("/reviews/{id}/helpful", reviews.MarkHelpful)

	// Authenticated
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/me", handlers.Me)
		r.Get("/dashboards/{role}", dashboards.Get)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.Get)
			r.Delete("/", cart.Clear)
			r.Get("/count", cart.Count)
			r.Post("/items", cart.AddItem)
			r.Put("/items/{id}", cart.UpdateItem)
			r.Delete("/items/{id}", cart.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.List)
			r.Post("/", orders.Create)
			r.Get("/stats", orders.Stats)
			r.Get("/history", orders.History)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", orders.Get)
				r.Delete("/", orders.Cancel)
				r.Get("/timeline", orders.Timeline)
				r.Post("/deliver", tracking.MarkDelivered)
				r.Get("/tracking", tracking.History)
				r.Post("/tracking", tracking.AddUpdate)
				r.Get("/tracking/latest", tracking.Latest)
				r.Put("/tracking/location", tracking.UpdateLocation)
			})
		})

		r.Post("/reviews", reviews.Create)
		r.Patch("/reviews/{id}", reviews.Update)
		r.Delete("/reviews/{id}", reviews.Delete)
	})

	return r
}
