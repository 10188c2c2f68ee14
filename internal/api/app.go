package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"IdentStore/internal/identity"
	"IdentStore/internal/product"
	"IdentStore/pkg/kit"
)

type Deps struct {
	Log      *zap.Logger
	Service  string
	Registry *identity.Registry
	Products product.Store

	PromRegistry   *prometheus.Registry
	MetricsEnabled bool
	MetricsToken   string

	// IssueLimitPerMin caps identifier issuance per client IP.
	// Zero disables the limiter.
	IssueLimitPerMin int
}

const issueLimitWindow = 60 * time.Second

// NewHandler assembles the full route set: identifier issuance, the caller's
// own identity, and the owner-gated product CRUD.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetricsEndpoint(r, deps)

	ids := &identity.Server{Log: deps.Log, Registry: deps.Registry}
	products := &product.Server{Store: deps.Products, Log: deps.Log}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", readyz(deps))

	if deps.IssueLimitPerMin > 0 {
		limiter := kit.NewIPRateLimiter(deps.IssueLimitPerMin, issueLimitWindow)
		r.With(limiter.Middleware).Post("/identifiers", ids.IssueHandler())
	} else {
		r.Post("/identifiers", ids.IssueHandler())
	}

	r.Group(func(pr chi.Router) {
		pr.Use(identity.RequireOwner(deps.Registry))

		pr.Get("/identifiers", ids.SelfHandler())

		pr.Post("/products", products.CreateHandler())
		pr.Get("/products", products.GetHandler())
		pr.Put("/products", products.UpdateHandler())
		pr.Delete("/products", products.DeleteHandler())
	})

	return r
}

func setupMiddleware(r *chi.Mux, deps Deps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))

	if deps.PromRegistry != nil {
		metrics := kit.NewMetrics(deps.PromRegistry)
		r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))
	}
}

func setupMetricsEndpoint(r *chi.Mux, deps Deps) {
	if !deps.MetricsEnabled || deps.PromRegistry == nil {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{}))
}

func readyz(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := deps.Products.Ping(ctx); err != nil {
			if deps.Log != nil {
				deps.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
