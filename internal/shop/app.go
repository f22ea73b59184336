// Package shop exposes the storefront state over HTTP. One process serves
// one session, the way one browser tab does.
package shop

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"EduCom/internal/app"
	"EduCom/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry
	Metrics  *kit.Metrics

	MetricsEnabled bool
	MetricsToken   string
}

const (
	loginLimitPerMin    = 5
	registerLimitPerMin = 3
	limitWindow         = 60 * time.Second
	readyTimeout        = 1 * time.Second
)

type Server struct {
	Log      *zap.Logger
	App      *app.App
	TokenTTL time.Duration
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}

	r := chi.NewRouter()
	setupMiddleware(r, deps)
	setupMetrics(r, deps)
	setupRoutes(r, s)

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))
	}

	if !deps.MetricsEnabled || deps.Registry == nil {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func setupRoutes(r *chi.Mux, s *Server) {
	loginLimiter := kit.NewIPRateLimiter(loginLimitPerMin, limitWindow)
	registerLimiter := kit.NewIPRateLimiter(registerLimitPerMin, limitWindow)

	r.Get("/healthz", healthz)
	r.Get("/readyz", s.readyz)

	r.Route("/auth", func(rr chi.Router) {
		rr.With(loginLimiter.Middleware).Post("/login", s.handleLogin)
		rr.With(registerLimiter.Middleware).Post("/register", s.handleRegister)
		rr.Post("/logout", s.handleLogout)
		rr.Get("/whoami", s.handleWhoAmI)
		rr.With(AuthJWT(s.App.Tokens, s.App.Session)).Put("/profile", s.handleUpdateProfile)
	})

	r.Get("/products", s.listProducts)
	r.Get("/products/search", s.searchProducts)
	r.Get("/products/filter", s.filterProducts)
	r.Get("/products/{id}", s.getProduct)
	r.Get("/notifications", s.drainNotifications)

	r.Group(func(pr chi.Router) {
		pr.Use(AuthJWT(s.App.Tokens, s.App.Session))

		pr.Get("/suggestions", s.suggestions)

		pr.Get("/favorites", s.listFavorites)
		pr.Put("/favorites/{id}", s.addFavorite)
		pr.Delete("/favorites/{id}", s.removeFavorite)

		pr.Get("/history", s.listHistory)
		pr.Post("/history/{id}", s.viewProduct)
		pr.Delete("/history", s.clearHistory)

		pr.Get("/cart", s.getCart)
		pr.Post("/cart/{id}", s.addToCart)
		pr.Delete("/cart/{id}", s.removeFromCart)
		pr.Delete("/cart", s.clearCart)

		pr.Post("/checkout", s.checkout)
		pr.Get("/orders", s.listOrders)
		pr.Get("/orders/export", s.exportOrders)
		pr.Get("/orders/{id}", s.getOrder)
	})
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.App.Ready(ctx); err != nil {
		s.Log.Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}
