// Package httptransport assembles the public HTTP surface.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "dochub/internal/auth/handler"
	dashhandler "dochub/internal/dashboard/handler"
	"dochub/internal/i18n"
	"dochub/internal/platform/metrics"
	portalhandler "dochub/internal/portal/handler"
	"dochub/internal/portal/view"
	rlmw "dochub/internal/ratelimit/middleware"
	"dochub/pkg/platform/httputil"
	"dochub/pkg/platform/middleware/admin"
	authmw "dochub/pkg/platform/middleware/auth"
	"dochub/pkg/platform/middleware/metadata"
	"dochub/pkg/platform/middleware/request"
	"dochub/pkg/platform/middleware/requesttime"
)

// Sessions validates bearer tokens and loads the session behind them.
type Sessions interface {
	authmw.SessionValidator
	view.SessionLoader
}

// Dependencies carries everything the router mounts.
type Dependencies struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	AdminToken     string
	AllowedOrigins []string

	Sessions  Sessions
	Navigator *view.Navigator
	RateLimit *rlmw.Middleware

	Auth      *authhandler.Handler
	Portal    *portalhandler.Handler
	Dashboard *dashhandler.Handler
}

// NewRouter wires the middleware stack and every route under /api/v1.
func NewRouter(d Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(request.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(d.Logger))
	r.Use(d.Metrics.Middleware)
	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(i18n.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.With(admin.RequireToken(d.AdminToken, d.Logger)).
			Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	requireAuth := authmw.RequireAuth(d.Sessions, d.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authmw.OptionalAuth(d.Sessions, d.Logger))
			d.Portal.Register(r)
		})

		r.Route("/auth", func(r chi.Router) {
			var throttle authhandler.Throttle
			if d.RateLimit != nil {
				throttle = d.RateLimit.RateLimit
			}
			d.Auth.Register(r, throttle)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				d.Auth.RegisterAuthenticated(r)
			})
		})

		r.Route("/citizen", func(r chi.Router) {
			r.Use(requireAuth, d.Navigator.RequireView(d.Sessions, view.Citizen, d.Logger))
			d.Dashboard.RegisterCitizen(r)
		})
		r.Route("/officer", func(r chi.Router) {
			r.Use(requireAuth, d.Navigator.RequireView(d.Sessions, view.Officer, d.Logger))
			d.Dashboard.RegisterOfficer(r)
		})
		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth, d.Navigator.RequireView(d.Sessions, view.Admin, d.Logger))
			d.Dashboard.RegisterAdmin(r)
		})
	})

	return r
}
