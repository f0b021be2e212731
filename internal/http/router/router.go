package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okwama/bm-server/internal/http/handlers"
	mw "github.com/okwama/bm-server/internal/http/middleware"
	"github.com/okwama/bm-server/internal/http/middleware/ratelimit"
	"github.com/okwama/bm-server/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(
	logger logx.Logger,
	h *handlers.Handlers,
	requests *handlers.RequestHandler,
	stream *handlers.StreamHandler,
	admin *handlers.AdminHandler,
	auth mw.Authenticator,
	limiter *ratelimit.Middleware,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(limiter.Handler())
	r.Use(mw.Observability(logger))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.NotFound(http.HandlerFunc(h.NotFound))

	r.Group(func(r chi.Router) {
		r.Use(mw.Identity(auth))

		r.Route("/requests", func(r chi.Router) {
			// transitions carry their own transaction deadline; this bounds
			// the full request including serialization
			r.Use(chimw.Timeout(60 * time.Second))

			r.Get("/pending", requests.ListPending)
			r.Get("/in-progress", requests.ListInProgress)
			r.Get("/completed", requests.ListCompleted)
			r.Get("/{id}", requests.Details)
			r.Post("/{id}/confirm-pickup", requests.ConfirmPickup)
			r.Post("/{id}/confirm-delivery", requests.ConfirmDelivery)
			r.Post("/{id}/assign-vault-officer", requests.AssignVaultOfficer)
		})

		// no timeout here, /sse/connect holds the response open
		r.Route("/sse", func(r chi.Router) {
			r.Get("/connect", stream.Connect)
			r.Post("/refresh-dashboard", admin.RefreshDashboard)
			r.Post("/notify", admin.Notify)
			r.Get("/stats", admin.Stats)
			r.Get("/health", admin.Health)
			r.Post("/clear-cache", admin.ClearCache)
		})
	})

	return r
}
