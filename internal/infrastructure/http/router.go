package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edulane/trailguard/internal/domain"
	"github.com/edulane/trailguard/internal/infrastructure/http/handlers"
	"github.com/edulane/trailguard/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AccessHandler     *handlers.AccessHandler
	CredentialHandler *handlers.CredentialHandler
	HealthHandler     *handlers.HealthHandler
	Actor             *middleware.ActorResolver
	Log               zerolog.Logger
	Secure            func(http.Handler) http.Handler
	IPRateLimit       func(http.Handler) http.Handler
	Metrics           bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(cfg.Actor.Handler)

		r.Post("/access/decide", cfg.AccessHandler.Decide)

		r.Route("/trails/{trailID}", func(r chi.Router) {
			r.Get("/access", cfg.AccessHandler.Probe)
			r.Get("/hint", cfg.AccessHandler.Hint)
			r.With(middleware.RequireActor).Post("/unlock", cfg.AccessHandler.Unlock)

			if cfg.CredentialHandler != nil {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.RoleFullAdmin))
					r.Put("/password", cfg.CredentialHandler.SetPassword)
					r.Delete("/password", cfg.CredentialHandler.ClearPassword)
					r.Get("/attempts", cfg.CredentialHandler.ListAttempts)
				})
			}
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
