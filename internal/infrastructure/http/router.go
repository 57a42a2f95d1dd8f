package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rosterhq/roster/internal/infrastructure/http/handlers"
	"github.com/rosterhq/roster/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	OwnersHandler    *handlers.OwnersHandler
	UsersHandler     *handlers.UsersHandler
	HealthHandler    *handlers.HealthHandler
	RequireJWT       func(http.Handler) http.Handler // JWT auth for owner-scoped routes
	Log              zerolog.Logger
	Secure           func(http.Handler) http.Handler
	CORS             func(http.Handler) http.Handler
	IPRateLimit      func(http.Handler) http.Handler
	SubjectRateLimit func(http.Handler) http.Handler
	APIVersion       string
	Metrics          bool // expose /metrics
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
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	if cfg.APIVersion != "" {
		r.Use(middleware.APIVersion(cfg.APIVersion))
	}
	r.Use(chimid.AllowContentType("application/json"))

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/owners", func(r chi.Router) {
		// Registration is open; it is the only unauthenticated write.
		r.Group(func(r chi.Router) {
			if cfg.IPRateLimit != nil {
				r.Use(cfg.IPRateLimit)
			}
			r.Post("/register", cfg.OwnersHandler.Register)
		})
		r.Group(func(r chi.Router) {
			if cfg.RequireJWT != nil {
				r.Use(cfg.RequireJWT)
			}
			if cfg.SubjectRateLimit != nil {
				r.Use(cfg.SubjectRateLimit)
			}
			r.Get("/{ownerID}", cfg.OwnersHandler.Get)
			r.Delete("/{ownerID}", cfg.OwnersHandler.Delete)
			r.Post("/{ownerID}/users", cfg.UsersHandler.Create)
			r.Get("/{ownerID}/users", cfg.UsersHandler.List)
		})
	})

	r.Route("/users", func(r chi.Router) {
		if cfg.RequireJWT != nil {
			r.Use(cfg.RequireJWT)
		}
		if cfg.SubjectRateLimit != nil {
			r.Use(cfg.SubjectRateLimit)
		}
		r.Get("/{userID}", cfg.UsersHandler.Get)
		r.Patch("/{userID}/role", cfg.UsersHandler.UpdateRole)
		r.Delete("/{userID}", cfg.UsersHandler.Delete)
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
