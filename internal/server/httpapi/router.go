// Package httpapi exposes the debt manager over HTTP with chi.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/debtmanager/internal/logging"
	"github.com/dmitrijs2005/debtmanager/internal/server/services"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	API           *API
	Guard         *services.Guard
	Log           logging.Logger
	IsDevelopment bool
	Metrics       bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.StripSlashes)
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(accessLogMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(metricsMiddleware)
	}
	r.Use(secureMiddleware(cfg.IsDevelopment))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Debt Manager API"})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	a := cfg.API
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", a.Register)
			r.Post("/login", a.Login)
			r.Post("/refresh", a.Refresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireUser(cfg.Guard, cfg.Log))

			r.Get("/users/me", a.Me)

			r.Route("/debts", func(r chi.Router) {
				r.Get("/", a.ListDebts)
				r.Post("/", a.CreateDebt)
				r.Get("/{id}", a.GetDebt)
				r.Put("/{id}", a.UpdateDebt)
				r.Patch("/{id}", a.UpdateDebt)
				r.Delete("/{id}", a.DeleteDebt)
			})

			r.Get("/settings", a.GetSettings)
			r.Put("/settings", a.UpdateSettings)
			r.Get("/monitoring", a.Summary)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}
