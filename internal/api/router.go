// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sunware/vppserver/internal/config"
	"github.com/sunware/vppserver/internal/middleware"
)

// NewRouter builds the full route tree. Paths are part of the wire
// contract and must not change.
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(corsMiddleware(cfg))

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if !cfg.API.RateLimitDisabled {
			r.Use(httprate.LimitByIP(cfg.API.RateLimitReqs, cfg.API.RateLimitWindow))
		}

		r.Route("/vpp", func(r chi.Router) {
			r.Get("/realdata", h.Realdata)
			r.Get("/realdata/{site_id}", h.SiteRealdata)
			r.Get("/solar/latest", h.SolarLatest)
			r.Get("/solar/history", h.SolarHistory)
			r.Get("/load/latest", h.LoadLatest)
			r.Get("/load/history", h.LoadHistory)
			r.Get("/summary", h.Summary)
		})

		r.Route("/taipower", func(r chi.Router) {
			r.Get("/reserve/latest", h.ReserveLatest)
			r.Get("/reserve/date", h.ReserveByDate)
			r.Get("/reserve/history", h.ReserveHistory)
			r.Get("/reserve/statistics", h.ReserveStatistics)
			r.Get("/reserve/hour", h.ReserveByHour)
		})

		r.Post("/upload", h.Upload)
		r.Get("/upload/history", h.UploadHistory)
	})

	return r
}

// corsMiddleware mirrors the deployed service's allow-all CORS policy
// unless the configuration narrows the origin list.
func corsMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.API.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
