// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
)

// healthBody is the fixed health response. The service name is part of
// the wire contract with existing monitors.
type healthBody struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health reports liveness. It is deliberately independent of the store:
// monitors probe process health here, store health surfaces as 503s on
// data endpoints.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthBody{
		Status:  "healthy",
		Service: "VPP FastAPI",
	})
}

// Root serves the API index document.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Virtual Power Plant (VPP) API",
		"version": "2.0.0",
		"endpoints": map[string]interface{}{
			"vpp": map[string]string{
				"realdata":      "GET /api/vpp/realdata - latest realtime data for all sites",
				"realdata_site": "GET /api/vpp/realdata/{site_id} - latest realtime data for one site",
				"solar_latest":  "GET /api/vpp/solar/latest - latest solar readings",
				"solar_history": "GET /api/vpp/solar/history - solar history window",
				"load_latest":   "GET /api/vpp/load/latest - latest load readings",
				"load_history":  "GET /api/vpp/load/history - load history window",
				"summary":       "GET /api/vpp/summary - fleet generation/load summary",
			},
			"taipower": map[string]string{
				"reserve_latest":     "GET /api/taipower/reserve/latest - most recent trading day",
				"reserve_date":       "GET /api/taipower/reserve/date - one calendar date",
				"reserve_history":    "GET /api/taipower/reserve/history - date window",
				"reserve_statistics": "GET /api/taipower/reserve/statistics - per-day aggregates",
				"reserve_hour":       "GET /api/taipower/reserve/hour - one (date, hour) slot",
			},
			"upload": map[string]string{
				"upload":         "POST /api/upload - device reading upload",
				"upload_history": "GET /api/upload/history - recent uploads for one device",
			},
		},
	})
}
