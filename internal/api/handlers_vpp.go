// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sunware/vppserver/internal/config"
	"github.com/sunware/vppserver/internal/models"
	"github.com/sunware/vppserver/internal/validation"
)

// Realdata serves the latest solar and load readings for every site.
func (h *Handler) Realdata(w http.ResponseWriter, r *http.Request) {
	solarRows, err := h.store.LatestSolarAllSites(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	loadRows, err := h.store.LatestLoadAllSites(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	sites := make(map[string]*models.SiteRealdata)
	for _, row := range solarRows {
		site := sites[row.SiteID]
		if site == nil {
			site = &models.SiteRealdata{}
			sites[row.SiteID] = site
		}
		site.Solar = row.ToRealdata()
	}
	for _, row := range loadRows {
		site := sites[row.SiteID]
		if site == nil {
			site = &models.SiteRealdata{}
			sites[row.SiteID] = site
		}
		site.Load = row.ToRealdata()
	}

	respondJSON(w, http.StatusOK, models.RealdataResponse{
		Timestamp: h.nowStamp(),
		Sites:     sites,
	})
}

// SiteRealdata serves one site's latest solar and load rows.
func (h *Handler) SiteRealdata(w http.ResponseWriter, r *http.Request) {
	req := sitePathRequest{SiteID: chi.URLParam(r, "site_id")}
	if details := validation.ValidateRequest(&req, validation.InPath); details != nil {
		respondValidation(w, details)
		return
	}

	solar, err := h.store.LatestSolar(r.Context(), req.SiteID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	load, err := h.store.LatestLoad(r.Context(), req.SiteID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.SiteRealdataResponse{
		SiteID:    req.SiteID,
		Timestamp: h.nowStamp(),
		Solar:     solar,
		Load:      load,
	})
}

// SolarLatest serves the newest solar rows: every site's, or one
// site's when site_id is given.
func (h *Handler) SolarLatest(w http.ResponseWriter, r *http.Request) {
	req := latestRequest{SiteID: r.URL.Query().Get("site_id")}
	if details := validation.ValidateRequest(&req, validation.InQuery); details != nil {
		respondValidation(w, details)
		return
	}

	if req.SiteID != "" {
		row, err := h.store.LatestSolar(r.Context(), req.SiteID)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, row)
		return
	}

	rows, err := h.store.LatestSolarAllSites(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// SolarHistory serves a bounded window of one site's solar rows,
// ascending by timestamp.
func (h *Handler) SolarHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var details []validation.Detail
	req := energyHistoryRequest{
		SiteID:    q.Get("site_id"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Limit:     bindIntParam(q, "limit", h.cfg.API.DefaultHistoryLimit, &details),
	}
	details = append(details, validation.ValidateRequest(&req, validation.InQuery)...)
	if len(details) > 0 {
		respondValidation(w, details)
		return
	}

	start, end := historyWindow(h.now(), req.StartDate, req.EndDate)
	rows, err := h.store.SolarHistory(r.Context(), req.SiteID, start, end, req.Limit)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.SolarHistoryResponse{
		SiteID:    req.SiteID,
		StartDate: models.NewLocalTime(start),
		EndDate:   models.NewLocalTime(end),
		Count:     len(rows),
		Data:      rows,
	})
}

// LoadLatest serves the newest load rows: every site's, or one site's
// when site_id is given.
func (h *Handler) LoadLatest(w http.ResponseWriter, r *http.Request) {
	req := latestRequest{SiteID: r.URL.Query().Get("site_id")}
	if details := validation.ValidateRequest(&req, validation.InQuery); details != nil {
		respondValidation(w, details)
		return
	}

	if req.SiteID != "" {
		row, err := h.store.LatestLoad(r.Context(), req.SiteID)
		if err != nil {
			respondStoreError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, row)
		return
	}

	rows, err := h.store.LatestLoadAllSites(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// LoadHistory serves a bounded window of one site's load rows,
// ascending by timestamp.
func (h *Handler) LoadHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var details []validation.Detail
	req := energyHistoryRequest{
		SiteID:    q.Get("site_id"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Limit:     bindIntParam(q, "limit", h.cfg.API.DefaultHistoryLimit, &details),
	}
	details = append(details, validation.ValidateRequest(&req, validation.InQuery)...)
	if len(details) > 0 {
		respondValidation(w, details)
		return
	}

	start, end := historyWindow(h.now(), req.StartDate, req.EndDate)
	rows, err := h.store.LoadHistory(r.Context(), req.SiteID, start, end, req.Limit)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.LoadHistoryResponse{
		SiteID:    req.SiteID,
		StartDate: models.NewLocalTime(start),
		EndDate:   models.NewLocalTime(end),
		Count:     len(rows),
		Data:      rows,
	})
}

// Summary serves the fleet-wide generation/load aggregates plus a
// per-site breakdown. Totals are computed by the store, not by paging
// rows through the handler.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	totals, err := h.store.SummaryTotals(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	solarRows, err := h.store.LatestSolarAllSites(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	sites := make([]*models.SiteSummary, 0, len(solarRows))
	for _, row := range solarRows {
		rd := row.ToRealdata()
		sites = append(sites, &models.SiteSummary{
			SiteID:          row.SiteID,
			DailyGeneration: rd.DailyGeneration,
			ACTotalPower:    rd.ACTotalPower,
		})
	}

	respondJSON(w, http.StatusOK, models.SummaryResponse{
		Timestamp:  h.nowStamp(),
		TotalSites: len(config.ValidSites),
		Summary: models.SummaryBody{
			TotalGeneration: totals.TotalGeneration,
			TotalLoad:       totals.TotalLoad,
			NetGeneration:   totals.TotalGeneration - totals.TotalLoad,
		},
		Sites: sites,
	})
}
