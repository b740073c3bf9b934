// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sunware/vppserver/internal/models"
	"github.com/sunware/vppserver/internal/validation"
)

// ReserveLatest serves every hourly row of the most recent trading
// date. 404 when the table holds no data at all.
func (h *Handler) ReserveLatest(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.LatestReserveDay(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if len(rows) == 0 {
		respondDetail(w, http.StatusNotFound, "no reserve data available")
		return
	}

	respondJSON(w, http.StatusOK, models.ReserveDayResponse{
		Date:  rows[0].TranDate.String(),
		Count: len(rows),
		Data:  rows,
	})
}

// ReserveByDate serves one calendar date's hourly rows. A date with no
// rows is an empty window, not an error.
func (h *Handler) ReserveByDate(w http.ResponseWriter, r *http.Request) {
	req := reserveDateRequest{Date: r.URL.Query().Get("date")}
	if details := validation.ValidateRequest(&req, validation.InQuery); details != nil {
		respondValidation(w, details)
		return
	}

	date, _ := time.Parse(models.DateOnlyLayout, req.Date)
	rows, err := h.store.ReserveByDate(r.Context(), date)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ReserveDayResponse{
		Date:  req.Date,
		Count: len(rows),
		Data:  rows,
	})
}

// ReserveHistory serves a bounded window of reserve rows, newest date
// first, hours ascending within a date.
func (h *Handler) ReserveHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var details []validation.Detail
	req := reserveHistoryRequest{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Limit:     bindIntParam(q, "limit", h.cfg.API.DefaultHistoryLimit, &details),
	}
	details = append(details, validation.ValidateRequest(&req, validation.InQuery)...)
	if len(details) > 0 {
		respondValidation(w, details)
		return
	}

	start, end := dateWindow(h.now(), req.StartDate, req.EndDate)
	rows, err := h.store.ReserveHistory(r.Context(), start, end, req.Limit)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ReserveHistoryResponse{
		StartDate: start.Format(models.DateOnlyLayout),
		EndDate:   end.Format(models.DateOnlyLayout),
		Count:     len(rows),
		Data:      rows,
	})
}

// ReserveStatistics serves one day's price and capacity aggregates.
// The date defaults to today. 404 when the day has no rows.
func (h *Handler) ReserveStatistics(w http.ResponseWriter, r *http.Request) {
	req := reserveStatisticsRequest{Date: r.URL.Query().Get("date")}
	if details := validation.ValidateRequest(&req, validation.InQuery); details != nil {
		respondValidation(w, details)
		return
	}

	dateStr := req.Date
	if dateStr == "" {
		dateStr = h.now().Format(models.DateOnlyLayout)
	}
	date, _ := time.Parse(models.DateOnlyLayout, dateStr)

	stats, err := h.store.ReserveStatistics(r.Context(), date)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if stats == nil {
		respondDetail(w, http.StatusNotFound,
			fmt.Sprintf("no reserve data for %s", dateStr))
		return
	}

	respondJSON(w, http.StatusOK, stats.ToResponse(dateStr))
}

// ReserveByHour serves the single (date, hour) row. 404 when absent.
func (h *Handler) ReserveByHour(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var details []validation.Detail
	req := reserveHourRequest{
		Date: q.Get("date"),
		Hour: bindRequiredIntParam(q, "hour", &details),
	}
	structDetails := validation.ValidateRequest(&req, validation.InQuery)
	for _, d := range structDetails {
		// The binder already reported hour when it was missing or
		// unparseable; range failures on the bound value still pass.
		if len(details) > 0 && len(d.Loc) == 2 && d.Loc[1] == "hour" {
			continue
		}
		details = append(details, d)
	}
	if len(details) > 0 {
		respondValidation(w, details)
		return
	}

	date, _ := time.Parse(models.DateOnlyLayout, req.Date)
	row, err := h.store.ReserveByHour(r.Context(), date, req.Hour)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if row == nil {
		respondDetail(w, http.StatusNotFound,
			fmt.Sprintf("no reserve data for %s %d:00", req.Date, req.Hour))
		return
	}

	respondJSON(w, http.StatusOK, row)
}
