// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/sunware/vppserver/internal/database"
	"github.com/sunware/vppserver/internal/logging"
	"github.com/sunware/vppserver/internal/models"
	"github.com/sunware/vppserver/internal/validation"
)

// detailEnvelope is the only error body shape the API emits. Detail is
// a string for plain errors and a []validation.Detail for 422s.
type detailEnvelope struct {
	Detail interface{} `json:"detail"`
}

// respondJSON writes v as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Err(err).Msg("Failed to encode response")
	}
}

// respondDetail writes a plain {"detail": <message>} error body.
func respondDetail(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, detailEnvelope{Detail: msg})
}

// respondValidation writes the complete field error list with 422.
func respondValidation(w http.ResponseWriter, details []validation.Detail) {
	respondJSON(w, http.StatusUnprocessableEntity, detailEnvelope{Detail: details})
}

// respondStoreError maps a store failure to its wire status. The
// store's error text is logged, never returned to the client.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var connErr *database.ConnectionError
	if errors.As(err, &connErr) {
		logging.Err(err).Str("path", r.URL.Path).Msg("Database unavailable")
		respondDetail(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	logging.Err(err).Str("path", r.URL.Path).Msg("Query failed")
	respondDetail(w, http.StatusInternalServerError, "query failed")
}

// wallClock strips the zone from t, keeping its wall-clock reading.
// Timestamp columns are naive local time, so comparisons and formatting
// both operate on the wall value.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// dateAt returns d's calendar date at the given time of day, as a
// naive wall-clock value.
func dateAt(d time.Time, hour, min, sec int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, sec, 0, time.UTC)
}

// historyWindow resolves the [start, end] window for timestamped
// history queries. A named end date covers through 23:59:59 of that
// day; an omitted end date means now; an omitted start date means
// seven days before the end.
func historyWindow(now time.Time, startDate, endDate string) (start, end time.Time) {
	if endDate != "" {
		d, _ := time.Parse(models.DateOnlyLayout, endDate)
		end = dateAt(d, 23, 59, 59)
	} else {
		end = wallClock(now)
	}

	if startDate != "" {
		d, _ := time.Parse(models.DateOnlyLayout, startDate)
		start = dateAt(d, 0, 0, 0)
	} else {
		start = end.AddDate(0, 0, -7)
	}
	return start, end
}

// dateWindow resolves the [start, end] window for date-keyed queries.
func dateWindow(now time.Time, startDate, endDate string) (start, end time.Time) {
	if endDate != "" {
		end, _ = time.Parse(models.DateOnlyLayout, endDate)
	} else {
		end = dateAt(now, 0, 0, 0)
	}

	if startDate != "" {
		start, _ = time.Parse(models.DateOnlyLayout, startDate)
	} else {
		start = end.AddDate(0, 0, -7)
	}
	return start, end
}
