// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/sunware/vppserver/internal/logging"
	"github.com/sunware/vppserver/internal/models"
	"github.com/sunware/vppserver/internal/validation"
)

// maxUploadBody caps device upload bodies well above any real reading.
const maxUploadBody = 1 << 16

// Upload accepts one device reading and stores it. 201 on success; the
// accepted reading is echoed back with the timestamp exactly as
// submitted.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadBody))
	if err := dec.Decode(&req); err != nil {
		respondValidation(w, []validation.Detail{
			validation.NewDetail(validation.InBody, "body", "invalid JSON body", "value_error.jsondecode"),
		})
		return
	}
	if details := validation.ValidateRequest(&req, validation.InBody); details != nil {
		respondValidation(w, details)
		return
	}

	ts, _ := time.Parse(models.TimestampParamLayout, req.Timestamp)
	if err := h.store.InsertDeviceReading(r.Context(), req.DeviceID, *req.Value, ts); err != nil {
		respondStoreError(w, r, err)
		return
	}

	logging.Info().
		Str("device_id", req.DeviceID).
		Float64("value", *req.Value).
		Str("timestamp", req.Timestamp).
		Msg("Device reading stored")

	respondJSON(w, http.StatusCreated, models.UploadResponse{
		Message: "success",
		Data: models.UploadEcho{
			DeviceID:  req.DeviceID,
			Value:     *req.Value,
			Timestamp: req.Timestamp,
		},
	})
}

// UploadHistory serves a device's most recent uploads, newest first.
func (h *Handler) UploadHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var details []validation.Detail
	req := uploadHistoryRequest{
		DeviceID: q.Get("device_id"),
		Limit:    bindIntParam(q, "limit", 100, &details),
	}
	details = append(details, validation.ValidateRequest(&req, validation.InQuery)...)
	if len(details) > 0 {
		respondValidation(w, details)
		return
	}

	rows, err := h.store.DeviceHistory(r.Context(), req.DeviceID, req.Limit)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.UploadHistoryResponse{
		DeviceID: req.DeviceID,
		Count:    len(rows),
		Data:     rows,
	})
}
