// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package api

import (
	"time"

	"github.com/sunware/vppserver/internal/config"
)

// timestampLayout is the zone-qualified layout used for the "now"
// stamps on realdata and summary responses.
const timestampLayout = "2006-01-02T15:04:05-07:00"

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	store Store
	cfg   *config.Config

	// now is injectable for deterministic tests. Production returns
	// the current time in the Taipei zone.
	now func() time.Time
}

// NewHandler builds a Handler over the given store and configuration.
func NewHandler(store Store, cfg *config.Config) *Handler {
	return &Handler{
		store: store,
		cfg:   cfg,
		now:   func() time.Time { return time.Now().In(config.Taipei) },
	}
}

// nowStamp formats the current Taipei time with its UTC offset, the
// form the realdata and summary views carry.
func (h *Handler) nowStamp() string {
	return h.now().Format(timestampLayout)
}
