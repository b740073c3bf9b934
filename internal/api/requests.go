// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package api

import (
	"net/url"
	"strconv"

	"github.com/sunware/vppserver/internal/validation"
)

// Request structs, one per endpoint. Fields carry json tags so
// validation details name the wire parameter, and validate tags for the
// endpoint's rules.

type sitePathRequest struct {
	SiteID string `json:"site_id" validate:"required,oneof=north central south"`
}

type latestRequest struct {
	SiteID string `json:"site_id" validate:"omitempty,oneof=north central south"`
}

type energyHistoryRequest struct {
	SiteID    string `json:"site_id" validate:"required,oneof=north central south"`
	StartDate string `json:"start_date" validate:"omitempty,dateonly"`
	EndDate   string `json:"end_date" validate:"omitempty,dateonly"`
	Limit     int    `json:"limit" validate:"min=1,max=10000"`
}

type reserveDateRequest struct {
	Date string `json:"date" validate:"required,dateonly"`
}

type reserveHistoryRequest struct {
	StartDate string `json:"start_date" validate:"omitempty,dateonly"`
	EndDate   string `json:"end_date" validate:"omitempty,dateonly"`
	Limit     int    `json:"limit" validate:"min=1,max=10000"`
}

type reserveStatisticsRequest struct {
	Date string `json:"date" validate:"omitempty,dateonly"`
}

type reserveHourRequest struct {
	Date string `json:"date" validate:"required,dateonly"`
	Hour int    `json:"hour" validate:"min=0,max=23"`
}

type uploadRequest struct {
	DeviceID  string   `json:"device_id" validate:"required"`
	Value     *float64 `json:"value" validate:"required"`
	Timestamp string   `json:"timestamp" validate:"required,datetimesec"`
}

type uploadHistoryRequest struct {
	DeviceID string `json:"device_id" validate:"required"`
	Limit    int    `json:"limit" validate:"min=1,max=1000"`
}

// bindIntParam reads an optional integer query parameter. An
// unparseable value produces a detail entry instead of a silent
// default.
func bindIntParam(q url.Values, name string, def int, details *[]validation.Detail) int {
	raw := q.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*details = append(*details, validation.NewDetail(
			validation.InQuery, name, name+" must be an integer", "type_error.integer"))
		return def
	}
	return v
}

// bindRequiredIntParam reads a required integer query parameter.
func bindRequiredIntParam(q url.Values, name string, details *[]validation.Detail) int {
	raw := q.Get(name)
	if raw == "" {
		*details = append(*details, validation.NewDetail(
			validation.InQuery, name, name+" is required", "missing"))
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*details = append(*details, validation.NewDetail(
			validation.InQuery, name, name+" must be an integer", "type_error.integer"))
		return 0
	}
	return v
}
