// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

// Package models defines the row and response types for the VPP API.
//
// The JSON produced by these types is wire-compatible with the previously
// deployed service: naive local timestamps (no zone suffix), date-only
// strings for calendar dates, and null for missing numeric readings.
package models
