// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"time"

	"github.com/sunware/vppserver/internal/models"
)

// Store is the narrow seam between the handlers and the database. The
// production implementation is *database.DB; tests substitute a mock.
//
// Single-row lookups return (nil, nil) when the row does not exist;
// multi-row lookups return an empty slice. Errors are the store's
// taxonomy (QueryError, ConnectionError).
type Store interface {
	Ping(ctx context.Context) error

	LatestSolar(ctx context.Context, siteID string) (*models.SolarReading, error)
	LatestSolarAllSites(ctx context.Context) ([]*models.SolarReading, error)
	SolarHistory(ctx context.Context, siteID string, start, end time.Time, limit int) ([]*models.SolarReading, error)

	LatestLoad(ctx context.Context, siteID string) (*models.LoadReading, error)
	LatestLoadAllSites(ctx context.Context) ([]*models.LoadReading, error)
	LoadHistory(ctx context.Context, siteID string, start, end time.Time, limit int) ([]*models.LoadReading, error)

	SummaryTotals(ctx context.Context) (*models.SummaryTotals, error)

	LatestReserveDay(ctx context.Context) ([]*models.ReserveRecord, error)
	ReserveByDate(ctx context.Context, date time.Time) ([]*models.ReserveRecord, error)
	ReserveHistory(ctx context.Context, start, end time.Time, limit int) ([]*models.ReserveRecord, error)
	ReserveStatistics(ctx context.Context, date time.Time) (*models.ReserveStatistics, error)
	ReserveByHour(ctx context.Context, date time.Time, hour int) (*models.ReserveRecord, error)

	InsertDeviceReading(ctx context.Context, deviceID string, value float64, ts time.Time) error
	DeviceHistory(ctx context.Context, deviceID string, limit int) ([]*models.UploadRecord, error)
}
