// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sunware/vppserver/internal/metrics"
	"github.com/sunware/vppserver/internal/models"
)

const solarColumns = `id, site_id, datetime, daily_generation, solar_radiation,
	ac_avg_voltage, ac_total_power, ac_total_current,
	dc_avg_voltage, dc_total_power, dc_total_current,
	module_temperature, total_accumulated_generation, co2_reduction, created_at`

const loadColumns = `id, site_id, datetime, load_value, created_at`

const (
	selectLatestSolarSQL = `SELECT ` + solarColumns + `
		FROM solar_data
		WHERE site_id = $1
		ORDER BY datetime DESC
		LIMIT 1`

	selectAllLatestSolarSQL = `SELECT DISTINCT ON (site_id) ` + solarColumns + `
		FROM solar_data
		ORDER BY site_id, datetime DESC`

	selectSolarHistorySQL = `SELECT ` + solarColumns + `
		FROM solar_data
		WHERE site_id = $1 AND datetime BETWEEN $2 AND $3
		ORDER BY datetime ASC
		LIMIT $4`

	selectLatestLoadSQL = `SELECT ` + loadColumns + `
		FROM load_data
		WHERE site_id = $1
		ORDER BY datetime DESC
		LIMIT 1`

	selectAllLatestLoadSQL = `SELECT DISTINCT ON (site_id) ` + loadColumns + `
		FROM load_data
		ORDER BY site_id, datetime DESC`

	selectLoadHistorySQL = `SELECT ` + loadColumns + `
		FROM load_data
		WHERE site_id = $1 AND datetime BETWEEN $2 AND $3
		ORDER BY datetime ASC
		LIMIT $4`

	// Fleet totals over each site's latest row.
	selectSummaryTotalsSQL = `SELECT
		COALESCE((SELECT SUM(COALESCE(daily_generation, 0)) FROM (
			SELECT DISTINCT ON (site_id) daily_generation
			FROM solar_data
			ORDER BY site_id, datetime DESC
		) s), 0) AS total_generation,
		COALESCE((SELECT SUM(COALESCE(load_value, 0)) FROM (
			SELECT DISTINCT ON (site_id) load_value
			FROM load_data
			ORDER BY site_id, datetime DESC
		) l), 0) AS total_load`
)

func scanSolar(row interface{ Scan(...interface{}) error }) (*models.SolarReading, error) {
	var r models.SolarReading
	err := row.Scan(
		&r.ID, &r.SiteID, &r.Datetime,
		&r.DailyGeneration, &r.SolarRadiation,
		&r.ACAvgVoltage, &r.ACTotalPower, &r.ACTotalCurrent,
		&r.DCAvgVoltage, &r.DCTotalPower, &r.DCTotalCurrent,
		&r.ModuleTemperature, &r.TotalAccumulatedGeneration, &r.CO2Reduction,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanLoad(row interface{ Scan(...interface{}) error }) (*models.LoadReading, error) {
	var r models.LoadReading
	if err := row.Scan(&r.ID, &r.SiteID, &r.Datetime, &r.LoadValue, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// LatestSolar returns the newest solar row for one site, or nil when
// the site has no rows.
func (db *DB) LatestSolar(ctx context.Context, siteID string) (r *models.SolarReading, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("solar_latest", start, err) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout())
	defer cancel()

	r, err = scanSolar(db.conn.QueryRowContext(ctx, selectLatestSolarSQL, siteID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("solar_latest", err)
	}
	return r, nil
}

// LatestSolarAllSites returns each site's newest solar row, ordered by
// site id.
func (db *DB) LatestSolarAllSites(ctx context.Context) (out []*models.SolarReading, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("solar_latest_all", start, err) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout())
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, selectAllLatestSolarSQL)
	if err != nil {
		return nil, classify("solar_latest_all", err)
	}
	defer rows.Close()

	out = make([]*models.SolarReading, 0, 3)
	for rows.Next() {
		r, scanErr := scanSolar(rows)
		if scanErr != nil {
			err = classify("solar_latest_all", scanErr)
			return nil, err
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, classify("solar_latest_all", err)
	}
	return out, nil
}

// SolarHistory returns one site's rows inside [start, end], ascending
// by timestamp, capped at limit.
func (db *DB) SolarHistory(ctx context.Context, siteID string, start, end time.Time, limit int) (out []*models.SolarReading, err error) {
	defer func(t0 time.Time) { metrics.ObserveQuery("solar_history", t0, err) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout())
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, selectSolarHistorySQL, siteID, start, end, limit)
	if err != nil {
		return nil, classify("solar_history", err)
	}
	defer rows.Close()

	out = make([]*models.SolarReading, 0, 64)
	for rows.Next() {
		r, scanErr := scanSolar(rows)
		if scanErr != nil {
			err = classify("solar_history", scanErr)
			return nil, err
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, classify("solar_history", err)
	}
	return out, nil
}

// LatestLoad returns the newest load row for one site, or nil when the
// site has no rows.
func (db *DB) LatestLoad(ctx context.Context, siteID string) (r *models.LoadReading, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("load_latest", start, err) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout())
	defer cancel()

	r, err = scanLoad(db.conn.QueryRowContext(ctx, selectLatestLoadSQL, siteID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("load_latest", err)
	}
	return r, nil
}

// LatestLoadAllSites returns each site's newest load row, ordered by
// site id.
func (db *DB) LatestLoadAllSites(ctx context.Context) (out []*models.LoadReading, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("load_latest_all", start, err) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout())
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, selectAllLatestLoadSQL)
	if err != nil {
		return nil, classify("load_latest_all", err)
	}
	defer rows.Close()

	out = make([]*models.LoadReading, 0, 3)
	for rows.Next() {
		r, scanErr := scanLoad(rows)
		if scanErr != nil {
			err = classify("load_latest_all", scanErr)
			return nil, err
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, classify("load_latest_all", err)
	}
	return out, nil
}

// LoadHistory returns one site's rows inside [start, end], ascending by
// timestamp, capped at limit.
func (db *DB) LoadHistory(ctx context.Context, siteID string, start, end time.Time, limit int) (out []*models.LoadReading, err error) {
	defer func(t0 time.Time) { metrics.ObserveQuery("load_history", t0, err) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout())
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, selectLoadHistorySQL, siteID, start, end, limit)
	if err != nil {
		return nil, classify("load_history", err)
	}
	defer rows.Close()

	out = make([]*models.LoadReading, 0, 64)
	for rows.Next() {
		r, scanErr := scanLoad(rows)
		if scanErr != nil {
			err = classify("load_history", scanErr)
			return nil, err
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, classify("load_history", err)
	}
	return out, nil
}

// SummaryTotals aggregates fleet generation and load over each site's
// latest rows, entirely server-side.
func (db *DB) SummaryTotals(ctx context.Context) (t *models.SummaryTotals, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("summary_totals", start, err) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout())
	defer cancel()

	var totals models.SummaryTotals
	err = db.conn.QueryRowContext(ctx, selectSummaryTotalsSQL).
		Scan(&totals.TotalGeneration, &totals.TotalLoad)
	if err != nil {
		return nil, classify("summary_totals", err)
	}
	return &totals, nil
}
