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

const reserveColumns = `id, tran_date, tran_hour,
	sr_bid, sr_bid_qse, sr_bid_nontrade, sr_price,
	sr_perf_price_1, sr_perf_price_2, sr_perf_price_3,
	sup_bid, sup_bid_qse, sup_bid_nontrade, sup_price,
	created_at, updated_at`

const (
	selectLatestReserveDaySQL = `SELECT ` + reserveColumns + `
		FROM taipower_reserve_data
		WHERE tran_date = (SELECT MAX(tran_date) FROM taipower_reserve_data)
		ORDER BY tran_hour ASC`

	selectReserveByDateSQL = `SELECT ` + reserveColumns + `
		FROM taipower_reserve_data
		WHERE tran_date = $1
		ORDER BY tran_hour ASC`

	selectReserveHistorySQL = `SELECT ` + reserveColumns + `
		FROM taipower_reserve_data
		WHERE tran_date BETWEEN $1 AND $2
		ORDER BY tran_date DESC, tran_hour ASC
		LIMIT $3`

	selectReserveStatisticsSQL = `SELECT
		tran_date,
		AVG(sr_price) AS avg_sr_price,
		MAX(sr_price) AS max_sr_price,
		MIN(sr_price) AS min_sr_price,
		AVG(sup_price) AS avg_sup_price,
		MAX(sup_price) AS max_sup_price,
		MIN(sup_price) AS min_sup_price,
		SUM(sr_bid + sr_bid_qse + sr_bid_nontrade) AS total_sr_capacity,
		SUM(sup_bid + sup_bid_qse + sup_bid_nontrade) AS total_sup_capacity
		FROM taipower_reserve_data
		WHERE tran_date = $1
		GROUP BY tran_date`

	selectReserveByHourSQL = `SELECT ` + reserveColumns + `
		FROM taipower_reserve_data
		WHERE tran_date = $1 AND tran_hour = $2`
)

func scanReserve(row interface{ Scan(...interface{}) error }) (*models.ReserveRecord, error) {
	var r models.ReserveRecord
	err := row.Scan(
		&r.ID, &r.TranDate, &r.TranHour,
		&r.SRBid, &r.SRBidQSE, &r.SRBidNontrade, &r.SRPrice,
		&r.SRPerfPrice1, &r.SRPerfPrice2, &r.SRPerfPrice3,
		&r.SupBid, &r.SupBidQSE, &r.SupBidNontrade, &r.SupPrice,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (db *DB) queryReserveRows(ctx context.Context, op, query string, args ...interface{}) (out []*models.ReserveRecord, err error) {
	defer func(start time.Time) { metrics.ObserveQuery(op, start, err) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout())
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	out = make([]*models.ReserveRecord, 0, 24)
	for rows.Next() {
		r, scanErr := scanReserve(rows)
		if scanErr != nil {
			err = classify(op, scanErr)
			return nil, err
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

// LatestReserveDay returns every hourly row of the most recent trading
// date, ascending by hour. Empty when the table has no rows at all.
func (db *DB) LatestReserveDay(ctx context.Context) ([]*models.ReserveRecord, error) {
	return db.queryReserveRows(ctx, "reserve_latest_day", selectLatestReserveDaySQL)
}

// ReserveByDate returns the hourly rows for one calendar date,
// ascending by hour.
func (db *DB) ReserveByDate(ctx context.Context, date time.Time) ([]*models.ReserveRecord, error) {
	return db.queryReserveRows(ctx, "reserve_by_date", selectReserveByDateSQL, date)
}

// ReserveHistory returns rows with tran_date inside [start, end],
// newest date first, hours ascending within a date, capped at limit.
func (db *DB) ReserveHistory(ctx context.Context, start, end time.Time, limit int) ([]*models.ReserveRecord, error) {
	return db.queryReserveRows(ctx, "reserve_history", selectReserveHistorySQL, start, end, limit)
}

// ReserveStatistics aggregates one day's prices and capacities
// server-side. Returns nil when the date has no rows.
func (db *DB) ReserveStatistics(ctx context.Context, date time.Time) (s *models.ReserveStatistics, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("reserve_statistics", start, err) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout())
	defer cancel()

	var stats models.ReserveStatistics
	err = db.conn.QueryRowContext(ctx, selectReserveStatisticsSQL, date).Scan(
		&stats.TranDate,
		&stats.AvgSRPrice, &stats.MaxSRPrice, &stats.MinSRPrice,
		&stats.AvgSupPrice, &stats.MaxSupPrice, &stats.MinSupPrice,
		&stats.TotalSRCapacity, &stats.TotalSupCapacity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("reserve_statistics", err)
	}
	return &stats, nil
}

// ReserveByHour returns the single (date, hour) row, or nil when it
// does not exist.
func (db *DB) ReserveByHour(ctx context.Context, date time.Time, hour int) (r *models.ReserveRecord, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("reserve_by_hour", start, err) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout())
	defer cancel()

	r, err = scanReserve(db.conn.QueryRowContext(ctx, selectReserveByHourSQL, date, hour))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("reserve_by_hour", err)
	}
	return r, nil
}
