// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package database

import (
	"context"
	"time"

	"github.com/sunware/vppserver/internal/metrics"
	"github.com/sunware/vppserver/internal/models"
)

const (
	insertUploadSQL = `INSERT INTO stu (device_id, value, timestamp)
		VALUES ($1, $2, $3)`

	selectUploadHistorySQL = `SELECT id, device_id, value, timestamp
		FROM stu
		WHERE device_id = $1
		ORDER BY timestamp DESC
		LIMIT $2`
)

// InsertDeviceReading stores one device upload.
func (db *DB) InsertDeviceReading(ctx context.Context, deviceID string, value float64, ts time.Time) (err error) {
	defer func(start time.Time) { metrics.ObserveQuery("upload_insert", start, err) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout())
	defer cancel()

	if _, err = db.conn.ExecContext(ctx, insertUploadSQL, deviceID, value, ts); err != nil {
		err = classify("upload_insert", err)
		return err
	}
	return nil
}

// DeviceHistory returns a device's most recent uploads, newest first,
// capped at limit.
func (db *DB) DeviceHistory(ctx context.Context, deviceID string, limit int) (out []*models.UploadRecord, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("upload_history", start, err) }(time.Now())
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout())
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, selectUploadHistorySQL, deviceID, limit)
	if err != nil {
		return nil, classify("upload_history", err)
	}
	defer rows.Close()

	out = make([]*models.UploadRecord, 0, 16)
	for rows.Next() {
		var r models.UploadRecord
		if scanErr := rows.Scan(&r.ID, &r.DeviceID, &r.Value, &r.Timestamp); scanErr != nil {
			err = classify("upload_history", scanErr)
			return nil, err
		}
		out = append(out, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, classify("upload_history", err)
	}
	return out, nil
}
