// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package models

// UploadRecord is one row of the stu device-upload table.
type UploadRecord struct {
	ID        int64     `json:"id"`
	DeviceID  string    `json:"device_id"`
	Value     float64   `json:"value"`
	Timestamp LocalTime `json:"timestamp"`
}

// UploadEcho echoes the accepted reading back to the device. The
// timestamp is returned exactly as submitted.
type UploadEcho struct {
	DeviceID  string  `json:"device_id"`
	Value     float64 `json:"value"`
	Timestamp string  `json:"timestamp"`
}

// UploadResponse is the upload acknowledgement.
type UploadResponse struct {
	Message string     `json:"message"`
	Data    UploadEcho `json:"data"`
}

// UploadHistoryResponse wraps recent uploads for one device.
type UploadHistoryResponse struct {
	DeviceID string          `json:"device_id"`
	Count    int             `json:"count"`
	Data     []*UploadRecord `json:"data"`
}
