// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Wire formats. Timestamps carry the local wall-clock value with no zone
// suffix; dates are plain calendar dates.
const (
	LocalTimeLayout = "2006-01-02T15:04:05"
	DateOnlyLayout  = "2006-01-02"

	// TimestampParamLayout is the space-separated form accepted on
	// upload requests.
	TimestampParamLayout = "2006-01-02 15:04:05"
)

// LocalTime is a timestamp serialized as "YYYY-MM-DDTHH:MM:SS" with no
// zone suffix. Database TIMESTAMP columns scan into it directly.
type LocalTime struct {
	time.Time
}

// NewLocalTime wraps t as a LocalTime.
func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: t}
}

// MarshalJSON implements json.Marshaler.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(LocalTimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts both the wire
// layout and the space-separated upload layout.
func (t *LocalTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid timestamp %s", s)
	}
	s = s[1 : len(s)-1]
	for _, layout := range []string{LocalTimeLayout, TimestampParamLayout} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// Scan implements sql.Scanner.
func (t *LocalTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case string:
		parsed, err := time.Parse(TimestampParamLayout, v)
		if err != nil {
			return fmt.Errorf("cannot scan %q into LocalTime: %w", v, err)
		}
		t.Time = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into LocalTime", src)
	}
}

// Value implements driver.Valuer.
func (t LocalTime) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time, nil
}

// DateOnly is a calendar date serialized as "YYYY-MM-DD". Database DATE
// columns scan into it directly.
type DateOnly struct {
	time.Time
}

// NewDateOnly wraps t, truncated to its calendar date.
func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

// MarshalJSON implements json.Marshaler.
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateOnlyLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	parsed, err := time.Parse(DateOnlyLayout, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("invalid date %q", s[1:len(s)-1])
	}
	d.Time = parsed
	return nil
}

// Scan implements sql.Scanner.
func (d *DateOnly) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = v
		return nil
	case string:
		parsed, err := time.Parse(DateOnlyLayout, v)
		if err != nil {
			return fmt.Errorf("cannot scan %q into DateOnly: %w", v, err)
		}
		d.Time = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", src)
	}
}

// Value implements driver.Valuer.
func (d DateOnly) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// String returns the wire form.
func (d DateOnly) String() string {
	return d.Format(DateOnlyLayout)
}
