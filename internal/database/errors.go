// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// QueryError indicates that the store rejected or failed to execute a
// statement. Op names the store operation that failed.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s failed: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// ConnectionError indicates that the store could not be reached at all.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database unavailable: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// PostgreSQL error class 08 covers connection exceptions.
const pgConnectionExceptionClass = "08"

// classify wraps a driver error into the store error taxonomy. Nil and
// sql.ErrNoRows pass through untouched; callers translate absent rows
// themselves.
func classify(op string, err error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == pgConnectionExceptionClass {
			return &ConnectionError{Err: err}
		}
		return &QueryError{Op: op, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, sql.ErrConnDone) {
		return &ConnectionError{Err: err}
	}
	if pgconn.Timeout(err) {
		return &ConnectionError{Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ConnectionError{Err: err}
	}

	return &QueryError{Op: op, Err: err}
}
