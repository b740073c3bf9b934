// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

// Package database implements the PostgreSQL store behind the VPP API.
//
// All access goes through database/sql over the pgx stdlib driver. Every
// statement is a fixed parameterized template ($1..$n binds, never string
// concatenation) and every call takes the request context so client
// disconnects cancel in-flight queries.
//
// Failures are classified into two kinds: ConnectionError when the store
// cannot be reached (connection refused, pool acquisition, network), and
// QueryError for everything the server rejected or failed to execute.
// Handlers map the former to 503 and the latter to 500.
package database
