// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/sunware/vppserver/internal/config"
	"github.com/sunware/vppserver/internal/logging"
)

// DB is the PostgreSQL store. Safe for concurrent use; the embedded
// pool is the only shared state in the server.
type DB struct {
	conn *sql.DB
	cfg  config.DatabaseConfig
}

// New opens the connection pool, verifies connectivity and applies the
// schema bootstrap. The returned DB must be closed by the caller.
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	conn, err := sql.Open("pgx", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, &ConnectionError{Err: err}
	}

	db := &DB{conn: conn, cfg: cfg}
	if err := db.initSchema(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logging.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("Database connected")

	return db, nil
}

// buildDSN assembles a libpq keyword/value DSN. Values are quoted so
// passwords with spaces or quotes survive.
func buildDSN(cfg config.DatabaseConfig) string {
	quote := func(v string) string {
		v = strings.ReplaceAll(v, `\`, `\\`)
		v = strings.ReplaceAll(v, `'`, `\'`)
		return "'" + v + "'"
	}

	parts := []string{
		"host=" + quote(cfg.Host),
		fmt.Sprintf("port=%d", cfg.Port),
		"user=" + quote(cfg.User),
		"dbname=" + quote(cfg.Database),
		fmt.Sprintf("connect_timeout=%d", int(cfg.ConnectTimeout.Seconds())),
		fmt.Sprintf("options=%s", quote(fmt.Sprintf("-c statement_timeout=%d", cfg.StatementTimeout.Milliseconds()))),
	}
	if cfg.Password != "" {
		parts = append(parts, "password="+quote(cfg.Password))
	}
	return strings.Join(parts, " ")
}

// initSchema applies the idempotent schema bootstrap.
func (db *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return classify("init_schema", err)
		}
	}
	logging.Debug().Msg("Schema bootstrap complete")
	return nil
}

// Ping verifies store connectivity.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return &ConnectionError{Err: err}
	}
	return nil
}

// Close releases the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Stats exposes pool statistics for diagnostics.
func (db *DB) Stats() sql.DBStats {
	return db.conn.Stats()
}

// queryTimeout is a hard client-side cap per statement, slightly above
// the server-side statement_timeout so the server normally fires first.
func (db *DB) queryTimeout() time.Duration {
	return db.cfg.StatementTimeout + 5*time.Second
}
