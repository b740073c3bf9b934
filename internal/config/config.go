// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

// Package config provides the immutable application configuration.
//
// Configuration is loaded once at startup (see Load) and passed explicitly
// to every component that needs it; there is no ambient global lookup.
// Sources, highest priority last applied wins: struct defaults, optional
// YAML file, environment variables.
package config

import (
	"fmt"
	"time"
)

// Taipei is the fixed UTC+8 zone used for all time defaulting and
// response timestamps, matching the deployed system.
var Taipei = time.FixedZone("Asia/Taipei", 8*60*60)

// Valid site identifiers for solar and load readings.
const (
	SiteNorth   = "north"
	SiteCentral = "central"
	SiteSouth   = "south"
)

// ValidSites lists every known site identifier.
var ValidSites = []string{SiteNorth, SiteCentral, SiteSouth}

// Config is the top-level application configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
	Upstream UpstreamConfig `koanf:"upstream"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`

	// Pool settings. One logical transaction context per request; no
	// connection is held past the end of its request.
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`

	// ConnectTimeout bounds connection establishment.
	ConnectTimeout time.Duration `koanf:"connect_timeout"`

	// StatementTimeout bounds single statement execution server-side.
	StatementTimeout time.Duration `koanf:"statement_timeout"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// APIConfig holds query pipeline settings.
type APIConfig struct {
	// DefaultHistoryLimit applies when a history request omits limit.
	DefaultHistoryLimit int `koanf:"default_history_limit"`

	// MaxHistoryLimit is the upper bound accepted for limit.
	MaxHistoryLimit int `koanf:"max_history_limit"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// UpstreamConfig carries settings for the external data-collection
// scheduler. The token is not used by the query pipeline; it is kept on
// the configuration surface for compatibility with existing deployments.
type UpstreamConfig struct {
	YihongAPIToken string `koanf:"yihong_api_token"`
}

// Validate checks the configuration for values that would make the
// server unable to run correctly.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database port %d out of range", c.Database.Port)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.API.DefaultHistoryLimit < 1 {
		return fmt.Errorf("default history limit must be at least 1")
	}
	if c.API.MaxHistoryLimit < c.API.DefaultHistoryLimit {
		return fmt.Errorf("max history limit %d below default %d",
			c.API.MaxHistoryLimit, c.API.DefaultHistoryLimit)
	}
	return nil
}

// IsValidSite reports whether id names a known site.
func IsValidSite(id string) bool {
	for _, s := range ValidSites {
		if s == id {
			return true
		}
	}
	return false
}
