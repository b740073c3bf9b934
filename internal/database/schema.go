// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package database

// Schema bootstrap statements, applied idempotently at startup. The
// table and index names are owned by the deployed system and must not
// change.

const createSolarTableSQL = `
CREATE TABLE IF NOT EXISTS solar_data (
    id SERIAL PRIMARY KEY,
    site_id VARCHAR(20) NOT NULL,
    datetime TIMESTAMP NOT NULL,
    daily_generation NUMERIC(10,2),
    solar_radiation NUMERIC(10,2),
    ac_avg_voltage NUMERIC(10,2),
    ac_total_power NUMERIC(10,2),
    ac_total_current NUMERIC(10,2),
    dc_avg_voltage NUMERIC(10,2),
    dc_total_power NUMERIC(10,2),
    dc_total_current NUMERIC(10,2),
    module_temperature NUMERIC(10,2),
    total_accumulated_generation NUMERIC(15,2),
    co2_reduction NUMERIC(15,3),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(site_id, datetime)
)`

const createLoadTableSQL = `
CREATE TABLE IF NOT EXISTS load_data (
    id SERIAL PRIMARY KEY,
    site_id VARCHAR(20) NOT NULL,
    datetime TIMESTAMP NOT NULL,
    load_value NUMERIC(10,2),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(site_id, datetime)
)`

const createReserveTableSQL = `
CREATE TABLE IF NOT EXISTS taipower_reserve_data (
    id SERIAL PRIMARY KEY,
    tran_date DATE NOT NULL,
    tran_hour INTEGER NOT NULL,
    sr_bid NUMERIC(10,2),
    sr_bid_qse NUMERIC(10,2),
    sr_bid_nontrade NUMERIC(10,2),
    sr_price NUMERIC(10,2),
    sr_perf_price_1 NUMERIC(10,2),
    sr_perf_price_2 NUMERIC(10,2),
    sr_perf_price_3 NUMERIC(10,2),
    sup_bid NUMERIC(10,2),
    sup_bid_qse NUMERIC(10,2),
    sup_bid_nontrade NUMERIC(10,2),
    sup_price NUMERIC(10,2),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(tran_date, tran_hour)
)`

const createUploadTableSQL = `
CREATE TABLE IF NOT EXISTS stu (
    id SERIAL PRIMARY KEY,
    device_id VARCHAR(50) NOT NULL,
    value NUMERIC(10,2),
    timestamp TIMESTAMP NOT NULL
)`

// schemaStatements lists every bootstrap statement in execution order.
var schemaStatements = []string{
	createSolarTableSQL,
	"CREATE INDEX IF NOT EXISTS idx_solar_site_datetime ON solar_data(site_id, datetime DESC)",
	"CREATE INDEX IF NOT EXISTS idx_solar_datetime ON solar_data(datetime DESC)",
	createLoadTableSQL,
	"CREATE INDEX IF NOT EXISTS idx_load_site_datetime ON load_data(site_id, datetime DESC)",
	"CREATE INDEX IF NOT EXISTS idx_load_datetime ON load_data(datetime DESC)",
	createReserveTableSQL,
	"CREATE INDEX IF NOT EXISTS idx_taipower_date ON taipower_reserve_data(tran_date DESC)",
	"CREATE INDEX IF NOT EXISTS idx_taipower_date_hour ON taipower_reserve_data(tran_date DESC, tran_hour)",
	createUploadTableSQL,
	"CREATE INDEX IF NOT EXISTS idx_stu_device_timestamp ON stu(device_id, timestamp DESC)",
}
