// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package models

// SolarReading is one row of the solar_data table. Numeric readings are
// nullable because collectors occasionally report partial records.
type SolarReading struct {
	ID                         int64      `json:"id"`
	SiteID                     string     `json:"site_id"`
	Datetime                   LocalTime  `json:"datetime"`
	DailyGeneration            *float64   `json:"daily_generation"`
	SolarRadiation             *float64   `json:"solar_radiation"`
	ACAvgVoltage               *float64   `json:"ac_avg_voltage"`
	ACTotalPower               *float64   `json:"ac_total_power"`
	ACTotalCurrent             *float64   `json:"ac_total_current"`
	DCAvgVoltage               *float64   `json:"dc_avg_voltage"`
	DCTotalPower               *float64   `json:"dc_total_power"`
	DCTotalCurrent             *float64   `json:"dc_total_current"`
	ModuleTemperature          *float64   `json:"module_temperature"`
	TotalAccumulatedGeneration *float64   `json:"total_accumulated_generation"`
	CO2Reduction               *float64   `json:"co2_reduction"`
	CreatedAt                  *LocalTime `json:"created_at"`
}

// LoadReading is one row of the load_data table.
type LoadReading struct {
	ID        int64      `json:"id"`
	SiteID    string     `json:"site_id"`
	Datetime  LocalTime  `json:"datetime"`
	LoadValue *float64   `json:"load_value"`
	CreatedAt *LocalTime `json:"created_at"`
}

// coalesce maps a missing numeric reading to 0 for the realdata and
// summary views, matching the deployed behavior.
func coalesce(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// RealdataSolar is the compact solar view used by the realdata endpoint.
// Missing readings are reported as 0 rather than null.
type RealdataSolar struct {
	Datetime                   LocalTime `json:"datetime"`
	DailyGeneration            float64   `json:"daily_generation"`
	SolarRadiation             float64   `json:"solar_radiation"`
	ACAvgVoltage               float64   `json:"ac_avg_voltage"`
	ACTotalPower               float64   `json:"ac_total_power"`
	ACTotalCurrent             float64   `json:"ac_total_current"`
	DCAvgVoltage               float64   `json:"dc_avg_voltage"`
	DCTotalPower               float64   `json:"dc_total_power"`
	DCTotalCurrent             float64   `json:"dc_total_current"`
	ModuleTemperature          float64   `json:"module_temperature"`
	TotalAccumulatedGeneration float64   `json:"total_accumulated_generation"`
	CO2Reduction               float64   `json:"co2_reduction"`
}

// RealdataLoad is the compact load view used by the realdata endpoint.
type RealdataLoad struct {
	Datetime LocalTime `json:"datetime"`
	Value    float64   `json:"value"`
}

// ToRealdata converts a full solar row to its compact realdata view.
func (r *SolarReading) ToRealdata() *RealdataSolar {
	return &RealdataSolar{
		Datetime:                   r.Datetime,
		DailyGeneration:            coalesce(r.DailyGeneration),
		SolarRadiation:             coalesce(r.SolarRadiation),
		ACAvgVoltage:               coalesce(r.ACAvgVoltage),
		ACTotalPower:               coalesce(r.ACTotalPower),
		ACTotalCurrent:             coalesce(r.ACTotalCurrent),
		DCAvgVoltage:               coalesce(r.DCAvgVoltage),
		DCTotalPower:               coalesce(r.DCTotalPower),
		DCTotalCurrent:             coalesce(r.DCTotalCurrent),
		ModuleTemperature:          coalesce(r.ModuleTemperature),
		TotalAccumulatedGeneration: coalesce(r.TotalAccumulatedGeneration),
		CO2Reduction:               coalesce(r.CO2Reduction),
	}
}

// ToRealdata converts a full load row to its compact realdata view.
func (r *LoadReading) ToRealdata() *RealdataLoad {
	return &RealdataLoad{
		Datetime: r.Datetime,
		Value:    coalesce(r.LoadValue),
	}
}

// SiteRealdata pairs the latest solar and load views for one site.
// Either side is null when the site has no rows of that kind.
type SiteRealdata struct {
	Solar *RealdataSolar `json:"solar"`
	Load  *RealdataLoad  `json:"load"`
}

// RealdataResponse is the all-sites realtime view.
type RealdataResponse struct {
	Timestamp string                   `json:"timestamp"`
	Sites     map[string]*SiteRealdata `json:"sites"`
}

// SiteRealdataResponse is the single-site realtime view. Solar and load
// carry the full rows here, null when the site has no data.
type SiteRealdataResponse struct {
	SiteID    string        `json:"site_id"`
	Timestamp string        `json:"timestamp"`
	Solar     *SolarReading `json:"solar"`
	Load      *LoadReading  `json:"load"`
}

// SolarHistoryResponse wraps a bounded window of solar rows.
type SolarHistoryResponse struct {
	SiteID    string          `json:"site_id"`
	StartDate LocalTime       `json:"start_date"`
	EndDate   LocalTime       `json:"end_date"`
	Count     int             `json:"count"`
	Data      []*SolarReading `json:"data"`
}

// LoadHistoryResponse wraps a bounded window of load rows.
type LoadHistoryResponse struct {
	SiteID    string         `json:"site_id"`
	StartDate LocalTime      `json:"start_date"`
	EndDate   LocalTime      `json:"end_date"`
	Count     int            `json:"count"`
	Data      []*LoadReading `json:"data"`
}

// SummaryTotals carries the fleet-wide aggregates computed by the store.
type SummaryTotals struct {
	TotalGeneration float64
	TotalLoad       float64
}

// SiteSummary is one site's contribution in the summary view.
type SiteSummary struct {
	SiteID          string  `json:"site_id"`
	DailyGeneration float64 `json:"daily_generation"`
	ACTotalPower    float64 `json:"ac_total_power"`
}

// SummaryBody is the aggregate block of the summary view.
type SummaryBody struct {
	TotalGeneration float64 `json:"total_generation"`
	TotalLoad       float64 `json:"total_load"`
	NetGeneration   float64 `json:"net_generation"`
}

// SummaryResponse is the fleet summary view.
type SummaryResponse struct {
	Timestamp  string         `json:"timestamp"`
	TotalSites int            `json:"total_sites"`
	Summary    SummaryBody    `json:"summary"`
	Sites      []*SiteSummary `json:"sites"`
}
