// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package models

// ReserveRecord is one row of the taipower_reserve_data table: one
// (tran_date, tran_hour) slot of the Taipower day-ahead reserve market.
// SR is spinning reserve, SUP is supplemental reserve.
type ReserveRecord struct {
	ID       int64    `json:"id"`
	TranDate DateOnly `json:"tran_date"`
	TranHour int      `json:"tran_hour"`

	SRBid         *float64 `json:"sr_bid"`
	SRBidQSE      *float64 `json:"sr_bid_qse"`
	SRBidNontrade *float64 `json:"sr_bid_nontrade"`
	SRPrice       *float64 `json:"sr_price"`
	SRPerfPrice1  *float64 `json:"sr_perf_price_1"`
	SRPerfPrice2  *float64 `json:"sr_perf_price_2"`
	SRPerfPrice3  *float64 `json:"sr_perf_price_3"`

	SupBid         *float64 `json:"sup_bid"`
	SupBidQSE      *float64 `json:"sup_bid_qse"`
	SupBidNontrade *float64 `json:"sup_bid_nontrade"`
	SupPrice       *float64 `json:"sup_price"`

	CreatedAt *LocalTime `json:"created_at"`
	UpdatedAt *LocalTime `json:"updated_at"`
}

// ReserveDayResponse wraps one calendar day of reserve rows.
type ReserveDayResponse struct {
	Date  string           `json:"date"`
	Count int              `json:"count"`
	Data  []*ReserveRecord `json:"data"`
}

// ReserveHistoryResponse wraps a bounded date window of reserve rows.
type ReserveHistoryResponse struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Count     int              `json:"count"`
	Data      []*ReserveRecord `json:"data"`
}

// ReserveStatistics carries one day's price/capacity aggregates as
// computed by the store. Pointer fields mirror the SQL aggregates,
// which are NULL when every underlying value is NULL.
type ReserveStatistics struct {
	TranDate         DateOnly
	AvgSRPrice       *float64
	MaxSRPrice       *float64
	MinSRPrice       *float64
	AvgSupPrice      *float64
	MaxSupPrice      *float64
	MinSupPrice      *float64
	TotalSRCapacity  *float64
	TotalSupCapacity *float64
}

// ReserveBandStatistics is the per-band (sr or sup) statistics block,
// with missing aggregates reported as 0.
type ReserveBandStatistics struct {
	AvgPrice      float64 `json:"avg_price"`
	MaxPrice      float64 `json:"max_price"`
	MinPrice      float64 `json:"min_price"`
	TotalCapacity float64 `json:"total_capacity"`
}

// ReserveStatisticsBody groups the two reserve bands.
type ReserveStatisticsBody struct {
	SR  ReserveBandStatistics `json:"sr"`
	Sup ReserveBandStatistics `json:"sup"`
}

// ReserveStatisticsResponse is the per-day statistics view.
type ReserveStatisticsResponse struct {
	Date       string                `json:"date"`
	Statistics ReserveStatisticsBody `json:"statistics"`
}

// ToResponse converts raw aggregates to the wire view for date.
func (s *ReserveStatistics) ToResponse(date string) *ReserveStatisticsResponse {
	return &ReserveStatisticsResponse{
		Date: date,
		Statistics: ReserveStatisticsBody{
			SR: ReserveBandStatistics{
				AvgPrice:      coalesce(s.AvgSRPrice),
				MaxPrice:      coalesce(s.MaxSRPrice),
				MinPrice:      coalesce(s.MinSRPrice),
				TotalCapacity: coalesce(s.TotalSRCapacity),
			},
			Sup: ReserveBandStatistics{
				AvgPrice:      coalesce(s.AvgSupPrice),
				MaxPrice:      coalesce(s.MaxSupPrice),
				MinPrice:      coalesce(s.MinSupPrice),
				TotalCapacity: coalesce(s.TotalSupCapacity),
			},
		},
	}
}
