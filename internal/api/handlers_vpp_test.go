// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sunware/vppserver/internal/database"
	"github.com/sunware/vppserver/internal/models"
)

var readingTime = time.Date(2026, 2, 3, 14, 0, 0, 0, time.UTC)

func TestRealdata(t *testing.T) {
	store := &mockStore{
		latestSolarAllSitesFn: func(ctx context.Context) ([]*models.SolarReading, error) {
			return []*models.SolarReading{
				solarRow("central", readingTime, 80),
				solarRow("north", readingTime, 120),
			}, nil
		},
		latestLoadAllSitesFn: func(ctx context.Context) ([]*models.LoadReading, error) {
			return []*models.LoadReading{loadRow("north", readingTime, 95.5)}, nil
		},
	}

	rec := doRequest(t, newTestRouter(store), http.MethodGet, "/api/vpp/realdata", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp models.RealdataResponse
	decodeBody(t, rec, &resp)

	if resp.Timestamp != "2026-02-03T14:30:05+08:00" {
		t.Errorf("timestamp = %q, want fixed Taipei stamp", resp.Timestamp)
	}
	if len(resp.Sites) != 2 {
		t.Fatalf("sites = %d, want 2", len(resp.Sites))
	}

	north := resp.Sites["north"]
	if north == nil || north.Solar == nil || north.Load == nil {
		t.Fatalf("north = %+v, want solar and load", north)
	}
	if north.Solar.DailyGeneration != 120 {
		t.Errorf("north daily_generation = %v, want 120", north.Solar.DailyGeneration)
	}
	if north.Load.Value != 95.5 {
		t.Errorf("north load value = %v, want 95.5", north.Load.Value)
	}

	central := resp.Sites["central"]
	if central == nil || central.Solar == nil {
		t.Fatal("central solar missing")
	}
	if central.Load != nil {
		t.Errorf("central load = %+v, want null", central.Load)
	}
	// nulls in the source row surface as zeros in the realdata view
	if central.Solar.SolarRadiation != 0 {
		t.Errorf("central solar_radiation = %v, want 0", central.Solar.SolarRadiation)
	}
}

func TestSiteRealdata(t *testing.T) {
	store := &mockStore{
		latestSolarFn: func(ctx context.Context, siteID string) (*models.SolarReading, error) {
			return solarRow(siteID, readingTime, 120), nil
		},
	}

	rec := doRequest(t, newTestRouter(store), http.MethodGet, "/api/vpp/realdata/north", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp models.SiteRealdataResponse
	decodeBody(t, rec, &resp)
	if resp.SiteID != "north" {
		t.Errorf("site_id = %q, want north", resp.SiteID)
	}
	if resp.Solar == nil {
		t.Fatal("solar missing")
	}
	if resp.Solar.SolarRadiation != nil {
		t.Errorf("solar_radiation = %v, want null", *resp.Solar.SolarRadiation)
	}
	if resp.Load != nil {
		t.Errorf("load = %+v, want null", resp.Load)
	}
}

func TestSiteRealdataUnknownSite(t *testing.T) {
	rec := doRequest(t, newTestRouter(&mockStore{}), http.MethodGet, "/api/vpp/realdata/taipei", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d, want 422: %s", rec.Code, rec.Body.String())
	}

	details := detailList(t, rec)
	if len(details) != 1 {
		t.Fatalf("details = %+v, want exactly one", details)
	}
	if details[0].Loc[0] != "path" || details[0].Loc[1] != "site_id" {
		t.Errorf("loc = %v, want [path site_id]", details[0].Loc)
	}
	if details[0].Type != "enum" {
		t.Errorf("type = %q, want enum", details[0].Type)
	}
}

func TestSolarLatestAllSites(t *testing.T) {
	store := &mockStore{
		latestSolarAllSitesFn: func(ctx context.Context) ([]*models.SolarReading, error) {
			return []*models.SolarReading{
				solarRow("central", readingTime, 80),
				solarRow("north", readingTime, 120),
				solarRow("south", readingTime, 60),
			}, nil
		},
	}

	rec := doRequest(t, newTestRouter(store), http.MethodGet, "/api/vpp/solar/latest", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}

	var rows []*models.SolarReading
	decodeBody(t, rec, &rows)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].SiteID != "central" {
		t.Errorf("rows[0].site_id = %q, want central", rows[0].SiteID)
	}
}

func TestSolarLatestSingleSite(t *testing.T) {
	store := &mockStore{
		latestSolarFn: func(ctx context.Context, siteID string) (*models.SolarReading, error) {
			if siteID != "south" {
				t.Errorf("siteID = %q, want south", siteID)
			}
			return solarRow(siteID, readingTime, 60), nil
		},
	}

	rec := doRequest(t, newTestRouter(store), http.MethodGet, "/api/vpp/solar/latest?site_id=south", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}

	var row models.SolarReading
	decodeBody(t, rec, &row)
	if row.SiteID != "south" {
		t.Errorf("site_id = %q, want south", row.SiteID)
	}
	if row.Datetime.Format("2006-01-02T15:04:05") != "2026-02-03T14:00:00" {
		t.Errorf("datetime = %v", row.Datetime)
	}
}

func TestSolarLatestSingleSiteAbsent(t *testing.T) {
	rec := doRequest(t, newTestRouter(&mockStore{}), http.MethodGet, "/api/vpp/solar/latest?site_id=south", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	assertJSONEqual(t, rec.Body.String(), "null")
}

func TestSolarLatestInvalidSite(t *testing.T) {
	rec := doRequest(t, newTestRouter(&mockStore{}), http.MethodGet, "/api/vpp/solar/latest?site_id=east", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d, want 422", rec.Code)
	}
	if fields := detailFields(t, rec); fields["site_id"] != "enum" {
		t.Errorf("fields = %v, want site_id enum", fields)
	}
}

func TestSolarHistoryDefaultWindow(t *testing.T) {
	var gotStart, gotEnd time.Time
	var gotLimit int
	store := &mockStore{
		solarHistoryFn: func(ctx context.Context, siteID string, start, end time.Time, limit int) ([]*models.SolarReading, error) {
			gotStart, gotEnd, gotLimit = start, end, limit
			return []*models.SolarReading{solarRow(siteID, start.Add(time.Hour), 10)}, nil
		},
	}

	rec := doRequest(t, newTestRouter(store), http.MethodGet, "/api/vpp/solar/history?site_id=north", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	// end defaults to now (Taipei wall clock), start to end minus 7 days
	wantEnd := time.Date(2026, 2, 3, 14, 30, 5, 0, time.UTC)
	if !gotEnd.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", gotEnd, wantEnd)
	}
	if !gotStart.Equal(wantEnd.AddDate(0, 0, -7)) {
		t.Errorf("start = %v, want 7 days before end", gotStart)
	}
	if gotLimit != 1000 {
		t.Errorf("limit = %d, want default 1000", gotLimit)
	}

	var resp models.SolarHistoryResponse
	decodeBody(t, rec, &resp)
	if resp.Count != 1 || len(resp.Data) != 1 {
		t.Errorf("count = %d, data = %d, want 1", resp.Count, len(resp.Data))
	}
	if resp.EndDate.Format("2006-01-02T15:04:05") != "2026-02-03T14:30:05" {
		t.Errorf("end_date = %v", resp.EndDate)
	}
}

func TestSolarHistoryExplicitWindow(t *testing.T) {
	var gotStart, gotEnd time.Time
	store := &mockStore{
		solarHistoryFn: func(ctx context.Context, siteID string, start, end time.Time, limit int) ([]*models.SolarReading, error) {
			gotStart, gotEnd = start, end
			return []*models.SolarReading{}, nil
		},
	}

	rec := doRequest(t, newTestRouter(store), http.MethodGet,
		"/api/vpp/solar/history?site_id=north&start_date=2026-01-01&end_date=2026-01-07&limit=50", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	if want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC); !gotStart.Equal(want) {
		t.Errorf("start = %v, want %v (clamped to 00:00:00)", gotStart, want)
	}
	if want := time.Date(2026, 1, 7, 23, 59, 59, 0, time.UTC); !gotEnd.Equal(want) {
		t.Errorf("end = %v, want %v (clamped to 23:59:59)", gotEnd, want)
	}

	var resp models.SolarHistoryResponse
	decodeBody(t, rec, &resp)
	if resp.Count != 0 || resp.Data == nil || len(resp.Data) != 0 {
		t.Errorf("empty window: count = %d, data = %v", resp.Count, resp.Data)
	}
}

func TestSolarHistoryValidation(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantFields map[string]string
	}{
		{
			name:       "missing site_id",
			target:     "/api/vpp/solar/history",
			wantFields: map[string]string{"site_id": "missing"},
		},
		{
			name:       "bad limit type",
			target:     "/api/vpp/solar/history?site_id=north&limit=many",
			wantFields: map[string]string{"limit": "type_error.integer"},
		},
		{
			name:       "limit out of range",
			target:     "/api/vpp/solar/history?site_id=north&limit=20000",
			wantFields: map[string]string{"limit": "value_error.number.not_in_range"},
		},
		{
			name:       "limit zero",
			target:     "/api/vpp/solar/history?site_id=north&limit=0",
			wantFields: map[string]string{"limit": "value_error.number.not_in_range"},
		},
		{
			name:   "every field wrong is listed",
			target: "/api/vpp/solar/history?site_id=east&start_date=01/01/2026&limit=0",
			wantFields: map[string]string{
				"site_id":    "enum",
				"start_date": "value_error.datetime",
				"limit":      "value_error.number.not_in_range",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestRouter(&mockStore{}), http.MethodGet, tt.target, nil)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("code = %d, want 422: %s", rec.Code, rec.Body.String())
			}
			fields := detailFields(t, rec)
			if len(fields) != len(tt.wantFields) {
				t.Errorf("fields = %v, want %v", fields, tt.wantFields)
			}
			for field, typ := range tt.wantFields {
				if fields[field] != typ {
					t.Errorf("field %s type = %q, want %q", field, fields[field], typ)
				}
			}
		})
	}
}

func TestLoadHistoryAscendingPassthrough(t *testing.T) {
	early := loadRow("north", readingTime.Add(-time.Hour), 90)
	late := loadRow("north", readingTime, 95)
	store := &mockStore{
		loadHistoryFn: func(ctx context.Context, siteID string, start, end time.Time, limit int) ([]*models.LoadReading, error) {
			return []*models.LoadReading{early, late}, nil
		},
	}

	rec := doRequest(t, newTestRouter(store), http.MethodGet, "/api/vpp/load/history?site_id=north", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}

	var resp models.LoadHistoryResponse
	decodeBody(t, rec, &resp)
	if resp.Count != 2 {
		t.Fatalf("count = %d, want 2", resp.Count)
	}
	if !resp.Data[0].Datetime.Before(resp.Data[1].Datetime.Time) {
		t.Error("rows not ascending by timestamp")
	}
}

func TestSummary(t *testing.T) {
	store := &mockStore{
		summaryTotalsFn: func(ctx context.Context) (*models.SummaryTotals, error) {
			return &models.SummaryTotals{TotalGeneration: 2500, TotalLoad: 1800}, nil
		},
		latestSolarAllSitesFn: func(ctx context.Context) ([]*models.SolarReading, error) {
			return []*models.SolarReading{
				solarRow("central", readingTime, 800),
				solarRow("north", readingTime, 1200),
				solarRow("south", readingTime, 500),
			}, nil
		},
	}

	rec := doRequest(t, newTestRouter(store), http.MethodGet, "/api/vpp/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}

	var resp models.SummaryResponse
	decodeBody(t, rec, &resp)
	if resp.TotalSites != 3 {
		t.Errorf("total_sites = %d, want 3", resp.TotalSites)
	}
	if resp.Summary.TotalGeneration != 2500 || resp.Summary.TotalLoad != 1800 {
		t.Errorf("summary = %+v", resp.Summary)
	}
	if resp.Summary.NetGeneration != 700 {
		t.Errorf("net_generation = %v, want 700", resp.Summary.NetGeneration)
	}
	if len(resp.Sites) != 3 {
		t.Fatalf("sites = %d, want 3", len(resp.Sites))
	}
	if resp.Sites[1].SiteID != "north" || resp.Sites[1].DailyGeneration != 1200 {
		t.Errorf("sites[1] = %+v", resp.Sites[1])
	}
}

func TestStoreErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantDetail string
	}{
		{
			name:       "query error is a generic 500",
			err:        &database.QueryError{Op: "solar_latest_all", Err: errors.New("relation does not exist")},
			wantCode:   http.StatusInternalServerError,
			wantDetail: "query failed",
		},
		{
			name:       "connection error is a 503",
			err:        &database.ConnectionError{Err: errors.New("connection refused")},
			wantCode:   http.StatusServiceUnavailable,
			wantDetail: "database unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{
				latestSolarAllSitesFn: func(ctx context.Context) ([]*models.SolarReading, error) {
					return nil, tt.err
				},
			}

			rec := doRequest(t, newTestRouter(store), http.MethodGet, "/api/vpp/solar/latest", nil)
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := detailString(t, rec); got != tt.wantDetail {
				t.Errorf("detail = %q, want %q", got, tt.wantDetail)
			}
			// the store's error text must never leak
			body := rec.Body.String()
			if strings.Contains(body, "relation") || strings.Contains(body, "connection refused") {
				t.Errorf("body leaks store error text: %s", body)
			}
		})
	}
}

func TestReadsAreIdempotent(t *testing.T) {
	store := &mockStore{
		latestSolarAllSitesFn: func(ctx context.Context) ([]*models.SolarReading, error) {
			return []*models.SolarReading{solarRow("north", readingTime, 120)}, nil
		},
		latestLoadAllSitesFn: func(ctx context.Context) ([]*models.LoadReading, error) {
			return []*models.LoadReading{loadRow("north", readingTime, 95)}, nil
		},
	}
	router := newTestRouter(store)

	first := doRequest(t, router, http.MethodGet, "/api/vpp/realdata", nil)
	second := doRequest(t, router, http.MethodGet, "/api/vpp/realdata", nil)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("codes = %d/%d, want 200", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("identical reads differ:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}
