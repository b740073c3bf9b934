// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/sunware/vppserver/internal/config"
	"github.com/sunware/vppserver/internal/models"
)

// fixedNow is the deterministic clock used by every handler test:
// 2026-02-03 14:30:05 Taipei time.
var fixedNow = time.Date(2026, 2, 3, 14, 30, 5, 0, config.Taipei)

// mockStore implements Store with overridable function fields. Fields
// left nil return empty results.
type mockStore struct {
	pingFn                func(ctx context.Context) error
	latestSolarFn         func(ctx context.Context, siteID string) (*models.SolarReading, error)
	latestSolarAllSitesFn func(ctx context.Context) ([]*models.SolarReading, error)
	solarHistoryFn        func(ctx context.Context, siteID string, start, end time.Time, limit int) ([]*models.SolarReading, error)
	latestLoadFn          func(ctx context.Context, siteID string) (*models.LoadReading, error)
	latestLoadAllSitesFn  func(ctx context.Context) ([]*models.LoadReading, error)
	loadHistoryFn         func(ctx context.Context, siteID string, start, end time.Time, limit int) ([]*models.LoadReading, error)
	summaryTotalsFn       func(ctx context.Context) (*models.SummaryTotals, error)
	latestReserveDayFn    func(ctx context.Context) ([]*models.ReserveRecord, error)
	reserveByDateFn       func(ctx context.Context, date time.Time) ([]*models.ReserveRecord, error)
	reserveHistoryFn      func(ctx context.Context, start, end time.Time, limit int) ([]*models.ReserveRecord, error)
	reserveStatisticsFn   func(ctx context.Context, date time.Time) (*models.ReserveStatistics, error)
	reserveByHourFn       func(ctx context.Context, date time.Time, hour int) (*models.ReserveRecord, error)
	insertDeviceReadingFn func(ctx context.Context, deviceID string, value float64, ts time.Time) error
	deviceHistoryFn       func(ctx context.Context, deviceID string, limit int) ([]*models.UploadRecord, error)
}

func (m *mockStore) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func (m *mockStore) LatestSolar(ctx context.Context, siteID string) (*models.SolarReading, error) {
	if m.latestSolarFn != nil {
		return m.latestSolarFn(ctx, siteID)
	}
	return nil, nil
}

func (m *mockStore) LatestSolarAllSites(ctx context.Context) ([]*models.SolarReading, error) {
	if m.latestSolarAllSitesFn != nil {
		return m.latestSolarAllSitesFn(ctx)
	}
	return []*models.SolarReading{}, nil
}

func (m *mockStore) SolarHistory(ctx context.Context, siteID string, start, end time.Time, limit int) ([]*models.SolarReading, error) {
	if m.solarHistoryFn != nil {
		return m.solarHistoryFn(ctx, siteID, start, end, limit)
	}
	return []*models.SolarReading{}, nil
}

func (m *mockStore) LatestLoad(ctx context.Context, siteID string) (*models.LoadReading, error) {
	if m.latestLoadFn != nil {
		return m.latestLoadFn(ctx, siteID)
	}
	return nil, nil
}

func (m *mockStore) LatestLoadAllSites(ctx context.Context) ([]*models.LoadReading, error) {
	if m.latestLoadAllSitesFn != nil {
		return m.latestLoadAllSitesFn(ctx)
	}
	return []*models.LoadReading{}, nil
}

func (m *mockStore) LoadHistory(ctx context.Context, siteID string, start, end time.Time, limit int) ([]*models.LoadReading, error) {
	if m.loadHistoryFn != nil {
		return m.loadHistoryFn(ctx, siteID, start, end, limit)
	}
	return []*models.LoadReading{}, nil
}

func (m *mockStore) SummaryTotals(ctx context.Context) (*models.SummaryTotals, error) {
	if m.summaryTotalsFn != nil {
		return m.summaryTotalsFn(ctx)
	}
	return &models.SummaryTotals{}, nil
}

func (m *mockStore) LatestReserveDay(ctx context.Context) ([]*models.ReserveRecord, error) {
	if m.latestReserveDayFn != nil {
		return m.latestReserveDayFn(ctx)
	}
	return []*models.ReserveRecord{}, nil
}

func (m *mockStore) ReserveByDate(ctx context.Context, date time.Time) ([]*models.ReserveRecord, error) {
	if m.reserveByDateFn != nil {
		return m.reserveByDateFn(ctx, date)
	}
	return []*models.ReserveRecord{}, nil
}

func (m *mockStore) ReserveHistory(ctx context.Context, start, end time.Time, limit int) ([]*models.ReserveRecord, error) {
	if m.reserveHistoryFn != nil {
		return m.reserveHistoryFn(ctx, start, end, limit)
	}
	return []*models.ReserveRecord{}, nil
}

func (m *mockStore) ReserveStatistics(ctx context.Context, date time.Time) (*models.ReserveStatistics, error) {
	if m.reserveStatisticsFn != nil {
		return m.reserveStatisticsFn(ctx, date)
	}
	return nil, nil
}

func (m *mockStore) ReserveByHour(ctx context.Context, date time.Time, hour int) (*models.ReserveRecord, error) {
	if m.reserveByHourFn != nil {
		return m.reserveByHourFn(ctx, date, hour)
	}
	return nil, nil
}

func (m *mockStore) InsertDeviceReading(ctx context.Context, deviceID string, value float64, ts time.Time) error {
	if m.insertDeviceReadingFn != nil {
		return m.insertDeviceReadingFn(ctx, deviceID, value, ts)
	}
	return nil
}

func (m *mockStore) DeviceHistory(ctx context.Context, deviceID string, limit int) ([]*models.UploadRecord, error) {
	if m.deviceHistoryFn != nil {
		return m.deviceHistoryFn(ctx, deviceID, limit)
	}
	return []*models.UploadRecord{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Host: "localhost", Port: 5432, Database: "vpp"},
		Server:   config.ServerConfig{Host: "127.0.0.1", Port: 8000, Timeout: 30 * time.Second},
		API: config.APIConfig{
			DefaultHistoryLimit: 1000,
			MaxHistoryLimit:     10000,
			RateLimitDisabled:   true,
			CORSOrigins:         []string{"*"},
		},
		Logging: config.LoggingConfig{Level: "disabled"},
	}
}

// newTestRouter builds the full route tree over a mock store with a
// fixed clock.
func newTestRouter(store Store) http.Handler {
	cfg := testConfig()
	h := NewHandler(store, cfg)
	h.now = func() time.Time { return fixedNow }
	return NewRouter(h, cfg)
}

func doRequest(t *testing.T, handler http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
}

// detailString extracts a plain string detail from an error body.
func detailString(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Detail string `json:"detail"`
	}
	decodeBody(t, rec, &env)
	return env.Detail
}

// detailList extracts a validation detail list from an error body.
func detailList(t *testing.T, rec *httptest.ResponseRecorder) []struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
} {
	t.Helper()
	var env struct {
		Detail []struct {
			Loc  []string `json:"loc"`
			Msg  string   `json:"msg"`
			Type string   `json:"type"`
		} `json:"detail"`
	}
	decodeBody(t, rec, &env)
	return env.Detail
}

// detailFields returns the set of field names in a validation body.
func detailFields(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	fields := map[string]string{}
	for _, d := range detailList(t, rec) {
		if len(d.Loc) == 2 {
			fields[d.Loc[1]] = d.Type
		}
	}
	return fields
}

func floatPtr(v float64) *float64 { return &v }

func solarRow(siteID string, ts time.Time, gen float64) *models.SolarReading {
	return &models.SolarReading{
		ID:              1,
		SiteID:          siteID,
		Datetime:        models.NewLocalTime(ts),
		DailyGeneration: floatPtr(gen),
		ACTotalPower:    floatPtr(gen / 2),
	}
}

func loadRow(siteID string, ts time.Time, value float64) *models.LoadReading {
	return &models.LoadReading{
		ID:        1,
		SiteID:    siteID,
		Datetime:  models.NewLocalTime(ts),
		LoadValue: floatPtr(value),
	}
}

func reserveRow(date time.Time, hour int, srPrice float64) *models.ReserveRecord {
	return &models.ReserveRecord{
		ID:       int64(hour + 1),
		TranDate: models.NewDateOnly(date),
		TranHour: hour,
		SRPrice:  floatPtr(srPrice),
		SupBid:   floatPtr(100),
	}
}

// assertJSONEqual compares two raw JSON bodies structurally.
func assertJSONEqual(t *testing.T, got, want string) {
	t.Helper()
	var g, w interface{}
	if err := json.Unmarshal([]byte(got), &g); err != nil {
		t.Fatalf("invalid got JSON %q: %v", got, err)
	}
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("invalid want JSON %q: %v", want, err)
	}
	gb, _ := json.Marshal(g)
	wb, _ := json.Marshal(w)
	if string(gb) != string(wb) {
		t.Errorf("JSON mismatch:\n got: %s\nwant: %s", gb, wb)
	}
}
