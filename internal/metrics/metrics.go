// VPP Server - Virtual Power Plant Energy Data API
// Copyright 2026 Sunware Energy
// SPDX-License-Identifier: MIT

// Package metrics defines the Prometheus instrumentation for the VPP server.
// Metrics are registered with promauto on the default registry and exposed
// at GET /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestDuration tracks HTTP request latency by method, route
	// pattern and status code.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vpp",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	// APIRequestsInFlight tracks the number of requests currently
	// being served.
	APIRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vpp",
			Subsystem: "api",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		},
	)

	// DBQueryDuration tracks store call latency by operation name.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vpp",
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query latency by operation.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5},
		},
		[]string{"operation"},
	)

	// DBQueryErrors counts failed store calls by operation name.
	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vpp",
			Subsystem: "db",
			Name:      "query_errors_total",
			Help:      "Total failed database queries by operation.",
		},
		[]string{"operation"},
	)
)

// RecordAPIRequest records one served request.
func RecordAPIRequest(method, path string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

// ObserveQuery records one store call. Call with the start time and the
// outcome once the query returns:
//
//	defer func(start time.Time) { metrics.ObserveQuery("solar_history", start, err) }(time.Now())
func ObserveQuery(operation string, start time.Time, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}
