// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

// Package metrics defines the Prometheus collectors for pipeline computations
// and the HTTP dashboard.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for dashboard computations and requests.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Pipeline computations by outcome ("ok", "error")
	Computations *prometheus.CounterVec

	// Duration of one filter-and-aggregate pass
	ComputeLatency prometheus.Histogram

	// Rows left after filtering
	FilteredRows prometheus.Histogram

	// HTTP requests by route pattern and status code
	Requests *prometheus.CounterVec

	// HTTP request latency by route pattern
	RequestLatency *prometheus.HistogramVec

	// Chart renders by chart name and outcome ("ok", "empty", "error")
	ChartRenders *prometheus.CounterVec
}

// New creates a Metrics instance with every collector registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Computations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "breachdash_pipeline_computations_total",
			Help: "Total filter-and-aggregate computations by outcome",
		}, []string{"outcome"}),

		ComputeLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "breachdash_pipeline_compute_duration_seconds",
			Help:    "Duration of a filter-and-aggregate computation",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),

		FilteredRows: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "breachdash_pipeline_filtered_rows",
			Help:    "Number of records left after applying the selection",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 5000},
		}),

		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "breachdash_http_requests_total",
			Help: "Total HTTP requests by route and status code",
		}, []string{"route", "code"}),

		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "breachdash_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),

		ChartRenders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "breachdash_chart_renders_total",
			Help: "Total chart renders by chart and outcome",
		}, []string{"chart", "outcome"}),
	}
}

// ObserveCompute records one pipeline computation.
func (m *Metrics) ObserveCompute(d time.Duration, rows int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.Computations.WithLabelValues("error").Inc()
		return
	}
	m.Computations.WithLabelValues("ok").Inc()
	m.ComputeLatency.Observe(d.Seconds())
	m.FilteredRows.Observe(float64(rows))
}

// ObserveRequest records a served HTTP request.
func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.RequestLatency.WithLabelValues(route).Observe(d.Seconds())
}

// IncrementChart records a chart render outcome.
func (m *Metrics) IncrementChart(chart, outcome string) {
	if m != nil {
		m.ChartRenders.WithLabelValues(chart, outcome).Inc()
	}
}
