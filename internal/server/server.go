// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

// Package server serves the breach dashboard over HTTP: the HTML dashboard
// and data pages, a JSON API, chart images and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/metrics"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// DefaultReadHeaderTimeout bounds how long a client may take to send headers.
const DefaultReadHeaderTimeout = 5 * time.Second

// shutdownTimeout bounds graceful shutdown once the context is cancelled.
const shutdownTimeout = 10 * time.Second

// Server holds the loaded dataset and serves read-only views of it. The
// dataset is shared by every request goroutine and never modified.
type Server struct {
	ds       *dataset.Dataset
	logger   *slog.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	defaults pipeline.Options
	columns  []string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics records request and computation metrics in m and exposes g on
// /metrics.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithDefaults sets the selection applied for query parameters a request
// leaves out.
func WithDefaults(o pipeline.Options) Option {
	return func(s *Server) { s.defaults = o }
}

// WithColumns sets the default detail-table columns.
func WithColumns(cols []string) Option {
	return func(s *Server) { s.columns = cols }
}

// New creates a Server for ds.
func New(ds *dataset.Dataset, opts ...Option) *Server {
	s := &Server{
		ds:     ds,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the full router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

// Register registers the dashboard routes with the chi router.
func (s *Server) Register(r chi.Router) {
	r.Use(chimw.Recoverer)
	r.Use(RequestID)
	r.Use(s.instrument)

	r.Get("/", s.handleDashboard)
	r.Get("/data", s.handleData)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/result", s.handleResult)
		r.Get("/categories", s.handleCategories)
		r.Get("/records.csv", s.handleRecordsCSV)
	})
	r.Get("/charts/{name}.{ext}", s.handleChart)

	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
}

// NewHTTPServer builds an HTTP server with the project's defaults.
func NewHTTPServer(addr string, handler http.Handler, readHeaderTimeout time.Duration) *http.Server {
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = DefaultReadHeaderTimeout
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// Run serves srv until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("serving dashboard", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("serve %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down dashboard")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// compute resolves the request's selection and runs the pipeline once.
func (s *Server) compute(r *http.Request) (*pipeline.Result, error) {
	q, err := pipeline.ParseQuery(r.URL.Query())
	if err != nil {
		return nil, &badRequestError{err: err}
	}
	sel, err := mergeOptions(s.defaults, q).Selection(s.ds)
	if err != nil {
		return nil, &badRequestError{err: err}
	}

	start := time.Now()
	res, err := pipeline.Compute(s.ds, sel)
	rows := 0
	if res != nil {
		rows = res.Summary.TotalCount
	}
	s.metrics.ObserveCompute(time.Since(start), rows, err)
	return res, err
}

// mergeOptions lets each field set in the request override the server default.
func mergeOptions(defaults, req pipeline.Options) pipeline.Options {
	out := defaults
	if req.From != nil {
		out.From = req.From
	}
	if req.To != nil {
		out.To = req.To
	}
	if req.OrganizationTypes != nil {
		out.OrganizationTypes = req.OrganizationTypes
	}
	if req.Methods != nil {
		out.Methods = req.Methods
	}
	if req.Primary != "" {
		out.Primary = req.Primary
	}
	return out
}
