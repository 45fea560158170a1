// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/metrics"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/server"
)

// Serve-specific flag values.
var (
	serveSel  selectionFlags
	serveAddr string
)

// serveCmd runs the HTTP dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard over HTTP",
	Long: `Load the dataset once and serve it over HTTP:
  /                  dashboard with charts and filter form
  /data              info cards, category counts and the record table
  /api/result        aggregates as JSON (rows=true adds records)
  /api/categories    filterable values and year range
  /api/records.csv   filtered records as CSV
  /charts/{name}.png chart images (also .svg)
  /metrics           Prometheus metrics
  /healthz           liveness

Selection flags set the defaults each request starts from; query parameters
from, to, org, method and primary override them per request.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveSel.register(serveCmd.Flags())
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, else 127.0.0.1:8080)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := serveSel.load(cmd)
	if err != nil {
		return err
	}
	// Reject a bad default selection before listening.
	if _, err := s.compute(); err != nil {
		return err
	}

	addr := s.cfg.Serve.Addr
	if cmd.Flags().Changed("addr") {
		addr = serveAddr
	}
	// Validated by config.Validate.
	readHeaderTimeout, _ := time.ParseDuration(s.cfg.Serve.ReadHeaderTimeout)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := server.New(s.ds,
		server.WithLogger(slog.Default()),
		server.WithMetrics(metrics.New(registry), registry),
		server.WithDefaults(s.options),
		server.WithColumns(s.columns),
	).Handler()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, server.NewHTTPServer(addr, h, readHeaderTimeout), slog.Default()); err != nil {
		return exitError(ExitRenderFailure, "breachdash: %v", err)
	}
	return nil
}
