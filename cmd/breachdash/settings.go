// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/config"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
	breachlog "github.com/ikmalalfaozi/data-breaches-dashboard/internal/log"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/output"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// selectionFlags are the dataset and filter flags shared by every command
// that computes a result. Each command owns its own instance.
type selectionFlags struct {
	dataset string
	from    int
	to      int
	orgs    []string
	methods []string
	primary string
	columns []string
}

func (f *selectionFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.dataset, "dataset", "d", "", "path to the breaches CSV (default from config, else "+config.DefaultDataset+")")
	fs.IntVar(&f.from, "from", 0, "first year to include (default: earliest year in the data)")
	fs.IntVar(&f.to, "to", 0, "last year to include (default: latest year in the data)")
	fs.StringArrayVar(&f.orgs, "org", nil, "organization type to include; repeatable, --org= selects none")
	fs.StringArrayVar(&f.methods, "method", nil, "breach method to include; repeatable, --method= selects none")
	fs.StringVar(&f.primary, "primary", "", "outer breakdown dimension: method or organization-type")
	fs.StringSliceVar(&f.columns, "columns", nil, "detail-table columns, comma-separated (default: all)")
}

// reset restores the zero values. pflag's slice Set appends, so slices are
// cleared directly.
func (f *selectionFlags) reset() {
	*f = selectionFlags{}
}

// settings is everything a command needs after config and dataset loading.
type settings struct {
	cfg     *config.Config
	ds      *dataset.Dataset
	options pipeline.Options
	columns []string
}

// loadConfig merges global and project config over the built-in defaults
// and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	global, err := config.LoadGlobal()
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "breachdash: global config: %v", err)
	}
	project, err := config.Load(".")
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "breachdash: %v", err)
	}
	cfg := config.WithDefaults(config.Merge(global, project))
	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitInvalidArgs, "breachdash: %v", err)
	}

	if !cmd.Flags().Changed("log-format") && cfg.Log.Format != logFormat {
		breachlog.SetupWithFormat(cmd.ErrOrStderr(), verbose, quiet, cfg.Log.Format)
	}
	return cfg, nil
}

// load resolves config, loads the dataset and builds the selection options.
// Flags win over config, which wins over built-in defaults.
func (f *selectionFlags) load(cmd *cobra.Command) (*settings, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("dataset") {
		cfg.Dataset = f.dataset
	}

	opts := configOptions(cfg)
	if flags.Changed("from") {
		opts.From = intPtr(f.from)
	}
	if flags.Changed("to") {
		opts.To = intPtr(f.to)
	}
	if flags.Changed("org") {
		opts.OrganizationTypes = nonEmpty(f.orgs)
	}
	if flags.Changed("method") {
		opts.Methods = nonEmpty(f.methods)
	}
	if flags.Changed("primary") {
		opts.Primary = f.primary
	}
	if opts.Primary != "" {
		if _, err := pipeline.ParseDimension(opts.Primary); err != nil {
			return nil, exitError(ExitInvalidArgs, "breachdash: --primary: %v", err)
		}
	}

	slog.Debug("loading dataset", "path", cfg.Dataset)
	ds, err := dataset.Load(cfg.Dataset)
	if err != nil {
		return nil, loadError(err)
	}
	slog.Debug("dataset loaded", "rows", ds.Len(), "columns", len(ds.Columns()))

	requested := cfg.Columns
	if flags.Changed("columns") {
		requested = f.columns
	}
	cols, err := output.ResolveColumns(ds, requested)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "breachdash: --columns: %v", err)
	}

	return &settings{cfg: cfg, ds: ds, options: opts, columns: cols}, nil
}

// compute runs the pipeline for the loaded settings.
func (s *settings) compute() (*pipeline.Result, error) {
	sel, err := s.options.Selection(s.ds)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "breachdash: %v", err)
	}
	res, err := pipeline.Compute(s.ds, sel)
	if err != nil {
		return nil, computeError(err)
	}
	slog.Info("computed selection",
		"rows", res.Summary.TotalCount,
		"records", res.Summary.TotalRecords,
		"from", sel.Years.Min,
		"to", sel.Years.Max,
	)
	return res, nil
}

// configOptions maps config defaults onto selection options. Empty config
// lists mean no restriction.
func configOptions(cfg *config.Config) pipeline.Options {
	var o pipeline.Options
	if cfg.Years != nil {
		if cfg.Years.Min != 0 {
			o.From = intPtr(cfg.Years.Min)
		}
		if cfg.Years.Max != 0 {
			o.To = intPtr(cfg.Years.Max)
		}
	}
	if len(cfg.OrganizationTypes) > 0 {
		o.OrganizationTypes = cfg.OrganizationTypes
	}
	if len(cfg.Methods) > 0 {
		o.Methods = cfg.Methods
	}
	o.Primary = cfg.Primary
	return o
}

// nonEmpty trims values and drops blanks, returning a non-nil slice so an
// explicit --org= still means "select none".
func nonEmpty(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func intPtr(n int) *int { return &n }

// openOutput returns the command's stdout, or a created file when path is
// set. The returned close func is always safe to call.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path) //nolint:gosec // user-provided output path
	if err != nil {
		return nil, nil, exitError(ExitRenderFailure, "breachdash: cannot create output file: %v", err)
	}
	return f, f.Close, nil
}
