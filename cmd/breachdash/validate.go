// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// Validate-specific flag values.
var validateList bool

// validateCmd checks that config and dataset load cleanly.
var validateCmd = &cobra.Command{
	Use:   "validate [dataset]",
	Short: "Check the config and dataset load cleanly",
	Long: `Load the merged configuration and the breaches CSV and report what was
found: row count, year range and the distinct organization types and methods.
The dataset argument overrides the configured path.

Exits 1 for invalid config and 3 when the dataset cannot be loaded.

Examples:
  breachdash validate
  breachdash validate ./data/breaches.csv --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateList, "list", false, "also list every organization type and method")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := cfg.Dataset
	if len(args) > 0 {
		path = args[0]
	}

	ds, err := dataset.Load(path)
	if err != nil {
		return loadError(err)
	}

	var missing int
	for _, r := range ds.Records() {
		if !r.HasRecords {
			missing++
		}
	}

	w := cmd.OutOrStdout()
	ok := color.New(color.FgGreen).Sprint("valid:")
	if ds.Len() == 0 {
		_, _ = fmt.Fprintf(w, "%s %s has a header but no rows\n", ok, ds.Source())
		return nil
	}
	minYear, maxYear := ds.YearRange()
	_, _ = fmt.Fprintf(w, "%s %s rows from %s\n", ok, pipeline.FormatInt(int64(ds.Len())), ds.Source())
	_, _ = fmt.Fprintf(w, "  years:              %d to %d\n", minYear, maxYear)
	_, _ = fmt.Fprintf(w, "  organization types: %d\n", len(ds.OrganizationTypes()))
	_, _ = fmt.Fprintf(w, "  methods:            %d\n", len(ds.Methods()))
	_, _ = fmt.Fprintf(w, "  columns:            %s\n", strings.Join(ds.Columns(), ", "))
	if missing > 0 {
		_, _ = fmt.Fprintf(w, "  %d row(s) have no records value and count as 0\n", missing)
	}

	if validateList {
		_, _ = fmt.Fprintln(w, "\nOrganization types:")
		for _, v := range ds.OrganizationTypes() {
			_, _ = fmt.Fprintf(w, "  %s\n", v)
		}
		_, _ = fmt.Fprintln(w, "\nMethods:")
		for _, v := range ds.Methods() {
			_, _ = fmt.Fprintf(w, "  %s\n", v)
		}
	}
	return nil
}
