package main

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/report"
)

// Report-specific flag values.
var (
	reportSel      selectionFlags
	reportSections string
	reportFormat   string
	reportRows     int
	reportOutput   string
)

// reportCmd prints the terminal dashboard.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a breach report to the terminal",
	Long: `Filter the dataset and print a terminal report: summary cards, records
per year, organization type and method counts, and the method/sector
breakdown. --rows adds a table of the first N filtered records.

Examples:
  breachdash report
  breachdash report --from 2015 --method hacked --primary organization-type
  breachdash report --org "web, tech" --sections summary,years
  breachdash report --format json -o report.json`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportSel.register(reportCmd.Flags())
	reportCmd.Flags().StringVar(&reportSections, "sections", "", "comma-separated list of report sections to include")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "text", "output format: text or json")
	reportCmd.Flags().IntVar(&reportRows, "rows", 0, "show the first N filtered records")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file path (default: stdout)")
}

func runReport(cmd *cobra.Command, _ []string) error {
	if reportFormat != "text" && reportFormat != "json" {
		return exitError(ExitInvalidArgs, "breachdash: unsupported report format %q (use text or json)", reportFormat)
	}
	if reportRows < 0 {
		return exitError(ExitInvalidArgs, "breachdash: --rows must be non-negative, got %d", reportRows)
	}
	sections := splitList(reportSections)
	if unknown := report.UnknownSections(sections); len(unknown) > 0 {
		available := report.List()
		sort.Strings(available)
		return exitError(ExitInvalidArgs, "breachdash: unknown section(s) %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(available, ", "))
	}

	s, err := reportSel.load(cmd)
	if err != nil {
		return err
	}
	res, err := s.compute()
	if err != nil {
		return err
	}

	w, closeFn, err := openOutput(cmd, reportOutput)
	if err != nil {
		return err
	}
	in := report.Input{Result: res, Columns: s.columns, MaxRows: reportRows}
	if reportFormat == "json" {
		err = report.RenderJSON(w, in, sections)
	} else {
		err = report.Render(w, in, sections)
	}
	if cerr := closeFn(); err == nil {
		err = cerr
	}
	if err != nil {
		return exitError(ExitRenderFailure, "breachdash: render report: %v", err)
	}
	return nil
}

// splitList splits a comma-separated flag value and drops empty parts.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
