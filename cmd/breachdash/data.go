package main

import (
	"github.com/spf13/cobra"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/output"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/report"
)

// dataSections is the terminal rendition of the dashboard's data page.
var dataSections = []string{"summary", "organization-types", "methods", "records"}

// Data-specific flag values.
var (
	dataSel   selectionFlags
	dataLimit int
	dataCSV   bool
)

// dataCmd prints the info cards, category counts and the record table.
var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Show the filtered records",
	Long: `Print the data view: Total Data and Total Records cards, organization type
and method counts, and a table of the filtered records restricted to
--columns. --csv writes the filtered records as CSV instead.`,
	Args: cobra.NoArgs,
	RunE: runData,
}

func init() {
	dataSel.register(dataCmd.Flags())
	dataCmd.Flags().IntVarP(&dataLimit, "limit", "n", 50, "maximum records shown in the table")
	dataCmd.Flags().BoolVar(&dataCSV, "csv", false, "write the filtered records as CSV")
}

func runData(cmd *cobra.Command, _ []string) error {
	if dataLimit <= 0 {
		return exitError(ExitInvalidArgs, "breachdash: --limit must be positive, got %d", dataLimit)
	}
	s, err := dataSel.load(cmd)
	if err != nil {
		return err
	}
	res, err := s.compute()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if dataCSV {
		err = output.NewCSVFormatter().Format(output.Document{Result: res, Columns: s.columns}, w)
	} else {
		err = report.Render(w, report.Input{Result: res, Columns: s.columns, MaxRows: dataLimit}, dataSections)
	}
	if err != nil {
		return exitError(ExitRenderFailure, "breachdash: render data: %v", err)
	}
	return nil
}
