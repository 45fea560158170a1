package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/output"
)

// Export-specific flag values.
var (
	exportSel     selectionFlags
	exportFormat  string
	exportOutput  string
	exportRows    bool
	exportMaxRows int
	exportCompact bool
	exportPage    string
)

// exportCmd writes the filtered result in one of the registered formats.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered result as JSON, Markdown, CSV or HTML",
	Long: `Filter the dataset and write the result with one of the output formats:
  json      aggregates with a metadata envelope (--rows adds the records)
  markdown  summary and tables (--max-rows adds a records table)
  csv       the filtered records
  html      a self-contained dashboard page with embedded charts
  html-dir  index.html, chart images and data.csv written to --output

The default format comes from output_format in config.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportSel.register(exportCmd.Flags())
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format: "+strings.Join(output.FormatNames(), ", "))
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (directory for html-dir; default: stdout)")
	exportCmd.Flags().BoolVar(&exportRows, "rows", false, "include the filtered records in JSON output")
	exportCmd.Flags().IntVar(&exportMaxRows, "max-rows", 0, "records shown in the Markdown table (0 omits it)")
	exportCmd.Flags().BoolVar(&exportCompact, "compact", false, "write single-line JSON")
	exportCmd.Flags().StringVar(&exportPage, "page", "", "HTML page: full (default), dashboard or data")
}

func runExport(cmd *cobra.Command, _ []string) error {
	page, err := parsePage(exportPage)
	if err != nil {
		return err
	}

	s, err := exportSel.load(cmd)
	if err != nil {
		return err
	}

	format := s.cfg.OutputFormat
	if cmd.Flags().Changed("format") {
		format = exportFormat
	}
	formatter, err := exportFormatter(format)
	if err != nil {
		return err
	}

	res, err := s.compute()
	if err != nil {
		return err
	}
	doc := output.Document{Result: res, Columns: s.columns, Page: page}

	if df, ok := formatter.(output.DirectoryFormatter); ok {
		if exportOutput == "" {
			return exitError(ExitInvalidArgs, "breachdash: %s format requires --output (-o) to name a directory", format)
		}
		if err := df.FormatDir(doc, exportOutput); err != nil {
			return exitError(ExitRenderFailure, "breachdash: export %s: %v", format, err)
		}
		slog.Info("wrote dashboard", "dir", exportOutput)
		return nil
	}

	w, closeFn, err := openOutput(cmd, exportOutput)
	if err != nil {
		return err
	}
	err = formatter.Format(doc, w)
	if cerr := closeFn(); err == nil {
		err = cerr
	}
	if err != nil {
		return exitError(ExitRenderFailure, "breachdash: export %s: %v", format, err)
	}
	if exportOutput != "" {
		slog.Info("wrote export", "format", format, "path", exportOutput)
	}
	return nil
}

// exportFormatter looks up a formatter and applies the export flags to a
// private copy of it.
func exportFormatter(name string) (output.Formatter, error) {
	f, err := output.GetFormatter(name)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "breachdash: %v", err)
	}
	switch f.(type) {
	case *output.JSONFormatter:
		return &output.JSONFormatter{Compact: exportCompact, IncludeRows: exportRows}, nil
	case *output.MarkdownFormatter:
		if exportMaxRows < 0 {
			return nil, exitError(ExitInvalidArgs, "breachdash: --max-rows must be non-negative, got %d", exportMaxRows)
		}
		return &output.MarkdownFormatter{MaxRows: exportMaxRows}, nil
	}
	return f, nil
}

func parsePage(s string) (output.Page, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return output.PageFull, nil
	case "dashboard":
		return output.PageDashboard, nil
	case "data":
		return output.PageData, nil
	}
	return "", exitError(ExitInvalidArgs, "breachdash: unknown page %q (use full, dashboard or data)", s)
}
