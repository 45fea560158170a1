package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	breachlog "github.com/ikmalalfaozi/data-breaches-dashboard/internal/log"
)

// Global flag values.
var (
	verbose   bool
	quiet     bool
	noColor   bool
	logFormat string
)

// rootCmd is the base command for breachdash.
var rootCmd = &cobra.Command{
	Use:   "breachdash",
	Short: "Explore a data breaches CSV as reports, charts and dashboards",
	Long: `Breachdash loads a CSV of data breach incidents (year, organization type,
method, records lost) and renders filtered views of it: summary cards,
records per year, per-category counts and a method/sector breakdown.

Views are available as a terminal report, static exports (JSON, Markdown,
CSV, HTML), an HTTP dashboard and MCP tools for AI agents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		breachlog.SetupWithFormat(cmd.ErrOrStderr(), verbose, quiet, logFormat)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dataCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
