// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/mcpserver"
)

var mcpDataset string

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running breachdash as an MCP server, exposing the breach aggregates to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout exposing read-only tools:
  - summary:    Totals for a selection
  - breakdown:  Category counts, yearly series and the hierarchy
  - categories: Year range and category values of a dataset
  - report:     Text or JSON report of chosen sections

Filter defaults (years, organization types, methods, primary, columns) come
from config. Every tool accepts a dataset path; calls without one use
--dataset or the configured dataset.`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().StringVarP(&mcpDataset, "dataset", "d", "", "default dataset for tool calls")
	mcpCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dataset") {
		cfg.Dataset = mcpDataset
	}
	return mcpserver.Run(cmd.Context(), Version, mcpserver.Config{
		Dataset:  cfg.Dataset,
		Defaults: configOptions(cfg),
		Columns:  cfg.Columns,
	}, &mcp.StdioTransport{})
}
