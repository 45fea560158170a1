// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// Config holds the defaults tool calls fall back to.
type Config struct {
	// Dataset is used when a call names no dataset.
	Dataset string

	// Defaults fill selection fields a call leaves unset.
	Defaults pipeline.Options

	// Columns is the default row column subset.
	Columns []string
}

// New creates an MCP server with the breach tools registered.
func New(version string, cfg Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "breachdash",
		Title:   "Breachdash - Data Breach Analytics",
		Version: version,
	}, nil)

	h := &handlers{cfg: cfg, cache: newDatasetCache()}
	h.register(server)
	return server
}

// Run creates an MCP server and serves it on transport until the client
// disconnects or ctx is cancelled.
func Run(ctx context.Context, version string, cfg Config, transport mcp.Transport) error {
	return New(version, cfg).Run(ctx, transport)
}
