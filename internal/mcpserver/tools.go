package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/output"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/report"
)

const (
	defaultRowLimit = 100
	maxRowLimit     = 1000
)

// QueryInput is the input schema of the summary and breakdown tools.
type QueryInput struct {
	Dataset           string   `json:"dataset,omitempty" jsonschema:"Path to the breaches CSV (defaults to the configured dataset)"`
	YearMin           *int     `json:"year_min,omitempty" jsonschema:"First year to include (default: earliest year in the data)"`
	YearMax           *int     `json:"year_max,omitempty" jsonschema:"Last year to include (default: latest year in the data)"`
	OrganizationTypes []string `json:"organization_types,omitempty" jsonschema:"Organization types to include; omit for all, empty list for none"`
	Methods           []string `json:"methods,omitempty" jsonschema:"Breach methods to include; omit for all, empty list for none"`
	Primary           string   `json:"primary,omitempty" jsonschema:"Outer breakdown dimension: method or organization_type (default: method)"`
	IncludeRows       bool     `json:"include_rows,omitempty" jsonschema:"Include the filtered records (summary only)"`
	Limit             int      `json:"limit,omitempty" jsonschema:"Maximum records returned with include_rows (default 100, max 1000)"`
	Columns           []string `json:"columns,omitempty" jsonschema:"Record columns to return (default: all)"`
}

// ReportInput is the input schema of the report tool.
type ReportInput struct {
	Dataset           string   `json:"dataset,omitempty" jsonschema:"Path to the breaches CSV (defaults to the configured dataset)"`
	YearMin           *int     `json:"year_min,omitempty" jsonschema:"First year to include"`
	YearMax           *int     `json:"year_max,omitempty" jsonschema:"Last year to include"`
	OrganizationTypes []string `json:"organization_types,omitempty" jsonschema:"Organization types to include; omit for all, empty list for none"`
	Methods           []string `json:"methods,omitempty" jsonschema:"Breach methods to include; omit for all, empty list for none"`
	Primary           string   `json:"primary,omitempty" jsonschema:"Outer breakdown dimension: method or organization_type"`
	Sections          string   `json:"sections,omitempty" jsonschema:"Comma-separated report sections (default: all)"`
	Rows              int      `json:"rows,omitempty" jsonschema:"Records shown by the records section (0 skips it)"`
}

// CategoriesInput is the input schema of the categories tool.
type CategoriesInput struct {
	Dataset string `json:"dataset,omitempty" jsonschema:"Path to the breaches CSV (defaults to the configured dataset)"`
}

// CategoriesOutput lists what a selection can filter on.
type CategoriesOutput struct {
	Source            string   `json:"source"`
	Rows              int      `json:"rows"`
	YearMin           int      `json:"year_min"`
	YearMax           int      `json:"year_max"`
	OrganizationTypes []string `json:"organization_types"`
	Methods           []string `json:"methods"`
	Columns           []string `json:"columns"`
	Sections          []string `json:"report_sections"`
}

func boolPtr(b bool) *bool { return &b }

var readOnly = &mcp.ToolAnnotations{
	ReadOnlyHint:    true,
	DestructiveHint: boolPtr(false),
	OpenWorldHint:   boolPtr(false),
}

type handlers struct {
	cfg   Config
	cache *datasetCache

	// Report sections keep per-render state in a shared registry.
	reportMu sync.Mutex
}

func (h *handlers) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "summary",
		Description: "Filter the data breach table and return totals, per-category counts, records per year and the two-level breakdown as JSON.",
		Annotations: readOnly,
	}, h.handleSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "breakdown",
		Description: "Return total records grouped by primary dimension then by the other dimension, largest first, for the filtered data.",
		Annotations: readOnly,
	}, h.handleBreakdown)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "categories",
		Description: "List the year range, organization types, methods and columns available for filtering.",
		Annotations: readOnly,
	}, h.handleCategories)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "report",
		Description: "Render a plain-text breach report for the filtered data.",
		Annotations: readOnly,
	}, h.handleReport)
}

func (h *handlers) dataset(path string) (*dataset.Dataset, error) {
	if strings.TrimSpace(path) == "" {
		path = h.cfg.Dataset
	}
	return h.cache.load(path)
}

// compute merges the call's selection fields over the configured defaults
// and runs the pipeline.
func (h *handlers) compute(ds *dataset.Dataset, req pipeline.Options) (*pipeline.Result, error) {
	o := h.cfg.Defaults
	if req.From != nil {
		o.From = req.From
	}
	if req.To != nil {
		o.To = req.To
	}
	if req.OrganizationTypes != nil {
		o.OrganizationTypes = req.OrganizationTypes
	}
	if req.Methods != nil {
		o.Methods = req.Methods
	}
	if req.Primary != "" {
		o.Primary = req.Primary
	}

	sel, err := o.Selection(ds)
	if err != nil {
		return nil, err
	}
	return pipeline.Compute(ds, sel)
}

func (in QueryInput) options() pipeline.Options {
	return pipeline.Options{
		From: in.YearMin, To: in.YearMax,
		OrganizationTypes: in.OrganizationTypes, Methods: in.Methods,
		Primary: strings.TrimSpace(in.Primary),
	}
}

func (in ReportInput) options() pipeline.Options {
	return pipeline.Options{
		From: in.YearMin, To: in.YearMax,
		OrganizationTypes: in.OrganizationTypes, Methods: in.Methods,
		Primary: strings.TrimSpace(in.Primary),
	}
}

func (h *handlers) handleSummary(_ context.Context, _ *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, any, error) {
	ds, err := h.dataset(input.Dataset)
	if err != nil {
		return nil, nil, err
	}
	res, err := h.compute(ds, input.options())
	if err != nil {
		return nil, nil, err
	}

	requested := input.Columns
	if len(requested) == 0 {
		requested = h.cfg.Columns
	}
	cols, err := output.ResolveColumns(ds, requested)
	if err != nil {
		return nil, nil, err
	}

	f := output.NewJSONFormatter()
	f.IncludeRows = input.IncludeRows
	env, err := f.Envelope(output.Document{Result: res, Columns: cols})
	if err != nil {
		return nil, nil, err
	}
	if limit := rowLimit(input.Limit); len(env.Rows) > limit {
		env.Rows = env.Rows[:limit]
	}
	return jsonResult(env)
}

func (h *handlers) handleBreakdown(_ context.Context, _ *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, any, error) {
	ds, err := h.dataset(input.Dataset)
	if err != nil {
		return nil, nil, err
	}
	res, err := h.compute(ds, input.options())
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(res.Hierarchy)
}

func (h *handlers) handleCategories(_ context.Context, _ *mcp.CallToolRequest, input CategoriesInput) (*mcp.CallToolResult, any, error) {
	ds, err := h.dataset(input.Dataset)
	if err != nil {
		return nil, nil, err
	}
	minYear, maxYear := ds.YearRange()
	return jsonResult(CategoriesOutput{
		Source:            ds.Source(),
		Rows:              ds.Len(),
		YearMin:           minYear,
		YearMax:           maxYear,
		OrganizationTypes: ds.OrganizationTypes(),
		Methods:           ds.Methods(),
		Columns:           ds.Columns(),
		Sections:          report.List(),
	})
}

func (h *handlers) handleReport(_ context.Context, _ *mcp.CallToolRequest, input ReportInput) (*mcp.CallToolResult, any, error) {
	var sections []string
	if input.Sections != "" {
		sections = splitAndTrim(input.Sections)
		if unknown := report.UnknownSections(sections); len(unknown) > 0 {
			available := report.List()
			sort.Strings(available)
			return nil, nil, fmt.Errorf("unknown section(s) %s (available: %s)",
				strings.Join(unknown, ", "), strings.Join(available, ", "))
		}
	}

	ds, err := h.dataset(input.Dataset)
	if err != nil {
		return nil, nil, err
	}
	res, err := h.compute(ds, input.options())
	if err != nil {
		return nil, nil, err
	}
	cols, err := output.ResolveColumns(ds, h.cfg.Columns)
	if err != nil {
		return nil, nil, err
	}

	h.reportMu.Lock()
	defer h.reportMu.Unlock()
	var buf bytes.Buffer
	if err := report.Render(&buf, report.Input{Result: res, Columns: cols, MaxRows: input.Rows}, sections); err != nil {
		return nil, nil, fmt.Errorf("render report: %w", err)
	}
	return textResult(buf.String()), nil, nil
}

func rowLimit(n int) int {
	switch {
	case n <= 0:
		return defaultRowLimit
	case n > maxRowLimit:
		return maxRowLimit
	}
	return n
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return textResult(string(data)), nil, nil
}

func textResult(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: s}}}
}

// splitAndTrim splits a comma-separated string and drops empty parts.
func splitAndTrim(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
