// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strings"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/chart"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// chartSpec describes one dashboard chart independently of where the image
// ends up (inlined as a data URI or written next to index.html).
type chartSpec struct {
	Name   string
	Title  string
	Format chart.Format
	Legend []chart.LegendEntry
	draw   func(w io.Writer, f chart.Format) error
}

// FileName is the file the chart is written to by directory output.
func (c chartSpec) FileName() string {
	return c.Name + "." + string(c.Format)
}

// chartImage is a rendered chart as the HTML template sees it.
type chartImage struct {
	Name   string
	Title  string
	Src    template.URL
	Empty  bool
	Legend []chart.LegendEntry

	// Error is set when the chart failed to render; the page still renders.
	Error string
}

func dashboardCharts(res *pipeline.Result) []chartSpec {
	sector := res.Breakdown(pipeline.DimOrganizationType)
	method := res.Breakdown(pipeline.DimMethod)
	size := chart.Size{Width: 960, Height: 400}
	return []chartSpec{
		{
			Name: "years", Title: "Data Breach Instances per Year", Format: chart.PNG,
			draw: func(w io.Writer, f chart.Format) error { return chart.YearSeries(w, f, size, res.Years) },
		},
		{
			Name: "sector", Title: "Sector Breakdown", Format: chart.PNG, Legend: chart.Legend(sector),
			draw: func(w io.Writer, f chart.Format) error { return chart.Breakdown(w, f, size, sector) },
		},
		{
			Name: "method", Title: "Method Breakdown", Format: chart.PNG, Legend: chart.Legend(method),
			draw: func(w io.Writer, f chart.Format) error { return chart.Breakdown(w, f, size, method) },
		},
		{
			Name: "treemap", Title: "Method and Sector Proportions", Format: chart.SVG,
			draw: func(w io.Writer, f chart.Format) error {
				return chart.Treemap(w, f, chart.Size{Width: 960, Height: 560}, res.Hierarchy)
			},
		},
	}
}

// countCharts are served individually but not embedded in the dashboard.
func countCharts(res *pipeline.Result) []chartSpec {
	size := chart.Size{Width: 960, Height: 400}
	return []chartSpec{
		{
			Name: "organization_types", Title: "Breaches by Organization Type", Format: chart.PNG,
			draw: func(w io.Writer, f chart.Format) error {
				return chart.CategoryCounts(w, f, size, res.OrganizationTypes)
			},
		},
		{
			Name: "methods", Title: "Breaches by Method", Format: chart.PNG,
			draw: func(w io.Writer, f chart.Format) error { return chart.CategoryCounts(w, f, size, res.Methods) },
		},
	}
}

// ErrUnknownChart is returned by RenderChart for a name no chart carries.
var ErrUnknownChart = errors.New("unknown chart")

// ChartNames lists every chart RenderChart accepts, dashboard charts first.
func ChartNames() []string {
	return []string{"years", "sector", "method", "treemap", "organization_types", "methods"}
}

// RenderChart draws the named chart of res in format f. A chart with nothing
// to plot yields ok=false and no error.
func RenderChart(res *pipeline.Result, name string, f chart.Format) (data []byte, ok bool, err error) {
	for _, spec := range append(dashboardCharts(res), countCharts(res)...) {
		if spec.Name == name {
			spec.Format = f
			return renderChart(spec)
		}
	}
	return nil, false, fmt.Errorf("%w %q (available: %s)", ErrUnknownChart, name, strings.Join(ChartNames(), ", "))
}

// renderChart draws spec into a buffer. A chart with nothing to plot yields
// ok=false and no error.
func renderChart(spec chartSpec) (data []byte, ok bool, err error) {
	var buf bytes.Buffer
	if err := spec.draw(&buf, spec.Format); err != nil {
		if errors.Is(err, chart.ErrNoData) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("render %s chart: %w", spec.Name, err)
	}
	return buf.Bytes(), true, nil
}

// inlineCharts renders each spec as a base64 data URI. A chart that fails to
// render is logged and shown as unavailable.
func inlineCharts(specs []chartSpec) []chartImage {
	images := make([]chartImage, 0, len(specs))
	for _, spec := range specs {
		data, ok, err := renderChart(spec)
		img := chartImage{Name: spec.Name, Title: spec.Title, Legend: spec.Legend, Empty: !ok}
		switch {
		case err != nil:
			img.Empty = false
			img.Error = err.Error()
			slog.Warn("chart unavailable", "chart", spec.Name, "error", err)
		case ok:
			img.Src = template.URL("data:" + spec.Format.ContentType() + ";base64," + //nolint:gosec // generated image bytes
				base64.StdEncoding.EncodeToString(data))
		}
		images = append(images, img)
	}
	return images
}
