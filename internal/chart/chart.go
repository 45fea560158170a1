// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

// Package chart renders pipeline results as PNG or SVG images using go-chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// ErrNoData is returned when there is nothing to plot. Callers show an empty
// state instead of an image.
var ErrNoData = errors.New("chart: no data to plot")

// Format selects the image encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ContentType returns the HTTP media type for f.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Size is an image size in pixels.
type Size struct {
	Width, Height int
}

// DefaultSize is used when a zero Size is passed.
var DefaultSize = Size{Width: 1024, Height: 420}

func (s Size) orDefault() Size {
	if s.Width <= 0 || s.Height <= 0 {
		return DefaultSize
	}
	return s
}

// Palette is the categorical color cycle shared by bars, stacks and treemap
// tiles so a category keeps its color across charts.
var Palette = []string{
	"#4c78a8", "#f58518", "#e45756", "#72b7b2", "#54a24b", "#eeca3b",
	"#b279a2", "#ff9da6", "#9d755d", "#bab0ac", "#1f77b4", "#2ca02c",
	"#d62728", "#9467bd", "#8c564b", "#17becf",
}

// ColorHex returns the palette color for index i.
func ColorHex(i int) string {
	return Palette[i%len(Palette)]
}

func color(i int) drawing.Color {
	return drawing.ColorFromHex(ColorHex(i)[1:])
}

// yRange returns a zero-based axis range that is never empty.
func yRange(maxValue float64) *chart.ContinuousRange {
	if maxValue <= 0 {
		maxValue = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: maxValue * 1.1}
}

// recordsFormatter labels axis values with thousands separators.
func recordsFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return pipeline.FormatInt(int64(math.Round(f)))
	}
	return fmt.Sprintf("%v", v)
}

// render writes a go-chart renderable in the requested format.
func render(w io.Writer, f Format, r interface {
	Render(chart.RendererProvider, io.Writer) error
}) error {
	if err := r.Render(f.provider(), w); err != nil {
		return fmt.Errorf("chart: render: %w", err)
	}
	return nil
}
