// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package chart

import (
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// YearSeries draws records per year as a line chart.
func YearSeries(w io.Writer, f Format, size Size, series []pipeline.YearTotal) error {
	if len(series) == 0 {
		return ErrNoData
	}
	size = size.orDefault()

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	ticks := make([]chart.Tick, len(series))
	var maxY float64
	for i, yt := range series {
		xs[i] = float64(yt.Year)
		ys[i] = float64(yt.Records)
		ticks[i] = chart.Tick{Value: xs[i], Label: strconv.Itoa(yt.Year)}
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}

	// The x range spans the ticks, so a lone year gets unlabelled neighbours.
	if len(series) == 1 {
		ticks = []chart.Tick{{Value: xs[0] - 1}, ticks[0], {Value: xs[0] + 1}}
	}

	ch := chart.Chart{
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 10}},
		XAxis:      chart.XAxis{Name: "Year", Ticks: ticks},
		YAxis: chart.YAxis{
			Name:           "Number of Records",
			Range:          yRange(maxY),
			ValueFormatter: recordsFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Number of Records",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: color(0),
					StrokeWidth: 2,
					DotColor:    color(0),
					DotWidth:    3,
				},
			},
		},
	}
	return render(w, f, ch)
}
