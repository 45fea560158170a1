package chart

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// CategoryCounts draws one bar per category, zero-count categories included.
func CategoryCounts(w io.Writer, f Format, size Size, counts pipeline.Counts) error {
	if len(counts) == 0 {
		return ErrNoData
	}
	size = size.orDefault()

	bars := make([]chart.Value, len(counts))
	var maxY float64
	for i, c := range counts {
		bars[i] = chart.Value{
			Label: pipeline.Capitalize(c.Value),
			Value: float64(c.Count),
			Style: chart.Style{FillColor: color(i), StrokeColor: color(i)},
		}
		if float64(c.Count) > maxY {
			maxY = float64(c.Count)
		}
	}

	bc := chart.BarChart{
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   barWidth(size.Width, len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 30, Bottom: 10}},
		XAxis:      chart.Style{FontSize: 8},
		YAxis:      chart.YAxis{Range: yRange(maxY)},
		Bars:       bars,
	}
	return render(w, f, bc)
}

// Breakdown draws one stacked bar per primary category, each stack split by
// secondary category. Bars follow the hierarchy's order (largest first) and a
// secondary category keeps the same color in every bar; Legend returns that
// mapping.
func Breakdown(w io.Writer, f Format, size Size, h pipeline.Hierarchy) error {
	if len(h.Branches) == 0 || h.LeafTotal() == 0 {
		return ErrNoData
	}
	size = size.orDefault()

	colors := legendIndex(h)
	bars := make([]chart.StackedBar, 0, len(h.Branches))
	for _, b := range h.Branches {
		sb := chart.StackedBar{Name: pipeline.Capitalize(b.Name)}
		for _, l := range b.Children {
			if l.Records == 0 {
				continue
			}
			c := color(colors[l.Name])
			sb.Values = append(sb.Values, chart.Value{
				Label: l.Name,
				Value: float64(l.Records),
				Style: chart.Style{FillColor: c, StrokeColor: c},
			})
		}
		if len(sb.Values) == 0 {
			continue
		}
		bars = append(bars, sb)
	}

	sbc := chart.StackedBarChart{
		Width:      size.Width,
		Height:     size.Height,
		BarSpacing: 12,
		Background: chart.Style{Padding: chart.Box{Top: 30, Bottom: 10}},
		XAxis:      chart.Style{FontSize: 8},
		Bars:       bars,
	}
	return render(w, f, sbc)
}

// LegendEntry pairs a secondary category with its stack color.
type LegendEntry struct {
	Name  string
	Color string
}

// Legend lists the secondary categories of h with the colors Breakdown uses.
func Legend(h pipeline.Hierarchy) []LegendEntry {
	idx := legendIndex(h)
	out := make([]LegendEntry, len(idx))
	for name, i := range idx {
		out[i] = LegendEntry{Name: name, Color: ColorHex(i)}
	}
	return out
}

// legendIndex numbers secondary categories in order of first appearance.
func legendIndex(h pipeline.Hierarchy) map[string]int {
	idx := make(map[string]int)
	for _, b := range h.Branches {
		for _, l := range b.Children {
			if _, ok := idx[l.Name]; !ok {
				idx[l.Name] = len(idx)
			}
		}
	}
	return idx
}

func barWidth(width, n int) int {
	w := (width - 120) / (n * 2)
	switch {
	case w < 8:
		return 8
	case w > 60:
		return 60
	}
	return w
}
