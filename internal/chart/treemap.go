// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package chart

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// headerHeight is the strip reserved at the top of a branch tile for its label.
const headerHeight = 18

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Area returns W*H.
func (r Rect) Area() float64 { return r.W * r.H }

// blankLabel names a tile whose category cell was empty.
const blankLabel = "(blank)"

// Tile is one rectangle of a treemap.
type Tile struct {
	// Branch marks a primary-level tile; leaves carry their Secondary.
	Branch    bool
	Primary   string
	Secondary string
	Records   int64
	Rect      Rect
	Color     int
}

// Label returns the text shown in the tile.
func (t Tile) Label() string {
	name := t.Primary
	if !t.Branch {
		name = t.Secondary
	}
	if name == "" {
		return blankLabel
	}
	return pipeline.Capitalize(name)
}

// TreemapLayout lays out h within bounds using the squarified algorithm.
// Branch tiles come first, each followed by its leaf tiles. Zero-record
// categories get no tile. Leaf areas are proportional to their records and
// leaves of a branch are nested inside the branch tile.
func TreemapLayout(h pipeline.Hierarchy, bounds Rect) []Tile {
	var branches []pipeline.Branch
	var values []float64
	for _, b := range h.Branches {
		if b.Records > 0 {
			branches = append(branches, b)
			values = append(values, float64(b.Records))
		}
	}
	if len(branches) == 0 || bounds.Area() <= 0 {
		return nil
	}

	var tiles []Tile
	for i, br := range squarify(values, bounds) {
		b := branches[i]
		tiles = append(tiles, Tile{Branch: true, Primary: b.Name, Records: b.Records, Rect: br, Color: i})

		inner := br
		if inner.H > 2*headerHeight {
			inner.Y += headerHeight
			inner.H -= headerHeight
		}
		var leaves []pipeline.Leaf
		var lv []float64
		for _, l := range b.Children {
			if l.Records > 0 {
				leaves = append(leaves, l)
				lv = append(lv, float64(l.Records))
			}
		}
		for j, lr := range squarify(lv, inner) {
			tiles = append(tiles, Tile{
				Primary:   b.Name,
				Secondary: leaves[j].Name,
				Records:   leaves[j].Records,
				Rect:      lr,
				Color:     i,
			})
		}
	}
	return tiles
}

// squarify divides r into len(values) rectangles with areas proportional to
// values, which must be positive and sorted descending.
func squarify(values []float64, r Rect) []Rect {
	var total float64
	for _, v := range values {
		total += v
	}
	if total <= 0 || r.Area() <= 0 {
		return nil
	}
	scale := r.Area() / total
	areas := make([]float64, len(values))
	for i, v := range values {
		areas[i] = v * scale
	}

	out := make([]Rect, len(areas))
	for i := 0; i < len(areas); {
		side := math.Min(r.W, r.H)
		j := i + 1
		for j < len(areas) && worst(areas[i:j+1], side) <= worst(areas[i:j], side) {
			j++
		}
		var rowSum float64
		for _, a := range areas[i:j] {
			rowSum += a
		}
		if r.W >= r.H {
			colW := rowSum / r.H
			y := r.Y
			for k := i; k < j; k++ {
				h := areas[k] / colW
				out[k] = Rect{X: r.X, Y: y, W: colW, H: h}
				y += h
			}
			r.X += colW
			r.W -= colW
		} else {
			rowH := rowSum / r.W
			x := r.X
			for k := i; k < j; k++ {
				w := areas[k] / rowH
				out[k] = Rect{X: x, Y: r.Y, W: w, H: rowH}
				x += w
			}
			r.Y += rowH
			r.H -= rowH
		}
		i = j
	}
	return out
}

// worst returns the highest aspect ratio in a row laid along side.
func worst(row []float64, side float64) float64 {
	var sum float64
	minA, maxA := math.Inf(1), 0.0
	for _, a := range row {
		sum += a
		minA = math.Min(minA, a)
		maxA = math.Max(maxA, a)
	}
	if sum == 0 || side == 0 || minA == 0 {
		return math.Inf(1)
	}
	s2, w2 := sum*sum, side*side
	return math.Max(w2*maxA/s2, s2/(w2*minA))
}

// Treemap draws the two-level breakdown h as nested tiles.
func Treemap(w io.Writer, f Format, size Size, h pipeline.Hierarchy) error {
	size = size.orDefault()
	tiles := TreemapLayout(h, Rect{W: float64(size.Width), H: float64(size.Height)})
	if len(tiles) == 0 {
		return ErrNoData
	}

	r, err := f.provider()(size.Width, size.Height)
	if err != nil {
		return fmt.Errorf("chart: treemap renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("chart: treemap font: %w", err)
	}
	r.SetFont(font)

	for _, t := range tiles {
		fill := color(t.Color)
		if !t.Branch {
			fill = fill.WithAlpha(200)
		}
		fillRect(r, t.Rect, fill)
		drawLabel(r, t)
	}

	if err := r.Save(w); err != nil {
		return fmt.Errorf("chart: treemap save: %w", err)
	}
	return nil
}

func fillRect(r chart.Renderer, rc Rect, fill drawing.Color) {
	x0, y0 := int(math.Round(rc.X)), int(math.Round(rc.Y))
	x1, y1 := int(math.Round(rc.X+rc.W)), int(math.Round(rc.Y+rc.H))
	r.SetFillColor(fill)
	r.SetStrokeColor(drawing.ColorWhite)
	r.SetStrokeWidth(1)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.LineTo(x0, y0)
	r.Close()
	r.FillStroke()
}

// drawLabel writes the tile name and, for leaves, the records total when the
// text fits inside the tile.
func drawLabel(r chart.Renderer, t Tile) {
	r.SetFontColor(drawing.ColorWhite)
	r.SetFontSize(9)
	x := int(t.Rect.X) + 4
	y := int(t.Rect.Y) + 13

	lines := []string{t.Label()}
	if !t.Branch {
		lines = append(lines, pipeline.FormatInt(t.Records))
	}
	for _, line := range lines {
		box := r.MeasureText(line)
		if float64(box.Width()+8) > t.Rect.W || float64(y-int(t.Rect.Y)+2) > t.Rect.H {
			return
		}
		r.Text(line, x, y)
		y += box.Height() + 3
	}
}
