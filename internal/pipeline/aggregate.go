package pipeline

import (
	"cmp"
	"slices"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
)

// Summary holds the scalar totals of a view.
type Summary struct {
	TotalCount   int   `json:"total_count"`
	TotalRecords int64 `json:"total_records"`
}

// Summarize counts the view's rows and sums their records. Missing record
// values contribute zero.
func Summarize(v View) Summary {
	s := Summary{TotalCount: v.Len()}
	for i := 0; i < v.Len(); i++ {
		s.TotalRecords += v.At(i).Records
	}
	return s
}

// CategoryCount is the number of filtered rows carrying one category value.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Counts lists every category of a dimension in dataset first-seen order.
type Counts []CategoryCount

// Get returns the count for value, or 0 if value is not a known category.
func (c Counts) Get(value string) int {
	for _, cc := range c {
		if cc.Value == value {
			return cc.Count
		}
	}
	return 0
}

// Map returns the counts keyed by category.
func (c Counts) Map() map[string]int {
	m := make(map[string]int, len(c))
	for _, cc := range c {
		m[cc.Value] = cc.Count
	}
	return m
}

// Total sums all counts.
func (c Counts) Total() int {
	var n int
	for _, cc := range c {
		n += cc.Count
	}
	return n
}

// Categories enumerates the distinct values of dim across the whole dataset,
// independent of any filter. Category cards are keyed from this list so a
// category whose filtered count drops to zero is still shown.
func Categories(ds *dataset.Dataset, dim Dimension) []string {
	if dim == DimMethod {
		return ds.Methods()
	}
	return ds.OrganizationTypes()
}

// CategoryCounts counts the view's rows per category of dim. Every category of
// the full dataset appears, with 0 when no filtered row matches.
func CategoryCounts(ds *dataset.Dataset, v View, dim Dimension) Counts {
	categories := Categories(ds, dim)

	tally := make(map[string]int, len(categories))
	for i := 0; i < v.Len(); i++ {
		tally[dim.value(v.At(i))]++
	}

	counts := make(Counts, len(categories))
	for i, c := range categories {
		counts[i] = CategoryCount{Value: c, Count: tally[c]}
	}
	return counts
}

// YearTotal is the summed records for one year.
type YearTotal struct {
	Year    int   `json:"year"`
	Records int64 `json:"records"`
}

// YearSeries sums records per year, ascending. Years without rows are omitted.
func YearSeries(v View) []YearTotal {
	sums := make(map[int]int64)
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		sums[r.Year] += r.Records
	}

	series := make([]YearTotal, 0, len(sums))
	for year, total := range sums {
		series = append(series, YearTotal{Year: year, Records: total})
	}
	slices.SortFunc(series, func(a, b YearTotal) int { return cmp.Compare(a.Year, b.Year) })
	return series
}

// Leaf is a secondary category within a Branch.
type Leaf struct {
	Name    string `json:"name"`
	Records int64  `json:"records"`
}

// Branch is a primary category and its secondary breakdown.
type Branch struct {
	Name     string `json:"name"`
	Records  int64  `json:"records"`
	Children []Leaf `json:"children"`
}

// Hierarchy is a two-level records breakdown, the data behind a treemap.
type Hierarchy struct {
	Primary   Dimension `json:"primary"`
	Secondary Dimension `json:"secondary"`
	Branches  []Branch  `json:"branches"`
}

// Get returns the summed records for a (primary, secondary) pair.
func (h Hierarchy) Get(primary, secondary string) int64 {
	for _, b := range h.Branches {
		if b.Name != primary {
			continue
		}
		for _, l := range b.Children {
			if l.Name == secondary {
				return l.Records
			}
		}
	}
	return 0
}

// LeafTotal sums every leaf value.
func (h Hierarchy) LeafTotal() int64 {
	var total int64
	for _, b := range h.Branches {
		for _, l := range b.Children {
			total += l.Records
		}
	}
	return total
}

// Breakdown groups the view by (primary, secondary) and sums records.
// Swapping primary only changes the grouping key order. Branches and leaves
// are ordered by records descending, then name.
func Breakdown(v View, primary Dimension) Hierarchy {
	secondary := primary.Other()
	sums := make(map[string]map[string]int64)
	for i := 0; i < v.Len(); i++ {
		r := v.At(i)
		p, s := primary.value(r), secondary.value(r)
		if sums[p] == nil {
			sums[p] = make(map[string]int64)
		}
		sums[p][s] += r.Records
	}

	h := Hierarchy{Primary: primary, Secondary: secondary, Branches: make([]Branch, 0, len(sums))}
	for p, leaves := range sums {
		b := Branch{Name: p, Children: make([]Leaf, 0, len(leaves))}
		for s, total := range leaves {
			b.Children = append(b.Children, Leaf{Name: s, Records: total})
			b.Records += total
		}
		slices.SortFunc(b.Children, func(x, y Leaf) int { return byRecordsThenName(x.Records, y.Records, x.Name, y.Name) })
		h.Branches = append(h.Branches, b)
	}
	slices.SortFunc(h.Branches, func(x, y Branch) int { return byRecordsThenName(x.Records, y.Records, x.Name, y.Name) })
	return h
}

func byRecordsThenName(a, b int64, an, bn string) int {
	if c := cmp.Compare(b, a); c != 0 {
		return c
	}
	return cmp.Compare(an, bn)
}
