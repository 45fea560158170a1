package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
)

// threeRows is the reference dataset used across the scenario tests.
func threeRows() *dataset.Dataset {
	return dataset.New("three.csv", nil, []dataset.Record{
		{Year: 2020, OrganizationType: "Healthcare", Method: "Hacked", Records: 100, HasRecords: true},
		{Year: 2021, OrganizationType: "Retail", Method: "Lost device", Records: 50, HasRecords: true},
		{Year: 2020, OrganizationType: "Healthcare", Method: "Lost device", Records: 25, HasRecords: true},
	})
}

// wideDataset has more categories, a missing records value and gaps in years.
func wideDataset() *dataset.Dataset {
	orgs := []string{"Healthcare", "Retail", "Government", "Web", "Financial"}
	methods := []string{"Hacked", "Lost device", "Inside job", "Poor security"}
	var recs []dataset.Record
	for i := 0; i < 60; i++ {
		r := dataset.Record{
			Year:             2004 + (i*7)%19,
			OrganizationType: orgs[i%len(orgs)],
			Method:           methods[(i/2)%len(methods)],
			Records:          int64((i * 1237) % 50000),
			HasRecords:       true,
		}
		if i%11 == 0 {
			r.Records = 0
			r.HasRecords = false
		}
		recs = append(recs, r)
	}
	return dataset.New("wide.csv", nil, recs)
}

func selections(ds *dataset.Dataset) map[string]Selection {
	def := DefaultSelection(ds)
	narrowYears := def
	narrowYears.Years = YearRange{Min: 2008, Max: 2012}
	oneOrg := def
	oneOrg.OrganizationTypes = NewSet("Retail")
	oneMethod := def
	oneMethod.Methods = NewSet("Hacked", "Inside job")
	inverted := def
	inverted.Years = YearRange{Min: 2020, Max: 2010}
	emptyOrgs := def
	emptyOrgs.OrganizationTypes = NewSet()
	emptyMethods := def
	emptyMethods.Methods = nil
	unknown := def
	unknown.OrganizationTypes = NewSet("Nonexistent")
	byOrg := def
	byOrg.Primary = DimOrganizationType

	return map[string]Selection{
		"default":       def,
		"narrow years":  narrowYears,
		"one org":       oneOrg,
		"two methods":   oneMethod,
		"inverted":      inverted,
		"empty orgs":    emptyOrgs,
		"empty methods": emptyMethods,
		"unknown org":   unknown,
		"org primary":   byOrg,
	}
}

func TestCompute_ThreeRowDefault(t *testing.T) {
	ds := threeRows()
	res, err := Compute(ds, DefaultSelection(ds))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Summary.TotalCount)
	assert.Equal(t, int64(175), res.Summary.TotalRecords)
	assert.Equal(t, []YearTotal{{2020, 125}, {2021, 50}}, res.Years)
	assert.Equal(t, map[string]int{"Healthcare": 2, "Retail": 1}, res.OrganizationTypes.Map())
	assert.Equal(t, map[string]int{"Hacked": 1, "Lost device": 2}, res.Methods.Map())
}

func TestCompute_ThreeRowSingleYear(t *testing.T) {
	ds := threeRows()
	sel := DefaultSelection(ds)
	sel.Years = YearRange{Min: 2021, Max: 2021}

	res, err := Compute(ds, sel)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Summary.TotalCount)
	assert.Equal(t, int64(50), res.Summary.TotalRecords)
	assert.Equal(t, Counts{{"Healthcare", 0}, {"Retail", 1}}, res.OrganizationTypes)
	assert.Equal(t, []YearTotal{{2021, 50}}, res.Years)
}

func TestCompute_ThreeRowEmptyOrganizations(t *testing.T) {
	ds := threeRows()
	sel := DefaultSelection(ds)
	sel.OrganizationTypes = NewSet()

	res, err := Compute(ds, sel)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Summary.TotalCount)
	assert.Equal(t, int64(0), res.Summary.TotalRecords)
	assert.Equal(t, Counts{{"Healthcare", 0}, {"Retail", 0}}, res.OrganizationTypes)
	assert.Equal(t, Counts{{"Hacked", 0}, {"Lost device", 0}}, res.Methods)
	assert.Empty(t, res.Years)
	assert.Empty(t, res.Hierarchy.Branches)
}

func TestCompute_DefaultSelectionReturnsWholeDataset(t *testing.T) {
	for _, ds := range []*dataset.Dataset{threeRows(), wideDataset()} {
		res, err := Compute(ds, DefaultSelection(ds))
		require.NoError(t, err)
		assert.Equal(t, ds.Records(), res.Rows())
	}
}

func TestCompute_Invariants(t *testing.T) {
	ds := wideDataset()
	all := ds.Records()

	for name, sel := range selections(ds) {
		t.Run(name, func(t *testing.T) {
			res, err := Compute(ds, sel)
			require.NoError(t, err)
			rows := res.Rows()

			// Subset, and every row honours the selection.
			for i := 0; i < res.View().Len(); i++ {
				idx := res.View().Index(i)
				assert.Equal(t, all[idx], rows[i])
				assert.True(t, sel.Allows(rows[i]))
			}

			// Summary matches the rows exactly.
			var sum int64
			for _, r := range rows {
				sum += r.Records
			}
			assert.Equal(t, len(rows), res.Summary.TotalCount)
			assert.Equal(t, sum, res.Summary.TotalRecords)

			// Category keys always cover the full dataset, and partition the rows.
			assert.Equal(t, ds.OrganizationTypes(), keys(res.OrganizationTypes))
			assert.Equal(t, ds.Methods(), keys(res.Methods))
			assert.Equal(t, res.Summary.TotalCount, res.OrganizationTypes.Total())
			assert.Equal(t, res.Summary.TotalCount, res.Methods.Total())

			// Year series strictly ascending and sums to the total.
			var yearSum int64
			for i, yt := range res.Years {
				if i > 0 {
					assert.Greater(t, yt.Year, res.Years[i-1].Year)
				}
				yearSum += yt.Records
			}
			assert.Equal(t, res.Summary.TotalRecords, yearSum)

			// Hierarchy leaves sum to the total, in both orders.
			assert.Equal(t, res.Summary.TotalRecords, res.Hierarchy.LeafTotal())
			assert.Equal(t, res.Summary.TotalRecords, res.Breakdown(res.Hierarchy.Secondary).LeafTotal())
		})
	}
}

func TestCompute_Idempotent(t *testing.T) {
	ds := wideDataset()
	for name, sel := range selections(ds) {
		t.Run(name, func(t *testing.T) {
			a, err := Compute(ds, sel)
			require.NoError(t, err)
			b, err := Compute(ds, sel)
			require.NoError(t, err)
			assert.Equal(t, a.Summary, b.Summary)
			assert.Equal(t, a.OrganizationTypes, b.OrganizationTypes)
			assert.Equal(t, a.Methods, b.Methods)
			assert.Equal(t, a.Years, b.Years)
			assert.Equal(t, a.Hierarchy, b.Hierarchy)
			assert.Equal(t, a.Rows(), b.Rows())
		})
	}
}

func TestCompute_EmptyDataset(t *testing.T) {
	empty := dataset.New("empty.csv", nil, nil)
	for _, ds := range []*dataset.Dataset{nil, empty} {
		res, err := Compute(ds, Selection{})
		assert.Nil(t, res)

		var ise *InvalidSelectionError
		require.True(t, errors.As(err, &ise))
		assert.Contains(t, err.Error(), "no rows")
	}
}

func TestCompute_InclusiveYearBounds(t *testing.T) {
	ds := threeRows()
	sel := DefaultSelection(ds)
	sel.Years = YearRange{Min: 2020, Max: 2020}

	res, err := Compute(ds, sel)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Summary.TotalCount)
}

func TestBreakdown_SwapPrimary(t *testing.T) {
	ds := threeRows()
	sel := DefaultSelection(ds)

	res, err := Compute(ds, sel)
	require.NoError(t, err)

	byMethod := res.Hierarchy
	assert.Equal(t, DimMethod, byMethod.Primary)
	assert.Equal(t, DimOrganizationType, byMethod.Secondary)
	require.Len(t, byMethod.Branches, 2)
	assert.Equal(t, "Hacked", byMethod.Branches[0].Name)
	assert.Equal(t, int64(100), byMethod.Branches[0].Records)
	assert.Equal(t, "Lost device", byMethod.Branches[1].Name)
	assert.Equal(t, int64(75), byMethod.Branches[1].Records)
	assert.Equal(t, int64(25), byMethod.Get("Lost device", "Healthcare"))

	byOrg := res.Breakdown(DimOrganizationType)
	assert.Equal(t, DimOrganizationType, byOrg.Primary)
	assert.Equal(t, "Healthcare", byOrg.Branches[0].Name)
	assert.Equal(t, int64(125), byOrg.Branches[0].Records)
	assert.Equal(t, []Leaf{{"Hacked", 100}, {"Lost device", 25}}, byOrg.Branches[0].Children)
	assert.Equal(t, int64(50), byOrg.Get("Retail", "Lost device"))
}

func TestCompute_UnsetPrimaryDefaultsToMethod(t *testing.T) {
	ds := threeRows()
	sel := DefaultSelection(ds)
	sel.Primary = ""

	res, err := Compute(ds, sel)
	require.NoError(t, err)
	assert.Equal(t, DimMethod, res.Hierarchy.Primary)
	assert.Equal(t, DimMethod, res.Selection.Primary)
}

func TestCounts_Get(t *testing.T) {
	c := Counts{{"a", 2}, {"b", 0}}
	assert.Equal(t, 2, c.Get("a"))
	assert.Equal(t, 0, c.Get("missing"))
	assert.Equal(t, 2, c.Total())
}

func keys(c Counts) []string {
	out := make([]string, len(c))
	for i, cc := range c {
		out[i] = cc.Value
	}
	return out
}

func BenchmarkCompute(b *testing.B) {
	var recs []dataset.Record
	for i := 0; i < 10000; i++ {
		recs = append(recs, dataset.Record{
			Year:             2004 + i%20,
			OrganizationType: fmt.Sprintf("org-%d", i%16),
			Method:           fmt.Sprintf("method-%d", i%6),
			Records:          int64(i),
		})
	}
	ds := dataset.New("bench", nil, recs)
	sel := DefaultSelection(ds)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compute(ds, sel); err != nil {
			b.Fatal(err)
		}
	}
}
