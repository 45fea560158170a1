package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

type summaryOutput struct {
	Summary   pipeline.Summary   `json:"summary"`
	Methods   pipeline.Counts    `json:"methods"`
	Hierarchy pipeline.Hierarchy `json:"hierarchy"`
	Rows      []map[string]any   `json:"rows"`
}

func TestHandleSummary_Default(t *testing.T) {
	h, _ := newTestHandlers(t)

	res, _, err := h.handleSummary(context.Background(), nil, QueryInput{})
	require.NoError(t, err)

	var out summaryOutput
	decodeResult(t, res, &out)
	assert.Equal(t, pipeline.Summary{TotalCount: 4, TotalRecords: 1584000}, out.Summary)
	assert.Equal(t, pipeline.Counts{{Value: "hacked", Count: 2}, {Value: "lost device", Count: 2}}, out.Methods)
	assert.Equal(t, pipeline.DimMethod, out.Hierarchy.Primary)
	assert.Empty(t, out.Rows)
}

func TestHandleSummary_Filters(t *testing.T) {
	h, _ := newTestHandlers(t)

	res, _, err := h.handleSummary(context.Background(), nil, QueryInput{
		YearMin:           intPtr(2018),
		OrganizationTypes: []string{"healthcare", "web, tech"},
		Primary:           "organization_type",
		IncludeRows:       true,
		Columns:           []string{"entity", "records"},
	})
	require.NoError(t, err)

	var out summaryOutput
	decodeResult(t, res, &out)
	assert.Equal(t, pipeline.Summary{TotalCount: 2, TotalRecords: 34000}, out.Summary)
	assert.Equal(t, pipeline.DimOrganizationType, out.Hierarchy.Primary)
	assert.Equal(t, []map[string]any{
		{"Entity": "Clinic", "Records": float64(25000)},
		{"Entity": "Portal", "Records": float64(9000)},
	}, out.Rows)
}

func TestHandleSummary_EmptySetSelectsNothing(t *testing.T) {
	h, _ := newTestHandlers(t)

	res, _, err := h.handleSummary(context.Background(), nil, QueryInput{Methods: []string{}})
	require.NoError(t, err)

	var out summaryOutput
	decodeResult(t, res, &out)
	assert.Equal(t, pipeline.Summary{}, out.Summary)
	assert.Empty(t, out.Hierarchy.Branches)
}

func TestHandleSummary_RowLimit(t *testing.T) {
	h, _ := newTestHandlers(t)

	res, _, err := h.handleSummary(context.Background(), nil, QueryInput{IncludeRows: true, Limit: 1})
	require.NoError(t, err)

	var out summaryOutput
	decodeResult(t, res, &out)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "Acme Health", out.Rows[0]["Entity"])
}

func TestHandleSummary_ConfigDefaults(t *testing.T) {
	h, path := newTestHandlers(t)
	h.cfg.Defaults = pipeline.Options{Methods: []string{"hacked"}}

	res, _, err := h.handleSummary(context.Background(), nil, QueryInput{Dataset: path})
	require.NoError(t, err)
	var out summaryOutput
	decodeResult(t, res, &out)
	assert.Equal(t, 2, out.Summary.TotalCount)

	res, _, err = h.handleSummary(context.Background(), nil, QueryInput{Methods: []string{"lost device"}})
	require.NoError(t, err)
	decodeResult(t, res, &out)
	assert.Equal(t, 2, out.Summary.TotalCount)
	assert.Equal(t, int64(75000), out.Summary.TotalRecords)
}

func TestHandleSummary_Errors(t *testing.T) {
	h, _ := newTestHandlers(t)
	ctx := context.Background()

	_, _, err := h.handleSummary(ctx, nil, QueryInput{Primary: "color"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dimension")

	_, _, err = h.handleSummary(ctx, nil, QueryInput{Columns: []string{"Nope"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column(s) Nope")

	_, _, err = h.handleSummary(ctx, nil, QueryInput{Dataset: "/nonexistent/breaches.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestHandleBreakdown(t *testing.T) {
	h, _ := newTestHandlers(t)

	res, _, err := h.handleBreakdown(context.Background(), nil, QueryInput{Primary: "organization_type"})
	require.NoError(t, err)

	var out pipeline.Hierarchy
	decodeResult(t, res, &out)
	assert.Equal(t, pipeline.DimOrganizationType, out.Primary)
	assert.Equal(t, pipeline.DimMethod, out.Secondary)
	require.Len(t, out.Branches, 3)
	assert.Equal(t, "healthcare", out.Branches[0].Name)
	assert.Equal(t, int64(1525000), out.Branches[0].Records)
	assert.Equal(t, int64(1525000), out.Get("healthcare", "hacked")+out.Get("healthcare", "lost device"))
}

func TestHandleCategories(t *testing.T) {
	h, path := newTestHandlers(t)

	res, _, err := h.handleCategories(context.Background(), nil, CategoriesInput{})
	require.NoError(t, err)

	var out CategoriesOutput
	decodeResult(t, res, &out)
	assert.Equal(t, path, out.Source)
	assert.Equal(t, 4, out.Rows)
	assert.Equal(t, 2014, out.YearMin)
	assert.Equal(t, 2020, out.YearMax)
	assert.Equal(t, []string{"healthcare", "retail", "web, tech"}, out.OrganizationTypes)
	assert.Equal(t, []string{"hacked", "lost device"}, out.Methods)
	assert.Contains(t, out.Sections, "summary")
}

func TestHandleReport(t *testing.T) {
	h, _ := newTestHandlers(t)

	res, _, err := h.handleReport(context.Background(), nil, ReportInput{Sections: "summary, years", YearMin: intPtr(2018)})
	require.NoError(t, err)

	text := resultText(t, res)
	assert.True(t, strings.HasPrefix(text, "Data Breaches Report\n"))
	assert.Contains(t, text, "Years:     2018 to 2020")
	assert.Contains(t, text, "84,000")
}

func TestHandleReport_UnknownSection(t *testing.T) {
	h, _ := newTestHandlers(t)

	_, _, err := h.handleReport(context.Background(), nil, ReportInput{Sections: "summary,bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown section(s) bogus")
}

func TestRowLimit(t *testing.T) {
	assert.Equal(t, defaultRowLimit, rowLimit(0))
	assert.Equal(t, defaultRowLimit, rowLimit(-3))
	assert.Equal(t, 7, rowLimit(7))
	assert.Equal(t, maxRowLimit, rowLimit(maxRowLimit+1))
}

func FuzzSplitAndTrim(f *testing.F) {
	f.Add("")
	f.Add(",")
	f.Add("a,b,c")
	f.Add("  ,  ,  ")

	f.Fuzz(func(t *testing.T, input string) {
		for _, s := range splitAndTrim(input) {
			if s == "" || strings.TrimSpace(s) != s {
				t.Errorf("splitAndTrim returned %q", s)
			}
		}
	})
}
