package output

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

var fixedTime = time.Date(2026, 2, 12, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// restoreFormatters re-registers the built-in formatters after a test that
// reset the registry.
func restoreFormatters() {
	resetFmtForTesting()
	RegisterFormatter(NewJSONFormatter())
	RegisterFormatter(NewMarkdownFormatter())
	RegisterFormatter(NewCSVFormatter())
	RegisterFormatter(NewHTMLFormatter())
	RegisterFormatter(NewHTMLDirFormatter())
}

var testColumns = []string{"Entity", "Year", "Records", "Organization type", "Method"}

func testDataset() *dataset.Dataset {
	rec := func(entity string, year int, records int64, org, method string, has bool) dataset.Record {
		fields := map[string]string{
			"Entity":            entity,
			"Year":              strconv.Itoa(year),
			"Organization type": org,
			"Method":            method,
		}
		if has {
			fields["Records"] = strconv.FormatInt(records, 10)
		}
		return dataset.Record{
			Year: year, OrganizationType: org, Method: method,
			Records: records, HasRecords: has, Fields: fields,
		}
	}
	return dataset.New("breaches.csv", testColumns, []dataset.Record{
		rec("Acme Health", 2020, 1500000, "healthcare", "hacked", true),
		rec("Shop | Co", 2021, 50000, "retail", "lost device", true),
		rec("Clinic", 2020, 25000, "healthcare", "lost device", true),
		rec("Portal", 2019, 0, "web, tech", "hacked", false),
	})
}

func testResult(t *testing.T, sel *pipeline.Selection) *pipeline.Result {
	t.Helper()
	ds := testDataset()
	s := pipeline.DefaultSelection(ds)
	if sel != nil {
		s = *sel
	}
	res, err := pipeline.Compute(ds, s)
	require.NoError(t, err)
	return res
}

func testDocument(t *testing.T) Document {
	t.Helper()
	return Document{Result: testResult(t, nil)}
}

// emptyDocument filters out every record.
func emptyDocument(t *testing.T) Document {
	t.Helper()
	ds := testDataset()
	sel := pipeline.DefaultSelection(ds)
	sel.Methods = pipeline.NewSet()
	return Document{Result: testResult(t, &sel)}
}
