package output

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

func init() {
	RegisterFormatter(NewHTMLFormatter())
}

// HTMLFormatter writes a result as a self-contained HTML dashboard. Charts
// are embedded as data URIs so the page has no external assets.
type HTMLFormatter struct {
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*HTMLFormatter)(nil)

// NewHTMLFormatter returns a new HTMLFormatter.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Name returns the format name.
func (h *HTMLFormatter) Name() string {
	return "html"
}

var (
	htmlTmplOnce sync.Once
	htmlTmpl     *template.Template
)

func dashboardTemplate() *template.Template {
	htmlTmplOnce.Do(func() {
		htmlTmpl = template.Must(template.New("dashboard").Parse(htmlTemplate))
	})
	return htmlTmpl
}

// Format writes doc as an HTML page to w.
func (h *HTMLFormatter) Format(doc Document, w io.Writer) error {
	if doc.Result == nil {
		return errNoResult
	}

	var charts []chartImage
	if doc.Page != PageData {
		charts = inlineCharts(dashboardCharts(doc.Result))
	}

	data := buildHTMLData(doc, now(h.nowFunc), charts)
	if err := dashboardTemplate().Execute(w, data); err != nil {
		return fmt.Errorf("execute html template: %w", err)
	}
	return nil
}

func now(f func() time.Time) time.Time {
	if f != nil {
		return f()
	}
	return time.Now()
}

// htmlData holds all template data for the HTML dashboard.
type htmlData struct {
	GeneratedAt string
	Source      string
	Interactive bool
	ShowCharts  bool
	ShowData    bool

	TotalData    string
	TotalRecords string

	Years        pipeline.YearRange
	DatasetYears pipeline.YearRange
	OrgOptions   []option
	MethodOption []option
	PrimaryLinks []link
	Nav          []link

	// Carried through the filter form so Apply keeps them.
	Primary      string
	ColumnsParam string

	OrgCards    []card
	MethodCards []card
	Charts      []chartImage

	Columns []string
	Rows    [][]string
}

type option struct {
	Value   string
	Label   string
	Checked bool
}

type card struct {
	Label string
	Count string
}

type link struct {
	Label  string
	Href   string
	Active bool
}

func buildHTMLData(doc Document, at time.Time, charts []chartImage) htmlData {
	res := doc.Result
	ds := res.Dataset()
	minYear, maxYear := ds.YearRange()

	data := htmlData{
		GeneratedAt:  at.UTC().Format("2006-01-02 15:04 UTC"),
		Source:       doc.Source(),
		Interactive:  doc.Interactive,
		ShowCharts:   doc.Page != PageData,
		ShowData:     doc.Page != PageDashboard,
		TotalData:    pipeline.FormatInt(int64(res.Summary.TotalCount)),
		TotalRecords: pipeline.FormatInt(res.Summary.TotalRecords),
		Years:        res.Selection.Years,
		DatasetYears: pipeline.YearRange{Min: minYear, Max: maxYear},
		OrgOptions:   buildOptions(res.OrganizationTypes, res.Selection.OrganizationTypes),
		MethodOption: buildOptions(res.Methods, res.Selection.Methods),
		OrgCards:     buildCards(res.OrganizationTypes),
		MethodCards:  buildCards(res.Methods),
		Charts:       charts,
		Columns:      doc.DetailColumns(),
	}

	if doc.Interactive {
		base := doc.Query
		if base == nil {
			base = res.Selection.Query()
		}
		data.Primary = string(res.Hierarchy.Primary)
		data.ColumnsParam = base.Get("columns")
		data.Nav = []link{
			{Label: "Dashboard", Href: "/?" + base.Encode(), Active: doc.Page != PageData},
			{Label: "Data", Href: "/data?" + base.Encode(), Active: doc.Page == PageData},
		}
		for _, dim := range []pipeline.Dimension{pipeline.DimMethod, pipeline.DimOrganizationType} {
			data.PrimaryLinks = append(data.PrimaryLinks, link{
				Label:  dim.Label(),
				Href:   "/?" + withParam(base, pipeline.ParamPrimary, string(dim)).Encode(),
				Active: res.Hierarchy.Primary == dim,
			})
		}
	}

	if data.ShowData {
		view := res.View()
		data.Rows = make([][]string, view.Len())
		for i := range data.Rows {
			r := view.At(i)
			row := make([]string, len(data.Columns))
			for j, c := range data.Columns {
				row[j] = cell(r, c)
			}
			data.Rows[i] = row
		}
	}
	return data
}

func buildOptions(known pipeline.Counts, selected pipeline.Set) []option {
	opts := make([]option, len(known))
	for i, c := range known {
		opts[i] = option{Value: c.Value, Label: pipeline.Capitalize(c.Value), Checked: selected.Has(c.Value)}
	}
	return opts
}

func buildCards(counts pipeline.Counts) []card {
	cards := make([]card, len(counts))
	for i, c := range counts {
		cards[i] = card{Label: pipeline.Capitalize(c.Value), Count: pipeline.FormatInt(int64(c.Count))}
	}
	return cards
}

// withParam copies q with key set to value.
func withParam(q url.Values, key, value string) url.Values {
	out := make(url.Values, len(q)+1)
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	out.Set(key, value)
	return out
}
