package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes a result as a human-readable Markdown report.
type MarkdownFormatter struct {
	// MaxRows caps the detail table. Zero omits the table.
	MaxRows int
}

// Compile-time interface check.
var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format writes the result as a Markdown document to w.
//
// The output includes:
//   - A title heading with the active filters
//   - Total Data and Total Records
//   - Records per year
//   - Counts per organization type and per method
//   - The two-level breakdown by the selection's primary dimension
//   - Optionally the first MaxRows filtered records
func (m *MarkdownFormatter) Format(doc Document, w io.Writer) error {
	res := doc.Result
	if res == nil {
		return errNoResult
	}
	mw := &mdWriter{w: w}

	writeMarkdownHeader(mw, doc)
	writeYearTable(mw, res.Years)
	writeCountsTable(mw, "Organization Types", "Organization type", res.OrganizationTypes)
	writeCountsTable(mw, "Methods", "Method", res.Methods)
	writeHierarchyTable(mw, res.Hierarchy)
	if m.MaxRows > 0 {
		writeDetailTable(mw, doc, m.MaxRows)
	}
	return mw.err
}

// mdWriter remembers the first write error so sections can be written
// without checking every line.
type mdWriter struct {
	w   io.Writer
	err error
}

func (m *mdWriter) printf(format string, args ...any) {
	if m.err != nil {
		return
	}
	if _, err := fmt.Fprintf(m.w, format, args...); err != nil {
		m.err = fmt.Errorf("write markdown: %w", err)
	}
}

func writeMarkdownHeader(mw *mdWriter, doc Document) {
	res := doc.Result
	sel := res.Selection
	mw.printf("# Data Breaches Dashboard\n\n")
	if src := doc.Source(); src != "" {
		mw.printf("**Source:** `%s`\n\n", src)
	}
	mw.printf("**Years:** %d to %d | **Organization types:** %s | **Methods:** %s | **Primary:** %s\n\n",
		sel.Years.Min, sel.Years.Max,
		describeSet(sel.OrganizationTypes, res.OrganizationTypes),
		describeSet(sel.Methods, res.Methods),
		sel.Primary)
	mw.printf("| Total Data | Total Records |\n")
	mw.printf("|-----------:|--------------:|\n")
	mw.printf("| %s | %s |\n\n", pipeline.FormatInt(int64(res.Summary.TotalCount)), pipeline.FormatInt(res.Summary.TotalRecords))
}

// describeSet renders a selected set compactly: "all (n)" when every known
// value is selected, "none" when empty, else the sorted values.
func describeSet(s pipeline.Set, known pipeline.Counts) string {
	if len(s) == 0 {
		return "none"
	}
	for _, c := range known {
		if !s.Has(c.Value) {
			return strings.Join(s.Values(), ", ")
		}
	}
	return "all (" + strconv.Itoa(len(known)) + ")"
}

func writeYearTable(mw *mdWriter, years []pipeline.YearTotal) {
	mw.printf("## Data Breach Instances per Year\n\n")
	if len(years) == 0 {
		mw.printf("_No records match the current filters._\n\n")
		return
	}
	mw.printf("| Year | Records |\n")
	mw.printf("|------|--------:|\n")
	for _, y := range years {
		mw.printf("| %d | %s |\n", y.Year, pipeline.FormatInt(y.Records))
	}
	mw.printf("\n")
}

func writeCountsTable(mw *mdWriter, title, header string, counts pipeline.Counts) {
	mw.printf("## %s\n\n", title)
	mw.printf("| %s | Count |\n", header)
	mw.printf("|%s|------:|\n", strings.Repeat("-", len(header)+2))
	for _, c := range counts {
		mw.printf("| %s | %s |\n", escapeCell(pipeline.Capitalize(c.Value)), pipeline.FormatInt(int64(c.Count)))
	}
	mw.printf("\n")
}

func writeHierarchyTable(mw *mdWriter, h pipeline.Hierarchy) {
	mw.printf("## Breakdown by %s\n\n", h.Primary.Label())
	if len(h.Branches) == 0 {
		mw.printf("_No records match the current filters._\n\n")
		return
	}
	mw.printf("| %s | %s | Records |\n", h.Primary.Label(), h.Secondary.Label())
	mw.printf("|---|---|--------:|\n")
	for _, b := range h.Branches {
		mw.printf("| **%s** | | **%s** |\n", escapeCell(pipeline.Capitalize(b.Name)), pipeline.FormatInt(b.Records))
		for _, l := range b.Children {
			mw.printf("| | %s | %s |\n", escapeCell(pipeline.Capitalize(l.Name)), pipeline.FormatInt(l.Records))
		}
	}
	mw.printf("\n")
}

func writeDetailTable(mw *mdWriter, doc Document, limit int) {
	cols := doc.DetailColumns()
	rows := doc.Result.View()
	mw.printf("## Records\n\n")
	mw.printf("| %s |\n", strings.Join(escapeAll(cols), " | "))
	mw.printf("|%s\n", strings.Repeat("---|", len(cols)))
	n := min(rows.Len(), limit)
	for i := 0; i < n; i++ {
		r := rows.At(i)
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = escapeCell(cell(r, c))
		}
		mw.printf("| %s |\n", strings.Join(cells, " | "))
	}
	if rows.Len() > n {
		mw.printf("\n_%d more record(s) not shown._\n", rows.Len()-n)
	}
	mw.printf("\n")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func escapeAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = escapeCell(s)
	}
	return out
}
