package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// summarySection shows the two info cards: Total Data and Total Records.
type summarySection struct {
	totalData    string
	totalRecords string
	filters      []string
}

func (s *summarySection) Name() string        { return "summary" }
func (s *summarySection) Description() string { return "Total breaches and records in the selection" }

func (s *summarySection) Analyze(in Input) error {
	res := in.Result
	s.totalData = pipeline.FormatInt(int64(res.Summary.TotalCount))
	s.totalRecords = pipeline.FormatInt(res.Summary.TotalRecords)
	s.filters = []string{
		"Organization types: " + describeFilter(res.Selection.OrganizationTypes, res.OrganizationTypes),
		"Methods:            " + describeFilter(res.Selection.Methods, res.Methods),
	}
	return nil
}

func (s *summarySection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n%s\n", SectionTitle("Summary"), underline("Summary", '-'))

	width := max(len(s.totalData), len(s.totalRecords), len("Total Records"))
	border := "+" + strings.Repeat("-", width+2) + "+"
	_, _ = fmt.Fprintf(w, "  %s  %s\n", border, border)
	_, _ = fmt.Fprintf(w, "  | %s |  | %s |\n", colorCyan.Sprint(pad(s.totalData, width, AlignRight)), colorCyan.Sprint(pad(s.totalRecords, width, AlignRight)))
	_, _ = fmt.Fprintf(w, "  | %s |  | %s |\n", pad("Total Data", width, AlignRight), pad("Total Records", width, AlignRight))
	_, _ = fmt.Fprintf(w, "  %s  %s\n", border, border)
	for _, f := range s.filters {
		_, _ = fmt.Fprintf(w, "  %s\n", f)
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}

// describeFilter is "all" when every known value is selected, "none" when
// the set is empty, else the selected values.
func describeFilter(s pipeline.Set, known pipeline.Counts) string {
	if len(s) == 0 {
		return "none"
	}
	for _, c := range known {
		if !s.Has(c.Value) {
			return strings.Join(s.Values(), "; ")
		}
	}
	return fmt.Sprintf("all (%d)", len(known))
}
