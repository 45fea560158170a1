package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

const barWidth = 30

// yearsSection is the text rendition of the records-per-year line chart.
type yearsSection struct {
	years []pipeline.YearTotal
}

func (s *yearsSection) Name() string        { return "years" }
func (s *yearsSection) Description() string { return "Data breach records per year" }

func (s *yearsSection) Analyze(in Input) error {
	s.years = in.Result.Years
	return nil
}

func (s *yearsSection) Render(w io.Writer) error {
	title := "Data Breach Instances per Year"
	_, _ = fmt.Fprintf(w, "%s\n%s\n", SectionTitle(title), underline(title, '-'))

	if len(s.years) == 0 {
		_, _ = fmt.Fprintf(w, "  No records match the current filters.\n\n")
		return nil
	}

	var peak int64
	for _, y := range s.years {
		peak = max(peak, y.Records)
	}

	tbl := NewTable(
		Column{Header: "Year"},
		Column{Header: "Records", Align: AlignRight},
		Column{Header: "", Color: ColorBar},
	)
	for _, y := range s.years {
		tbl.AddRow(strconv.Itoa(y.Year), pipeline.FormatInt(y.Records), Bar(y.Records, peak, barWidth))
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
