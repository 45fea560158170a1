package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// recordsSection is the detail table of filtered rows.
type recordsSection struct {
	columns []string
	rows    [][]string
	total   int
}

func (s *recordsSection) Name() string        { return "records" }
func (s *recordsSection) Description() string { return "Filtered breach records" }

func (s *recordsSection) Analyze(in Input) error {
	if in.MaxRows <= 0 {
		return fmt.Errorf("records: %w", ErrSectionSkipped)
	}
	s.columns = in.Columns
	if len(s.columns) == 0 {
		s.columns = in.Result.Dataset().Columns()
	}

	view := in.Result.View()
	s.total = view.Len()
	n := min(s.total, in.MaxRows)
	s.rows = make([][]string, n)
	for i := 0; i < n; i++ {
		r := view.At(i)
		row := make([]string, len(s.columns))
		for j, c := range s.columns {
			row[j] = displayCell(r, c)
		}
		s.rows[i] = row
	}
	return nil
}

func (s *recordsSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n%s\n", SectionTitle("Data"), underline("Data", '-'))

	if s.total == 0 {
		_, _ = fmt.Fprintf(w, "  No records match the current filters.\n\n")
		return nil
	}

	cols := make([]Column, len(s.columns))
	for i, c := range s.columns {
		cols[i] = Column{Header: c, MaxWidth: 40}
		if strings.EqualFold(c, dataset.ColumnRecords) || strings.EqualFold(c, dataset.ColumnYear) {
			cols[i].Align = AlignRight
		}
	}
	tbl := NewTable(cols...)
	for _, row := range s.rows {
		tbl.AddRow(row...)
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	if s.total > len(s.rows) {
		_, _ = fmt.Fprintf(w, "  ... %d more record(s)\n", s.total-len(s.rows))
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}

func displayCell(r dataset.Record, c string) string {
	if strings.EqualFold(c, dataset.ColumnRecords) {
		if !r.HasRecords {
			return ""
		}
		return pipeline.FormatInt(r.Records)
	}
	return r.Field(c)
}
