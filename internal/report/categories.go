// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// categorySection is the card grid for one dimension: every category of the
// full dataset with its count in the selection, zeros included.
type categorySection struct {
	name  string
	title string
	dim   pipeline.Dimension

	counts pipeline.Counts
}

func (s *categorySection) Name() string { return s.name }
func (s *categorySection) Description() string {
	return fmt.Sprintf("Breach count per %s", s.dim.Label())
}

func (s *categorySection) Analyze(in Input) error {
	if s.dim == pipeline.DimMethod {
		s.counts = in.Result.Methods
	} else {
		s.counts = in.Result.OrganizationTypes
	}
	return nil
}

func (s *categorySection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n%s\n", SectionTitle(s.title), underline(s.title, '-'))

	total := s.counts.Total()
	tbl := NewTable(
		Column{Header: s.dim.Label(), MaxWidth: 40},
		Column{Header: "Count", Align: AlignRight, Color: ColorCount},
		Column{Header: "Share", Align: AlignRight},
	)
	for _, c := range s.counts {
		tbl.AddRow(pipeline.Capitalize(c.Value), pipeline.FormatInt(int64(c.Count)), share(c.Count, total))
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}

func share(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}
