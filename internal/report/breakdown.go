// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// breakdownSection is the text rendition of the treemap: each primary
// category with its secondary split, largest first.
type breakdownSection struct {
	hierarchy pipeline.Hierarchy
}

func (s *breakdownSection) Name() string { return "breakdown" }
func (s *breakdownSection) Description() string {
	return "Records by primary and secondary category"
}

func (s *breakdownSection) Analyze(in Input) error {
	s.hierarchy = in.Result.Hierarchy
	return nil
}

func (s *breakdownSection) Render(w io.Writer) error {
	h := s.hierarchy
	title := fmt.Sprintf("Method and Sector Proportions (by %s)", h.Primary.Label())
	_, _ = fmt.Fprintf(w, "%s\n%s\n", SectionTitle(title), underline(title, '-'))

	if len(h.Branches) == 0 {
		_, _ = fmt.Fprintf(w, "  No records match the current filters.\n\n")
		return nil
	}

	total := h.LeafTotal()
	tbl := NewTable(
		Column{Header: h.Primary.Label() + " / " + h.Secondary.Label(), MaxWidth: 48},
		Column{Header: "Records", Align: AlignRight},
		Column{Header: "Share", Align: AlignRight},
	)
	for _, b := range h.Branches {
		tbl.AddRow(pipeline.Capitalize(b.Name), pipeline.FormatInt(b.Records), shareRecords(b.Records, total))
		for _, l := range b.Children {
			tbl.AddRow("  "+pipeline.Capitalize(l.Name), pipeline.FormatInt(l.Records), shareRecords(l.Records, total))
		}
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}

func shareRecords(n, total int64) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}
