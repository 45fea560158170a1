package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
)

func init() {
	RegisterFormatter(NewCSVFormatter())
}

// CSVFormatter writes the filtered records as CSV, restricted to the
// document's detail columns. Records are written as plain integers.
type CSVFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*CSVFormatter)(nil)

// NewCSVFormatter returns a new CSVFormatter.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Name returns the format name.
func (c *CSVFormatter) Name() string {
	return "csv"
}

// Format writes a header row followed by one row per filtered record.
func (c *CSVFormatter) Format(doc Document, w io.Writer) error {
	if doc.Result == nil {
		return errNoResult
	}
	cols := doc.DetailColumns()

	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, len(cols))
	for _, r := range doc.Result.Rows() {
		for i, col := range cols {
			row[i] = rawCell(r, col)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func rawCell(r dataset.Record, col string) string {
	if strings.EqualFold(col, dataset.ColumnRecords) && r.HasRecords {
		return strconv.FormatInt(r.Records, 10)
	}
	return r.Field(col)
}
