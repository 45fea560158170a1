package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// errNoResult is returned by formatters given a document without a result.
var errNoResult = errors.New("no result to format")

// JSONEnvelope wraps the aggregates with metadata for the JSON output format.
type JSONEnvelope struct {
	Selection         pipeline.Selection   `json:"selection"`
	Summary           pipeline.Summary     `json:"summary"`
	OrganizationTypes pipeline.Counts      `json:"organization_types"`
	Methods           pipeline.Counts      `json:"methods"`
	Years             []pipeline.YearTotal `json:"years"`
	Hierarchy         pipeline.Hierarchy   `json:"hierarchy"`
	Rows              []map[string]any     `json:"rows,omitempty"`
	Metadata          JSONMetadata         `json:"metadata"`
}

// JSONMetadata describes where the result came from.
type JSONMetadata struct {
	Source      string   `json:"source"`
	TotalCount  int      `json:"total_count"`
	Columns     []string `json:"columns,omitempty"`
	GeneratedAt string   `json:"generated_at"`
}

// JSONFormatter writes a result as a JSON object with metadata envelope.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	// When false (default), output is indented with two spaces.
	Compact bool

	// IncludeRows adds the filtered records, restricted to the document's
	// detail columns.
	IncludeRows bool

	// nowFunc is used for testing to override the current time.
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Envelope builds the JSON document for doc without encoding it.
func (f *JSONFormatter) Envelope(doc Document) (JSONEnvelope, error) {
	res := doc.Result
	if res == nil {
		return JSONEnvelope{}, errNoResult
	}

	now := time.Now()
	if f.nowFunc != nil {
		now = f.nowFunc()
	}

	years := res.Years
	if years == nil {
		years = []pipeline.YearTotal{}
	}
	env := JSONEnvelope{
		Selection:         res.Selection,
		Summary:           res.Summary,
		OrganizationTypes: res.OrganizationTypes,
		Methods:           res.Methods,
		Years:             years,
		Hierarchy:         res.Hierarchy,
		Metadata: JSONMetadata{
			Source:      doc.Source(),
			TotalCount:  res.Summary.TotalCount,
			GeneratedAt: now.UTC().Format("2006-01-02T15:04:05Z"),
		},
	}
	if f.IncludeRows {
		cols := doc.DetailColumns()
		env.Metadata.Columns = cols
		env.Rows = make([]map[string]any, 0, res.View().Len())
		for _, r := range res.Rows() {
			env.Rows = append(env.Rows, rowObject(r, cols))
		}
	}
	return env, nil
}

// Format writes the result as a JSON document with a metadata envelope to w.
// Output is pretty-printed for terminals and buffers and compact for pipes
// and files unless Compact forces single-line output.
func (f *JSONFormatter) Format(doc Document, w io.Writer) error {
	env, err := f.Envelope(doc)
	if err != nil {
		return err
	}

	var data []byte
	if f.shouldCompact(w) {
		data, err = json.Marshal(env)
	} else {
		data, err = json.MarshalIndent(env, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write json trailing newline: %w", err)
	}
	return nil
}

// shouldCompact determines whether to use compact mode.
// If Compact is explicitly set, use that value.
// Otherwise, auto-detect: pretty-print for TTYs, compact for pipes.
func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}

	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false // default to pretty on error
		}
		if fi.Mode()&os.ModeCharDevice != 0 {
			return false // TTY -> pretty
		}
		return true // pipe/file -> compact
	}

	// For non-file writers (e.g., bytes.Buffer in tests), default to pretty.
	return false
}

// rowObject keys a record by column. Year and Records keep their numeric
// types; a missing records value is null.
func rowObject(r dataset.Record, cols []string) map[string]any {
	obj := make(map[string]any, len(cols))
	for _, c := range cols {
		switch {
		case strings.EqualFold(c, dataset.ColumnYear):
			obj[c] = r.Year
		case strings.EqualFold(c, dataset.ColumnRecords):
			if r.HasRecords {
				obj[c] = r.Records
			} else {
				obj[c] = nil
			}
		default:
			obj[c] = r.Field(c)
		}
	}
	return obj
}
