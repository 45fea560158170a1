package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// nowFunc is overridden in tests.
var nowFunc = time.Now

// ReportJSON is the top-level JSON structure for --format json output.
type ReportJSON struct {
	Dataset   string        `json:"dataset"`
	Generated string        `json:"generated"`
	Sections  []SectionJSON `json:"sections,omitempty"`
}

// SectionJSON is the JSON representation of a single report section.
type SectionJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`            // "ok", "skipped"
	Content     string `json:"content,omitempty"` // rendered text
}

// Render writes the terminal report: a header followed by each requested
// section. An empty filter renders every registered section.
func Render(w io.Writer, in Input, sections []string) error {
	if in.Result == nil {
		return errors.New("report: no result")
	}
	sel := in.Result.Selection

	title := "Data Breaches Report"
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", SectionTitle(title), underline(title, '=')); err != nil {
		return fmt.Errorf("render header: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Dataset:   %s\n", in.Result.Dataset().Source())
	_, _ = fmt.Fprintf(w, "Generated: %s\n", nowFunc().Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "Years:     %d to %d\n", sel.Years.Min, sel.Years.Max)
	_, _ = fmt.Fprintf(w, "Primary:   %s\n\n", sel.Primary.Label())

	for _, name := range ResolveSections(sections) {
		sec := Get(name)
		if sec == nil {
			continue
		}
		if err := sec.Analyze(in); err != nil {
			if errors.Is(err, ErrSectionSkipped) {
				continue
			}
			return fmt.Errorf("section %s: %w", name, err)
		}
		if err := sec.Render(w); err != nil {
			return fmt.Errorf("section %s render: %w", name, err)
		}
	}
	return nil
}

// RenderJSON writes the report as machine-readable JSON with each section's
// rendered text.
func RenderJSON(w io.Writer, in Input, sections []string) error {
	if in.Result == nil {
		return errors.New("report: no result")
	}
	out := ReportJSON{
		Dataset:   in.Result.Dataset().Source(),
		Generated: nowFunc().Format(time.RFC3339),
	}

	for _, name := range ResolveSections(sections) {
		sec := Get(name)
		if sec == nil {
			continue
		}
		sj := SectionJSON{Name: sec.Name(), Description: sec.Description()}

		if err := sec.Analyze(in); err != nil {
			if errors.Is(err, ErrSectionSkipped) {
				sj.Status = "skipped"
				out.Sections = append(out.Sections, sj)
				continue
			}
			return fmt.Errorf("section %s: %w", name, err)
		}

		sj.Status = "ok"
		var buf bytes.Buffer
		if err := sec.Render(&buf); err != nil {
			return fmt.Errorf("section %s render: %w", name, err)
		}
		sj.Content = buf.String()
		out.Sections = append(out.Sections, sj)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// ResolveSections determines which sections to run without printing warnings.
// If filter is empty, all registered sections are used.
func ResolveSections(filter []string) []string {
	if len(filter) == 0 {
		return List()
	}

	available := make(map[string]bool)
	for _, name := range List() {
		available[name] = true
	}

	var names []string
	for _, name := range filter {
		if available[name] {
			names = append(names, name)
		}
	}
	return names
}

// UnknownSections returns the names in filter that are not registered.
func UnknownSections(filter []string) []string {
	var unknown []string
	for _, name := range filter {
		if Get(name) == nil {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
