// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

func init() {
	RegisterFormatter(NewHTMLDirFormatter())
}

// HTMLDirFormatter writes the dashboard as a directory: index.html, one
// image per chart under charts/, and the filtered records as data.csv.
type HTMLDirFormatter struct {
	nowFunc func() time.Time
}

// Compile-time interface checks.
var (
	_ Formatter          = (*HTMLDirFormatter)(nil)
	_ DirectoryFormatter = (*HTMLDirFormatter)(nil)
)

// NewHTMLDirFormatter returns a new HTMLDirFormatter.
func NewHTMLDirFormatter() *HTMLDirFormatter {
	return &HTMLDirFormatter{}
}

// Name returns the format name.
func (h *HTMLDirFormatter) Name() string {
	return "html-dir"
}

// Format returns an error directing users to use --output (-o) with html-dir.
func (h *HTMLDirFormatter) Format(_ Document, _ io.Writer) error {
	return fmt.Errorf("html-dir format requires --output (-o) flag to specify output directory")
}

// FormatDir writes the dashboard to dir.
func (h *HTMLDirFormatter) FormatDir(doc Document, dir string) error {
	if doc.Result == nil {
		return errNoResult
	}
	chartsDir := filepath.Join(dir, "charts")
	if err := os.MkdirAll(chartsDir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	specs := dashboardCharts(doc.Result)
	images := make([]chartImage, 0, len(specs))
	for _, spec := range specs {
		data, ok, err := renderChart(spec)
		img := chartImage{Name: spec.Name, Title: spec.Title, Legend: spec.Legend, Empty: !ok}
		if err != nil {
			img.Empty = false
			img.Error = err.Error()
			slog.Warn("chart unavailable", "chart", spec.Name, "error", err)
		}
		if ok {
			if err := os.WriteFile(filepath.Join(chartsDir, spec.FileName()), data, 0o600); err != nil { //nolint:gosec // dashboard assets are meant to be readable
				return fmt.Errorf("write %s: %w", spec.FileName(), err)
			}
			img.Src = template.URL("charts/" + spec.FileName()) //nolint:gosec // fixed relative path
		}
		images = append(images, img)
	}

	if err := writeFileWith(filepath.Join(dir, "data.csv"), func(w io.Writer) error {
		return NewCSVFormatter().Format(doc, w)
	}); err != nil {
		return err
	}

	doc.Page = PageFull
	data := buildHTMLData(doc, now(h.nowFunc), images)
	return writeFileWith(filepath.Join(dir, "index.html"), func(w io.Writer) error {
		if err := dashboardTemplate().Execute(w, data); err != nil {
			return fmt.Errorf("execute html-dir template: %w", err)
		}
		return nil
	})
}

// writeFileWith creates path and hands it to write, closing it afterwards.
func writeFileWith(path string, write func(io.Writer) error) error {
	f, err := os.Create(path) //nolint:gosec // path is user-specified output directory
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}
