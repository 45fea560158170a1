// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// Page selects which part of the dashboard an HTML document shows.
type Page string

const (
	// PageFull shows the charts and the data table on one page.
	PageFull      Page = ""
	PageDashboard Page = "dashboard"
	PageData      Page = "data"
)

// Document is the unit every formatter renders: one pipeline result plus
// what is needed to present it.
type Document struct {
	Result *pipeline.Result

	// Columns is the detail-table column subset in display order. Empty
	// means every dataset column in header order.
	Columns []string

	Page Page

	// Interactive documents are served over HTTP and carry a filter form and
	// links that re-query the server with Query as the base.
	Interactive bool
	Query       url.Values
}

// Source returns the path of the dataset behind the document.
func (d Document) Source() string {
	if d.Result == nil || d.Result.Dataset() == nil {
		return ""
	}
	return d.Result.Dataset().Source()
}

// DetailColumns returns the columns the detail table shows.
func (d Document) DetailColumns() []string {
	if len(d.Columns) > 0 {
		return d.Columns
	}
	if d.Result == nil || d.Result.Dataset() == nil {
		return append([]string(nil), dataset.RequiredColumns...)
	}
	return d.Result.Dataset().Columns()
}

// ResolveColumns maps requested column names onto the dataset header,
// case-insensitively, keeping the requested order. Unknown names are an error.
func ResolveColumns(ds *dataset.Dataset, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return nil, nil
	}
	byKey := make(map[string]string)
	for _, c := range ds.Columns() {
		byKey[strings.ToLower(strings.TrimSpace(c))] = c
	}
	out := make([]string, 0, len(requested))
	var unknown []string
	for _, r := range requested {
		c, ok := byKey[strings.ToLower(strings.TrimSpace(r))]
		if !ok {
			unknown = append(unknown, r)
			continue
		}
		out = append(out, c)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown column(s) %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(ds.Columns(), ", "))
	}
	return out, nil
}

// cell returns the display text of column c for r. Records totals are
// thousands-separated.
func cell(r dataset.Record, c string) string {
	if strings.EqualFold(c, dataset.ColumnRecords) {
		if !r.HasRecords {
			return ""
		}
		return pipeline.FormatInt(r.Records)
	}
	return r.Field(c)
}
