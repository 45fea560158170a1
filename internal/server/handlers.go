// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/chart"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/output"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// paramColumns selects the data-page and CSV columns, comma-separated.
const paramColumns = "columns"

// badRequestError marks errors caused by malformed request input.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

// CategoriesResponse describes what a client can filter on.
type CategoriesResponse struct {
	Source            string   `json:"source"`
	Rows              int      `json:"rows"`
	YearMin           int      `json:"year_min"`
	YearMax           int      `json:"year_max"`
	OrganizationTypes []string `json:"organization_types"`
	Methods           []string `json:"methods"`
	Columns           []string `json:"columns"`
	Charts            []string `json:"charts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "rows": s.ds.Len()})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderHTML(w, r, output.PageDashboard)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	s.renderHTML(w, r, output.PageData)
}

func (s *Server) renderHTML(w http.ResponseWriter, r *http.Request, page output.Page) {
	doc, err := s.document(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc.Page = page
	doc.Interactive = true
	doc.Query = r.URL.Query()

	// Render into a buffer so a template failure still yields a clean 500.
	var buf bytes.Buffer
	if err := output.NewHTMLFormatter().Format(doc, &buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	doc, err := s.document(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f := output.NewJSONFormatter()
	f.IncludeRows = r.URL.Query().Get("rows") == "true"
	env, err := f.Envelope(doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, env)
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	minYear, maxYear := s.ds.YearRange()
	s.writeJSON(w, http.StatusOK, CategoriesResponse{
		Source:            s.ds.Source(),
		Rows:              s.ds.Len(),
		YearMin:           minYear,
		YearMax:           maxYear,
		OrganizationTypes: s.ds.OrganizationTypes(),
		Methods:           s.ds.Methods(),
		Columns:           s.ds.Columns(),
		Charts:            output.ChartNames(),
	})
}

func (s *Server) handleRecordsCSV(w http.ResponseWriter, r *http.Request) {
	doc, err := s.document(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := output.NewCSVFormatter().Format(doc, &buf); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="records.csv"`)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	format := chart.Format(chi.URLParam(r, "ext"))
	if format != chart.PNG && format != chart.SVG {
		s.writeError(w, r, &badRequestError{err: errors.New("chart format must be png or svg")})
		return
	}

	res, err := s.compute(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, ok, err := output.RenderChart(res, name, format)
	switch {
	case errors.Is(err, output.ErrUnknownChart):
		s.writeJSONError(w, r, http.StatusNotFound, err)
		return
	case err != nil:
		s.metrics.IncrementChart(name, "error")
		s.writeError(w, r, err)
		return
	case !ok:
		s.metrics.IncrementChart(name, "empty")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.metrics.IncrementChart(name, "ok")
	w.Header().Set("Content-Type", format.ContentType())
	_, _ = w.Write(data)
}

// document computes the request's result and resolves its detail columns.
func (s *Server) document(r *http.Request) (output.Document, error) {
	res, err := s.compute(r)
	if err != nil {
		return output.Document{}, err
	}
	requested := s.columns
	if raw := strings.TrimSpace(r.URL.Query().Get(paramColumns)); raw != "" {
		requested = splitColumns(raw)
	}
	cols, err := output.ResolveColumns(s.ds, requested)
	if err != nil {
		return output.Document{}, &badRequestError{err: err}
	}
	return output.Document{Result: res, Columns: cols}, nil
}

func splitColumns(raw string) []string {
	var out []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// writeError maps err onto a status code and writes it as JSON.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var bad *badRequestError
	var invalid *pipeline.InvalidSelectionError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &bad):
		status = http.StatusBadRequest
	case errors.As(err, &invalid):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			"request_id", GetRequestID(r.Context()),
			"error", err,
		)
	}
	s.writeJSONError(w, r, status, err)
}

func (s *Server) writeJSONError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.writeJSON(w, status, map[string]string{
		"error":      err.Error(),
		"request_id": GetRequestID(r.Context()),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
