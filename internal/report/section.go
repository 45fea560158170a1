// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

// Package report renders a pipeline result as a terminal dashboard. Each
// section consumes the result and renders one focused block.
package report

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// ErrSectionSkipped indicates a section has nothing to render for the given
// input, typically because it was not asked for (e.g. records with no row cap).
var ErrSectionSkipped = errors.New("section skipped")

// Input is what every section analyzes.
type Input struct {
	Result *pipeline.Result

	// Columns is the detail-table column subset. Empty means every column.
	Columns []string

	// MaxRows caps the records section. Zero skips it.
	MaxRows int
}

// Section is a pluggable report section that analyzes a result and renders a
// focused report segment.
type Section interface {
	// Name returns the unique identifier for this section (e.g., "years").
	Name() string

	// Description returns a human-readable description of what this section reports.
	Description() string

	// Analyze prepares internal state for rendering. It returns
	// ErrSectionSkipped (wrapped) if the section has nothing to show.
	Analyze(in Input) error

	// Render writes the section output to w.
	Render(w io.Writer) error
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Section)
	order    []string // insertion order for deterministic listing
)

// Register adds a section to the global registry.
// It panics if a section with the same name is already registered.
func Register(s Section) {
	mu.Lock()
	defer mu.Unlock()
	name := s.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("report section already registered: %s", name))
	}
	registry[name] = s
	order = append(order, name)
}

// Get returns the section with the given name, or nil if not found.
func Get(name string) Section {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// List returns the names of all registered sections in registration order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Section)
	order = nil
}

// restoreForTesting re-registers the built-in sections in their usual order.
func restoreForTesting() {
	resetForTesting()
	for _, s := range builtinSections() {
		Register(s)
	}
}

func builtinSections() []Section {
	return []Section{
		&summarySection{},
		&yearsSection{},
		&categorySection{name: "organization-types", title: "Organization Type", dim: pipeline.DimOrganizationType},
		&categorySection{name: "methods", title: "Method", dim: pipeline.DimMethod},
		&breakdownSection{},
		&recordsSection{},
	}
}

func init() {
	for _, s := range builtinSections() {
		Register(s)
	}
}
