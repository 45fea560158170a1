// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumns is wrapped by a LoadError when required headers are absent.
var ErrMissingColumns = errors.New("missing required columns")

// ErrEmptyFile is wrapped by a LoadError when the file has no header row.
var ErrEmptyFile = errors.New("file is empty")

// LoadError reports a dataset that could not be opened, read, or that lacks
// the expected columns.
type LoadError struct {
	Path    string
	Missing []string
	Err     error
}

func (e *LoadError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("load %s: %v: %s", e.Path, e.Err, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports a cell that could not be coerced to its column type.
// Line is the 1-based line in the source file, header included.
type ParseError struct {
	Path   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("parse %s line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s line %d: column %q value %q: %v", e.Path, e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
