// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
)

// Dimension names one of the two categorical columns.
type Dimension string

const (
	DimOrganizationType Dimension = "organization_type"
	DimMethod           Dimension = "method"
)

// ParseDimension accepts the spellings used by flags, query strings, and
// config files.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "method", "methods":
		return DimMethod, nil
	case "organization_type", "organization-type", "organization type", "org", "org-type", "sector":
		return DimOrganizationType, nil
	default:
		return "", fmt.Errorf("unknown dimension %q (use method or organization-type)", s)
	}
}

// Other returns the remaining dimension.
func (d Dimension) Other() Dimension {
	if d == DimMethod {
		return DimOrganizationType
	}
	return DimMethod
}

// Label returns the column header the dimension is read from.
func (d Dimension) Label() string {
	if d == DimMethod {
		return dataset.ColumnMethod
	}
	return dataset.ColumnOrganizationType
}

// value extracts the dimension's category from a record.
func (d Dimension) value(r dataset.Record) string {
	if d == DimMethod {
		return r.Method
	}
	return r.OrganizationType
}

// YearRange is an inclusive range of years. Min > Max selects nothing.
type YearRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether year lies within the range, bounds included.
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

// Set is a set of allowed category values. A nil or empty Set allows nothing.
type Set map[string]struct{}

// NewSet returns a Set holding values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Values returns the members in sorted order.
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes an array of strings.
func (s *Set) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewSet(values...)
	return nil
}

// Selection is the filter state applied to a dataset.
type Selection struct {
	Years             YearRange `json:"years"`
	OrganizationTypes Set       `json:"organization_types"`
	Methods           Set       `json:"methods"`

	// Primary chooses the outer level of the hierarchical breakdown.
	Primary Dimension `json:"primary"`
}

// DefaultSelection selects every record of ds: the full year range present
// and all distinct organization types and methods.
func DefaultSelection(ds *dataset.Dataset) Selection {
	minYear, maxYear := ds.YearRange()
	return Selection{
		Years:             YearRange{Min: minYear, Max: maxYear},
		OrganizationTypes: NewSet(ds.OrganizationTypes()...),
		Methods:           NewSet(ds.Methods()...),
		Primary:           DimMethod,
	}
}

// Allows reports whether r passes every filter in the selection.
func (s Selection) Allows(r dataset.Record) bool {
	return s.Years.Contains(r.Year) &&
		s.OrganizationTypes.Has(r.OrganizationType) &&
		s.Methods.Has(r.Method)
}

// primary returns the breakdown dimension, defaulting to method.
func (s Selection) primary() Dimension {
	if s.Primary == DimOrganizationType {
		return DimOrganizationType
	}
	return DimMethod
}
