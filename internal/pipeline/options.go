// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
)

// Query parameter names shared by the HTTP dashboard and generated links.
const (
	ParamFrom    = "from"
	ParamTo      = "to"
	ParamOrg     = "org"
	ParamMethod  = "method"
	ParamPrimary = "primary"
)

// Options are partial selection inputs as they arrive from flags, query
// strings or tool calls. Unset fields fall back to DefaultSelection.
type Options struct {
	From *int
	To   *int

	// A nil slice keeps every value; a non-nil empty slice selects none.
	OrganizationTypes []string
	Methods           []string

	Primary string
}

// Selection resolves o against ds. It fails only on an unknown primary.
func (o Options) Selection(ds *dataset.Dataset) (Selection, error) {
	sel := DefaultSelection(ds)
	if o.From != nil {
		sel.Years.Min = *o.From
	}
	if o.To != nil {
		sel.Years.Max = *o.To
	}
	if o.OrganizationTypes != nil {
		sel.OrganizationTypes = NewSet(o.OrganizationTypes...)
	}
	if o.Methods != nil {
		sel.Methods = NewSet(o.Methods...)
	}
	if o.Primary != "" {
		dim, err := ParseDimension(o.Primary)
		if err != nil {
			return Selection{}, err
		}
		sel.Primary = dim
	}
	return sel, nil
}

// ParseQuery reads Options from URL query values. An absent parameter keeps
// the default. A parameter present with only empty values is an explicit
// empty set, which is how an HTML form with nothing ticked submits.
func ParseQuery(q url.Values) (Options, error) {
	var o Options
	var err error
	if o.From, err = queryInt(q, ParamFrom); err != nil {
		return Options{}, err
	}
	if o.To, err = queryInt(q, ParamTo); err != nil {
		return Options{}, err
	}
	o.OrganizationTypes = queryList(q, ParamOrg)
	o.Methods = queryList(q, ParamMethod)
	o.Primary = strings.TrimSpace(q.Get(ParamPrimary))
	if o.Primary != "" {
		if _, err := ParseDimension(o.Primary); err != nil {
			return Options{}, err
		}
	}
	return o, nil
}

func queryInt(q url.Values, key string) (*int, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: must be a year", key, s)
	}
	return &n, nil
}

func queryList(q url.Values, key string) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}
	out := []string{}
	for _, v := range raw {
		// Category values may themselves contain commas ("web, tech").
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Query encodes s as URL query values that ParseQuery reads back into an
// equal selection. An empty set is encoded as a single empty value.
func (s Selection) Query() url.Values {
	q := url.Values{}
	q.Set(ParamFrom, strconv.Itoa(s.Years.Min))
	q.Set(ParamTo, strconv.Itoa(s.Years.Max))
	for key, set := range map[string]Set{ParamOrg: s.OrganizationTypes, ParamMethod: s.Methods} {
		values := set.Values()
		if len(values) == 0 {
			q[key] = []string{""}
			continue
		}
		q[key] = values
	}
	q.Set(ParamPrimary, string(s.primary()))
	return q
}
