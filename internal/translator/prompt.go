// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package translator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
)

// Metadata is everything about the dataset the model is told. It never
// includes rows.
type Metadata struct {
	Rows              int      `json:"rows"`
	YearMin           int      `json:"year_min"`
	YearMax           int      `json:"year_max"`
	OrganizationTypes []string `json:"organization_types"`
	Methods           []string `json:"methods"`
}

// MetadataOf collects the distinct values and year range of ds.
func MetadataOf(ds *dataset.Dataset) Metadata {
	minYear, maxYear := ds.YearRange()
	return Metadata{
		Rows:              ds.Len(),
		YearMin:           minYear,
		YearMax:           maxYear,
		OrganizationTypes: ds.OrganizationTypes(),
		Methods:           ds.Methods(),
	}
}

// BuildPrompt returns the system prompt describing md and the reply format.
func BuildPrompt(md Metadata) string {
	var b strings.Builder
	b.WriteString(`You translate questions about a table of data breaches into dashboard filters.
You do not answer the question and you never compute totals. Reply with one JSON object only.

`)
	meta, _ := json.MarshalIndent(md, "", "  ")
	fmt.Fprintf(&b, "AVAILABLE DATA (metadata only):\n%s\n\n", meta)

	b.WriteString(`REPLY FORMAT:
{
  "from": <first year or null>,
  "to": <last year or null>,
  "organization_types": [<values copied exactly from organization_types>] or null,
  "methods": [<values copied exactly from methods>] or null,
  "primary": "organization_type" | "method" | null,
  "summary": "<one sentence restating the filters in plain words>"
}

RULES:
- null means no restriction on that field.
- Only use category values listed above. Map synonyms onto them ("hospitals" is "healthcare").
- "since 2015" sets from=2015 and to=null. "in 2012" sets from=2012 and to=2012.
- Set primary to "method" when the question is mainly about how breaches happened,
  to "organization_type" when it is mainly about who was breached, otherwise null.
`)
	return b.String()
}
