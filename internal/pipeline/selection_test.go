// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in   string
		want Dimension
	}{
		{"method", DimMethod},
		{"Method", DimMethod},
		{"organization-type", DimOrganizationType},
		{"organization_type", DimOrganizationType},
		{"Organization Type", DimOrganizationType},
		{"sector", DimOrganizationType},
	}
	for _, tt := range tests {
		got, err := ParseDimension(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDimension("year")
	assert.ErrorContains(t, err, "unknown dimension")
}

func TestDimension_Other(t *testing.T) {
	assert.Equal(t, DimOrganizationType, DimMethod.Other())
	assert.Equal(t, DimMethod, DimOrganizationType.Other())
	assert.Equal(t, "Organization type", DimOrganizationType.Label())
}

func TestDefaultSelection(t *testing.T) {
	sel := DefaultSelection(threeRows())
	assert.Equal(t, YearRange{Min: 2020, Max: 2021}, sel.Years)
	assert.Equal(t, []string{"Healthcare", "Retail"}, sel.OrganizationTypes.Values())
	assert.Equal(t, []string{"Hacked", "Lost device"}, sel.Methods.Values())
	assert.Equal(t, DimMethod, sel.Primary)
}

func TestSelection_JSONRoundTrip(t *testing.T) {
	sel := DefaultSelection(threeRows())
	data, err := json.Marshal(sel)
	require.NoError(t, err)
	assert.JSONEq(t, `{"years":{"min":2020,"max":2021},"organization_types":["Healthcare","Retail"],"methods":["Hacked","Lost device"],"primary":"method"}`, string(data))

	var back Selection
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, sel, back)
}

func TestSet_NilAllowsNothing(t *testing.T) {
	var s Set
	assert.False(t, s.Has("x"))
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", FormatInt(0))
	assert.Equal(t, "999", FormatInt(999))
	assert.Equal(t, "1,000", FormatInt(1000))
	assert.Equal(t, "3,000,000,000", FormatInt(3000000000))
	assert.Equal(t, "-12,345", FormatInt(-12345))
	assert.Equal(t, "9,223,372,036,854,775,807", FormatInt(math.MaxInt64))
	assert.Equal(t, "-9,223,372,036,854,775,808", FormatInt(math.MinInt64))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Healthcare", Capitalize("healthcare"))
	assert.Equal(t, "Lost device", Capitalize("lost Device"))
	assert.Equal(t, "", Capitalize(""))
}
