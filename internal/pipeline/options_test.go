package pipeline

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestOptions_Selection_Defaults(t *testing.T) {
	ds := threeRows()
	sel, err := Options{}.Selection(ds)
	require.NoError(t, err)
	assert.Equal(t, DefaultSelection(ds), sel)
}

func TestOptions_Selection_Overrides(t *testing.T) {
	ds := threeRows()
	sel, err := Options{
		From:              intPtr(2021),
		OrganizationTypes: []string{"Retail"},
		Methods:           []string{},
		Primary:           "organization-type",
	}.Selection(ds)
	require.NoError(t, err)

	assert.Equal(t, YearRange{Min: 2021, Max: 2021}, sel.Years)
	assert.Equal(t, []string{"Retail"}, sel.OrganizationTypes.Values())
	assert.Empty(t, sel.Methods)
	assert.NotNil(t, sel.Methods)
	assert.Equal(t, DimOrganizationType, sel.Primary)
}

func TestOptions_Selection_BadPrimary(t *testing.T) {
	_, err := Options{Primary: "entity"}.Selection(threeRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dimension")
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    Options
		wantErr string
	}{
		{name: "empty", query: "", want: Options{}},
		{
			name:  "years",
			query: "from=2010&to=2015",
			want:  Options{From: intPtr(2010), To: intPtr(2015)},
		},
		{
			name:  "repeated values",
			query: "org=healthcare&org=web%2C+tech&method=hacked",
			want: Options{
				OrganizationTypes: []string{"healthcare", "web, tech"},
				Methods:           []string{"hacked"},
			},
		},
		{
			name:  "present but empty is empty set",
			query: "org=&method=hacked",
			want:  Options{OrganizationTypes: []string{}, Methods: []string{"hacked"}},
		},
		{name: "primary", query: "primary=organization_type", want: Options{Primary: "organization_type"}},
		{name: "bad year", query: "from=twenty", wantErr: `invalid from "twenty"`},
		{name: "bad primary", query: "primary=year", wantErr: "unknown dimension"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			got, err := ParseQuery(q)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelection_QueryRoundTrip(t *testing.T) {
	ds := wideDataset()
	for name, sel := range map[string]Selection{
		"default": DefaultSelection(ds),
		"narrow": {
			Years:             YearRange{Min: 2010, Max: 2012},
			OrganizationTypes: NewSet("Retail", "Web"),
			Methods:           NewSet(),
			Primary:           DimOrganizationType,
		},
	} {
		t.Run(name, func(t *testing.T) {
			opts, err := ParseQuery(sel.Query())
			require.NoError(t, err)
			got, err := opts.Selection(ds)
			require.NoError(t, err)
			assert.Equal(t, sel, got)
		})
	}
}
