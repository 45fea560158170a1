// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package translator

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/llm"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

func testDataset() *dataset.Dataset {
	rec := func(entity string, year int, records int64, org, method string) dataset.Record {
		return dataset.Record{
			Year: year, OrganizationType: org, Method: method, Records: records, HasRecords: true,
			Fields: map[string]string{
				"Entity": entity, "Year": strconv.Itoa(year), "Records": strconv.FormatInt(records, 10),
				"Organization type": org, "Method": method,
			},
		}
	}
	return dataset.New("breaches.csv", []string{"Entity", "Year", "Records", "Organization type", "Method"}, []dataset.Record{
		rec("Acme Health", 2014, 1500000, "healthcare", "hacked"),
		rec("Shop", 2018, 50000, "retail", "lost device"),
		rec("Portal", 2020, 9000, "web, tech", "hacked"),
	})
}

func newTestTranslator(content string) (*Translator, *llm.MockProvider, *bytes.Buffer) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: content})
	logs := &bytes.Buffer{}
	return New(mock, WithLogger(slog.New(slog.NewTextHandler(logs, nil)))), mock, logs
}

func TestBuildPrompt_MetadataOnly(t *testing.T) {
	prompt := BuildPrompt(MetadataOf(testDataset()))

	assert.Contains(t, prompt, `"year_min": 2014`)
	assert.Contains(t, prompt, `"year_max": 2020`)
	assert.Contains(t, prompt, `"web, tech"`)
	assert.Contains(t, prompt, `"lost device"`)
	assert.NotContains(t, prompt, "Acme Health")
	assert.NotContains(t, prompt, "1500000")
}

func TestTranslate(t *testing.T) {
	tr, mock, _ := newTestTranslator("```json\n" + `{
  "from": 2015,
  "to": null,
  "organization_types": ["Retail", "web, tech"],
  "methods": null,
  "primary": "method",
  "summary": "Retail and tech breaches since 2015, grouped by method."
}` + "\n```")

	res, err := tr.Translate(context.Background(), testDataset(), "  retail and tech breaches since 2015  ")
	require.NoError(t, err)

	require.NotNil(t, res.Options.From)
	assert.Equal(t, 2015, *res.Options.From)
	assert.Nil(t, res.Options.To)
	assert.Equal(t, []string{"retail", "web, tech"}, res.Options.OrganizationTypes)
	assert.Nil(t, res.Options.Methods)
	assert.Equal(t, "method", res.Options.Primary)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "Retail and tech breaches since 2015, grouped by method.", res.Summary)

	assert.Equal(t, pipeline.YearRange{Min: 2015, Max: 2020}, res.Selection.Years)
	assert.Equal(t, pipeline.DimMethod, res.Selection.Primary)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "retail and tech breaches since 2015", calls[0].Prompt)
	assert.Contains(t, calls[0].SystemPrompt, "REPLY FORMAT")
	require.NotNil(t, calls[0].Temperature)
	assert.Zero(t, *calls[0].Temperature)
}

func TestTranslate_DropsUnknownValues(t *testing.T) {
	tr, _, logs := newTestTranslator(`{"organization_types":["healthcare","banking"],"methods":["phishing"],"primary":"colour"}`)

	res, err := tr.Translate(context.Background(), testDataset(), "hospital and bank phishing")
	require.NoError(t, err)

	assert.Equal(t, []string{"healthcare"}, res.Options.OrganizationTypes)
	assert.Nil(t, res.Options.Methods)
	assert.Empty(t, res.Options.Primary)
	assert.Equal(t, []string{
		`dropped unknown organization type "banking"`,
		`dropped unknown method "phishing"`,
		"no known method values left; method filter removed",
		`ignored primary "colour"`,
	}, res.Warnings)
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestTranslate_SwapsReversedYears(t *testing.T) {
	tr, _, _ := newTestTranslator(`{"from": 2019, "to": 2015}`)

	res, err := tr.Translate(context.Background(), testDataset(), "between 2019 and 2015")
	require.NoError(t, err)
	assert.Equal(t, pipeline.YearRange{Min: 2015, Max: 2019}, res.Selection.Years)
	assert.Len(t, res.Warnings, 1)
}

func TestTranslate_Errors(t *testing.T) {
	ds := testDataset()

	t.Run("empty question", func(t *testing.T) {
		tr, mock, _ := newTestTranslator("{}")
		_, err := tr.Translate(context.Background(), ds, "   ")
		require.ErrorIs(t, err, ErrEmptyQuestion)
		assert.Empty(t, mock.Calls())
	})

	t.Run("provider failure", func(t *testing.T) {
		boom := errors.New("rate limited")
		tr := New(llm.NewMockProvider(llm.MockResponse{Err: boom}))
		_, err := tr.Translate(context.Background(), ds, "anything")
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "translate question")
	})

	t.Run("not json", func(t *testing.T) {
		tr, _, _ := newTestTranslator("Sure! Here are your filters.")
		_, err := tr.Translate(context.Background(), ds, "anything")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse translator reply")
	})
}

func TestTranslate_ModelOptions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: "{}"})
	tr := New(mock, WithModel("claude-haiku-4-5"), WithMaxTokens(200))

	res, err := tr.Translate(context.Background(), testDataset(), "everything")
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultSelection(testDataset()), res.Selection)

	call := mock.Calls()[0]
	assert.Equal(t, "claude-haiku-4-5", call.Model)
	assert.Equal(t, 200, call.MaxTokens)
}
