package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge_OverrideWins(t *testing.T) {
	base := &Config{Dataset: "a.csv", OutputFormat: "markdown", Primary: "method"}
	override := &Config{Dataset: "b.csv", Primary: "organization-type"}

	got := Merge(base, override)
	assert.Equal(t, "b.csv", got.Dataset)
	assert.Equal(t, "markdown", got.OutputFormat)
	assert.Equal(t, "organization-type", got.Primary)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := &Config{Years: &YearsConfig{Min: 2004, Max: 2023}}
	override := &Config{Years: &YearsConfig{Max: 2010}}

	got := Merge(base, override)
	assert.Equal(t, &YearsConfig{Min: 2004, Max: 2010}, got.Years)
	assert.Equal(t, 2023, base.Years.Max)
}

func TestMerge_YearsFromOverrideOnly(t *testing.T) {
	got := Merge(&Config{}, &Config{Years: &YearsConfig{Min: 2012}})
	assert.Equal(t, &YearsConfig{Min: 2012}, got.Years)
}

func TestMerge_Lists(t *testing.T) {
	base := &Config{Methods: []string{"hacked"}, Columns: []string{"Entity"}}
	got := Merge(base, &Config{OrganizationTypes: []string{"web"}})
	assert.Equal(t, []string{"hacked"}, got.Methods)
	assert.Equal(t, []string{"web"}, got.OrganizationTypes)
	assert.Equal(t, []string{"Entity"}, got.Columns)
}

func TestMerge_NilInputs(t *testing.T) {
	assert.Equal(t, &Config{}, Merge(nil, nil))
	assert.Equal(t, &Config{Dataset: "x"}, Merge(nil, &Config{Dataset: "x"}))
}

func TestMerge_NestedSections(t *testing.T) {
	base := &Config{Serve: ServeConfig{Addr: ":1", ReadHeaderTimeout: "2s"}, LLM: LLMConfig{Model: "m1", MaxTokens: 100}}
	got := Merge(base, &Config{Serve: ServeConfig{Addr: ":2"}, LLM: LLMConfig{MaxTokens: 200}, Log: LogConfig{Format: "json"}})
	assert.Equal(t, ServeConfig{Addr: ":2", ReadHeaderTimeout: "2s"}, got.Serve)
	assert.Equal(t, LLMConfig{Model: "m1", MaxTokens: 200}, got.LLM)
	assert.Equal(t, "json", got.Log.Format)
}

func TestWithDefaults(t *testing.T) {
	got := WithDefaults(&Config{OutputFormat: "json"})
	assert.Equal(t, DefaultDataset, got.Dataset)
	assert.Equal(t, "json", got.OutputFormat)
	assert.Equal(t, "method", got.Primary)
	assert.Equal(t, DefaultAddr, got.Serve.Addr)
	assert.Equal(t, "5s", got.Serve.ReadHeaderTimeout)
	assert.Equal(t, "text", got.Log.Format)
}
