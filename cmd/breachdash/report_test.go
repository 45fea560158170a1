package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCmd_Exists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "report" {
			found = true
			break
		}
	}
	assert.True(t, found, "report command should be registered on root")
}

func TestReportCmd_Default(t *testing.T) {
	resetReportFlags()
	setupWorkspace(t)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"report", "--quiet"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "Data Breaches Report")
	assert.Contains(t, out, "Years:     2004 to 2019")
	assert.Contains(t, out, "Total Records")
	assert.Contains(t, out, "395,900,000")
	assert.Contains(t, out, "Data Breach Instances per Year")
	assert.Contains(t, out, "Method and Sector Proportions (by Method)")
}

func TestReportCmd_Filters(t *testing.T) {
	resetReportFlags()
	setupWorkspace(t)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"report", "--quiet", "--method", "hacked", "--from", "2010", "--sections", "summary"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	// Sony, Anthem and Equifax.
	assert.Contains(t, out, "300,000,000")
	assert.Contains(t, out, "Methods:            hacked")
	assert.NotContains(t, out, "Data Breach Instances per Year")
}

func TestReportCmd_EmptyOrgSelectsNone(t *testing.T) {
	resetReportFlags()
	setupWorkspace(t)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"report", "--quiet", "--org=", "--sections", "summary,years"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "Organization types: none")
	assert.Contains(t, out, "No records match the current filters.")
}

func TestReportCmd_PrimaryOrganizationType(t *testing.T) {
	resetReportFlags()
	setupWorkspace(t)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"report", "--quiet", "--primary", "organization-type", "--sections", "breakdown"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "(by Organization type)")
}

func TestReportCmd_ConfigDefaults(t *testing.T) {
	resetReportFlags()
	dir := setupWorkspace(t)
	writeTestFile(t, dir, ".breachdash.yaml", "years:\n  min: 2015\nmethods:\n  - hacked\n")

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"report", "--quiet", "--sections", "summary"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "Years:     2015 to 2019")
	assert.Contains(t, stdout.String(), "223,000,000")

	// Flags win over config.
	resetReportFlags()
	cmd, stdout, _ = newTestCmd()
	cmd.SetArgs([]string{"report", "--quiet", "--sections", "summary", "--from", "2004"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "392,000,000")
}

func TestReportCmd_JSON(t *testing.T) {
	resetReportFlags()
	setupWorkspace(t)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"report", "--quiet", "--format", "json", "--sections", "summary,methods"})
	require.NoError(t, cmd.Execute())

	var got struct {
		Dataset  string `json:"dataset"`
		Sections []struct {
			Name    string `json:"name"`
			Status  string `json:"status"`
			Content string `json:"content"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "data_breaches.csv", got.Dataset)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "summary", got.Sections[0].Name)
	assert.Contains(t, got.Sections[0].Content, "395,900,000")
}

func TestReportCmd_OutputFile(t *testing.T) {
	resetReportFlags()
	dir := setupWorkspace(t)
	outFile := filepath.Join(dir, "report.txt")

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"report", "--quiet", "-o", outFile})
	require.NoError(t, cmd.Execute())
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(outFile) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Contains(t, string(data), "Data Breaches Report")
}

func TestReportCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown section", []string{"--sections", "nope"}, ExitInvalidArgs},
		{"bad format", []string{"--format", "xml"}, ExitInvalidArgs},
		{"negative rows", []string{"--rows=-1"}, ExitInvalidArgs},
		{"bad primary", []string{"--primary", "year"}, ExitInvalidArgs},
		{"unknown column", []string{"--columns", "Nope"}, ExitInvalidArgs},
		{"missing dataset", []string{"--dataset", "missing.csv"}, ExitLoadFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetReportFlags()
			setupWorkspace(t)

			cmd, _, _ := newTestCmd()
			cmd.SetArgs(append([]string{"report", "--quiet"}, tt.args...))
			requireExitCode(t, cmd.Execute(), tt.code)
		})
	}
}

func TestReportCmd_HeaderOnlyDataset(t *testing.T) {
	resetReportFlags()
	dir := setupWorkspace(t)
	writeTestFile(t, dir, "empty.csv", "Entity,Year,Records,Organization type,Method\n")

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"report", "--quiet", "--dataset", "empty.csv"})
	err := cmd.Execute()
	requireExitCode(t, err, ExitLoadFailure)
	assert.Contains(t, err.Error(), "dataset has no rows")
}

func TestReportCmd_FlagsRegistered(t *testing.T) {
	flags := []struct {
		name      string
		shorthand string
	}{
		{"dataset", "d"},
		{"from", ""},
		{"to", ""},
		{"org", ""},
		{"method", ""},
		{"primary", ""},
		{"columns", ""},
		{"sections", ""},
		{"format", "f"},
		{"rows", ""},
		{"output", "o"},
	}
	for _, f := range flags {
		flag := reportCmd.Flags().Lookup(f.name)
		require.NotNil(t, flag, "flag --%s should be registered", f.name)
		assert.Equal(t, f.shorthand, flag.Shorthand, "flag --%s shorthand", f.name)
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"summary", "years"}, splitList(" summary, ,years "))
}
