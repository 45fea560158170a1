// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// testCSV has six breaches from 2004 to 2019. Portal has no records value.
// Totals: 6 rows, 395,900,000 records.
const testCSV = `Entity,Year,Records,Organization type,Method
AOL,2004,92000000,web,hacked
Citibank,2005,3900000,financial,lost / stolen media
Sony,2011,77000000,gaming,hacked
Anthem,2015,80000000,healthcare,hacked
Equifax,2017,143000000,financial,hacked
Portal,2019,,web,poor security
`

// newTestCmd redirects the shared rootCmd's I/O into fresh buffers.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// resetFlagSet restores cmd's flags and the root persistent flags to their
// defaults. Slice flags are skipped: pflag's Set appends a literal "[]"
// rather than clearing, so callers zero the backing variables afterwards.
func resetFlagSet(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Changed = false
		switch f.Value.Type() {
		case "stringSlice", "stringArray":
			return
		}
		_ = f.Value.Set(f.DefValue)
	}
	cmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
	if h := cmd.Flags().Lookup("help"); h != nil {
		_ = h.Value.Set("false")
	}
}

func resetReportFlags() {
	resetFlagSet(reportCmd)
	reportSel.reset()
}

func resetExportFlags() {
	resetFlagSet(exportCmd)
	exportSel.reset()
}

func resetDataFlags() {
	resetFlagSet(dataCmd)
	dataSel.reset()
}

func resetAskFlags() {
	resetFlagSet(askCmd)
	askSel.reset()
}

func resetValidateFlags() {
	resetFlagSet(validateCmd)
}

func resetConfigFlags() {
	resetFlagSet(configGetCmd)
	resetFlagSet(configSetCmd)
	resetFlagSet(configShowCmd)
}

// setupWorkspace chdirs into a fresh directory holding data_breaches.csv
// and points the global config at an empty directory.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	writeTestFile(t, dir, "data_breaches.csv", testCSV)
	t.Chdir(dir)
	return dir
}

// writeTestFile creates a file (and any necessary parent directories) under dir.
func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// requireExitCode asserts err carries the given exit code.
func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var ece *exitCodeError
	require.True(t, errors.As(err, &ece), "want exitCodeError, got %T: %v", err, err)
	require.Equal(t, code, ece.ExitCode(), "error: %v", err)
}
