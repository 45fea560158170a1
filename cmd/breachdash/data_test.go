package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataCmd_Table(t *testing.T) {
	resetDataFlags()
	setupWorkspace(t)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"data", "--quiet", "--columns", "Entity,Records", "-n", "2"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "Total Data")
	assert.Contains(t, out, "AOL")
	assert.Contains(t, out, "Citibank")
	assert.NotContains(t, out, "Equifax")
}

func TestDataCmd_CSV(t *testing.T) {
	resetDataFlags()
	setupWorkspace(t)

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"data", "--quiet", "--csv", "--org", "web"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t,
		"Entity,Year,Records,Organization type,Method\nAOL,2004,92000000,web,hacked\nPortal,2019,,web,poor security\n",
		stdout.String())
}

func TestDataCmd_NonPositiveLimit(t *testing.T) {
	resetDataFlags()
	setupWorkspace(t)

	cmd, _, _ := newTestCmd()
	cmd.SetArgs([]string{"data", "--limit", "0"})
	requireExitCode(t, cmd.Execute(), ExitInvalidArgs)
}
