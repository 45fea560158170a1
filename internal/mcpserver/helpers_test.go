package mcpserver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

const testCSV = `Entity,Year,Records,Organization type,Method
Acme Health,2014,1500000,healthcare,hacked
Shop,2018,50000,retail,lost device
Clinic,2018,25000,healthcare,lost device
Portal,2020,9000,"web, tech",hacked
`

func writeDataset(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	path := filepath.Join(dir, "breaches.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o600))
	return path
}

func newTestHandlers(t *testing.T) (*handlers, string) {
	t.Helper()
	path := writeDataset(t)
	return &handlers{cfg: Config{Dataset: path}, cache: newDatasetCache()}, path
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func decodeResult(t *testing.T, res *mcp.CallToolResult, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), v))
}

func intPtr(n int) *int { return &n }
