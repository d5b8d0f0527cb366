package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListCommand(format string, args ...string) (*cobra.Command, *bytes.Buffer) {
	rootOpts := &RootOptions{Format: format}
	cmd := NewListCommand(rootOpts)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd, out
}

func TestListBuiltinGolden(t *testing.T) {
	cmd, out := newListCommand("text")

	require.NoError(t, cmd.Execute())

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "list_builtin", out.Bytes())
}

func TestListFilter(t *testing.T) {
	cmd, out := newListCommand("text", "--filter", "*Select")

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "Suite: toolkit (2 cases)")
	assert.Contains(t, output, "Forward Select")
	assert.Contains(t, output, "Backward Select")
	assert.NotContains(t, output, "Zero R test")
}

func TestListBinDirShapesCommandLines(t *testing.T) {
	cmd, out := newListCommand("text", "--bin-dir", filepath.Join("opt", "toolkit"))

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), filepath.Join("opt", "toolkit", "classify")+" -f weather.csv")
}

func TestListJSON(t *testing.T) {
	cmd, out := newListCommand("json")

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	plans, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, plans, 1)

	plan, ok := plans[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "toolkit", plan["name"])

	cases, ok := plan["cases"].([]interface{})
	require.True(t, ok)
	require.Len(t, cases, 17)

	first, ok := cases[0].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 0, first["seq"])
	assert.Equal(t, "Zero R test", first["label"])
	assert.Equal(t, "classify", first["command"])
}

func TestListSuiteFile(t *testing.T) {
	path := writeSuiteFile(t, "extras.yaml", `name: extras
cases:
  - label: ranked
    command: featureselect
    args: ["-a", "RNK", "-f", "weather.csv", "-o", "IG,3"]
`)
	cmd, out := newListCommand("text", path)

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "Suite: extras (1 cases)")
	assert.Contains(t, output, "featureselect -a RNK -f weather.csv -o IG,3")
}

func TestListUnreadableSuiteFile(t *testing.T) {
	cmd, _ := newListCommand("text", filepath.Join(t.TempDir(), "missing.yaml"))

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load suite")
}

func TestListHelpText(t *testing.T) {
	cmd, out := newListCommand("text", "--help")

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "list [suite.yaml...]")
	assert.Contains(t, out.String(), "--filter")
}
