package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	harnessScenarios = filepath.Join("..", "harness", "testdata", "scenarios")
	harnessGolden    = filepath.Join("..", "harness", "testdata", "golden")
)

const passingScenario = `name: quick
description: "Toggle on and off"
steps:
  - event: toggle_order_mode
  - event: toggle_order_mode
assertions:
  - type: state
    value: idle
`

const failingScenario = `name: broken
description: "Asserts a state that never happens"
steps:
  - event: toggle_order_mode
assertions:
  - type: state
    value: completing
`

func writeScenario(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := execute(t, "", "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := execute(t, "", "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, err := execute(t, "", "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, err := execute(t, "", "--format", "json", "test", t.TempDir())
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestTestCommandRunsRepositoryScenarios(t *testing.T) {
	out, err := execute(t, "", "test", harnessScenarios, "--golden", harnessGolden)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ vodka_bottle_order")
	assert.Contains(t, out, "✓ orders_history_clear")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandFailures(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "quick", passingScenario)
	writeScenario(t, dir, "broken", failingScenario)

	out, err := execute(t, "", "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✓ quick")
	assert.Contains(t, out, "✗ broken")
	assert.Contains(t, out, "Expected: completing")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommandFailuresJSON(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "broken", failingScenario)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "garbage.yaml"), []byte("name: [\n"), 0o644))

	out, err := execute(t, "", "--format", "json", "test", dir)
	require.Error(t, err)

	var response struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "error", response.Status)
	assert.Equal(t, CodeTestFail, response.Error.Code)
	assert.Equal(t, 2, response.Data.Failed)
	assert.Equal(t, "broken", response.Data.Scenarios[0].Name)
	assert.Equal(t, "garbage.yaml", response.Data.Scenarios[1].Name)
	assert.Contains(t, response.Data.Scenarios[1].Errors[0], "failed to load scenario")
}

func TestTestCommandUpdateThenCompare(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "quick", passingScenario)

	_, err := execute(t, "", "test", dir, "--update")
	require.NoError(t, err)

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "quick.golden"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(golden), "scenario quick\nstep 1 toggle_order_mode\n  mode on\n"))

	_, err = execute(t, "", "test", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "quick.golden"), []byte("stale\n"), 0o644))
	out, err := execute(t, "", "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestHelpText(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	output := buf.String()
	assert.Contains(t, output, "scenarios")
	assert.Contains(t, output, "--update")
	assert.Contains(t, output, "--filter")
	assert.Contains(t, output, "--golden")
}

func TestFindScenarioFiles(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "subdir")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "vodka-bottle.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "vodka-cup.yml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(subDir, "meat-term.yaml"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ignore.txt"), []byte(""), 0o644))

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 3)

	files, err = findScenarioFiles(tmpDir, "vodka-*")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = findScenarioFiles(tmpDir, "[")
	assert.ErrorContains(t, err, "invalid filter pattern")
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("testdata", "golden", "quick.golden"), goldenFilePath(filepath.Join("testdata", "golden"), "quick"))
}
