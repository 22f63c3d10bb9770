package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_PositionalModelPath(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"-w", "steps.hcl", "model.osm.json"}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "model.osm.json", cfg.ModelPath)
	require.Equal(t, "steps.hcl", cfg.WorkflowPath)

	// Output defaults to writing back over the input.
	require.Equal(t, "model.osm.json", cfg.OutputPath)
}

func TestParse_ModelFlagWins(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, _, err := Parse([]string{"--model", "a.osm.json", "-w", "steps.hcl", "b.osm.json"}, out)
	require.NoError(t, err)
	require.Equal(t, "a.osm.json", cfg.ModelPath)
}

func TestParse_NoModelPathPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{}, out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
}

func TestParse_MissingWorkflow(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"model.osm.json"}, out)
	require.Error(t, err)

	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "workflow path is required")
}

func TestParse_AllOptions(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, _, err := Parse([]string{
		"--model", "model.osm.json",
		"--workflow", "flows",
		"--out", "result.osm.json",
		"--measures-path", "measures",
		"--measure-bin", "/opt/os/bin/openstudio",
		"--measure-timeout", "90s",
		"--log-format", "text",
		"--log-level", "debug",
	}, out)
	require.NoError(t, err)
	require.Equal(t, "flows", cfg.WorkflowPath)
	require.Equal(t, "result.osm.json", cfg.OutputPath)
	require.Equal(t, "measures", cfg.MeasuresPath)
	require.Equal(t, "/opt/os/bin/openstudio", cfg.MeasureBin)
	require.Equal(t, 90*time.Second, cfg.MeasureTimeout)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_InvalidLogFormat(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"-w", "steps.hcl", "--log-format", "xml", "model.osm.json"}, out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid log-format")
}

func TestParse_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"-w", "steps.hcl", "--log-level", "loud", "model.osm.json"}, out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid log-level")
}

func TestParse_HelpFlag(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
}

func TestParse_UnknownFlag(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"--no-such-flag"}, out)
	require.Error(t, err)

	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	require.Equal(t, 2, exitErr.Code)
}
