// Package testutil provides shared helpers for integration tests: a
// thread-safe log buffer, a workflow harness, and model builders.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/osmkitgo/internal/app"
	"github.com/vk/osmkitgo/internal/osm"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	Model     *osm.Model
}

// RunWorkflowTest provides a standardized harness for end-to-end tests: it
// writes the model and workflow to a temporary directory, runs the full
// application against them, and reloads the resulting model. Model is nil
// when the run failed before a model was written.
func RunWorkflowTest(t *testing.T, m *osm.Model, workflowHCL string) *HarnessResult {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", ".tmp-workflow-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	modelPath := filepath.Join(tmpDir, "model.osm.json")
	outputPath := filepath.Join(tmpDir, "output.osm.json")
	workflowPath := filepath.Join(tmpDir, "workflow.hcl")
	require.NoError(t, osm.Save(m, modelPath))
	require.NoError(t, os.WriteFile(workflowPath, []byte(workflowHCL), 0644))

	cfg, err := app.NewConfig(app.Config{
		ModelPath:    modelPath,
		WorkflowPath: workflowPath,
		OutputPath:   outputPath,
		LogLevel:     "debug",
		LogFormat:    "text",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}

	testApp, err := app.New(logBuffer, cfg)
	if err != nil {
		return &HarnessResult{LogOutput: logBuffer.String(), Err: err}
	}

	runErr := testApp.Run(context.Background(), cfg)

	result := &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
	}
	if out, loadErr := osm.Load(outputPath); loadErr == nil {
		result.Model = out
	}

	if os.Getenv("OSMKIT_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}
	return result
}
