package measure

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/ctxlog"
	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/task"
)

// Runner executes measures against a model through an Executor.
type Runner struct {
	exec Executor
}

// NewRunner creates a runner over the given executor.
func NewRunner(exec Executor) *Runner {
	return &Runner{exec: exec}
}

// Run validates the raw arguments against the manifest, serializes the
// model to a transport file, executes the measure, and deserializes the
// result into a fresh model handle.
//
// Unknown or missing arguments fail with an *IOError before the process is
// launched. Process failure surfaces as the executor's error, unchanged
// and unretried.
func (r *Runner) Run(ctx context.Context, m *osm.Model, mf *Manifest, raw map[string]cty.Value, runSimulation bool) (*osm.Model, error) {
	logger := ctxlog.FromContext(ctx).With("measure", mf.Name)

	args, problems := task.CoerceInputs(mf.Inputs, raw)
	if len(problems) > 0 {
		return nil, &IOError{Measure: mf.Name, Op: "validate arguments", Err: errors.New(strings.Join(problems, "; "))}
	}

	workDir, err := os.MkdirTemp("", "osmkit-measure-*")
	if err != nil {
		return nil, &IOError{Measure: mf.Name, Op: "create work directory", Err: err}
	}
	defer os.RemoveAll(workDir)

	inputPath := filepath.Join(workDir, "input.osm.json")
	outputPath := filepath.Join(workDir, "output.osm.json")

	if err := osm.Save(m, inputPath); err != nil {
		return nil, &IOError{Measure: mf.Name, Op: "serialize model", Err: err}
	}
	logger.Debug("Model serialized for measure.", "path", inputPath)

	req := &Request{
		Measure:       mf.Name,
		MeasureDir:    mf.Directory,
		WorkDir:       workDir,
		InputPath:     inputPath,
		OutputPath:    outputPath,
		Arguments:     args,
		RunSimulation: runSimulation,
	}
	if err := r.exec.Execute(ctx, req); err != nil {
		return nil, err
	}

	next, err := osm.Load(outputPath)
	if err != nil {
		return nil, &IOError{Measure: mf.Name, Op: "deserialize result", Err: err}
	}
	logger.Info("Measure applied.", "objects", next.Len())
	return next, nil
}
