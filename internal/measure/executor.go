package measure

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vk/osmkitgo/internal/ctxlog"
	"github.com/vk/osmkitgo/internal/task"
)

// Request describes one measure invocation: the measure implementation
// directory, the model transport paths, and the already-validated
// arguments. Paths are opaque to the executor beyond moving files around.
type Request struct {
	Measure       string
	MeasureDir    string
	WorkDir       string
	InputPath     string
	OutputPath    string
	Arguments     task.Args
	RunSimulation bool
}

// Executor runs a measure request to completion. Implementations must
// place the resulting model snapshot at Request.OutputPath on success.
type Executor interface {
	Execute(ctx context.Context, req *Request) error
}

// CLIExecutor invokes the external model tool's command line. A zero
// Timeout means no caller-side limit.
type CLIExecutor struct {
	Bin     string
	Timeout time.Duration
}

// DefaultBin is the executable used when CLIExecutor.Bin is empty.
const DefaultBin = "openstudio"

// oswDocument is the workflow file the external CLI consumes: the seed
// model plus one measure step with its arguments.
type oswDocument struct {
	SeedFile     string    `json:"seed_file"`
	MeasurePaths []string  `json:"measure_paths"`
	Steps        []oswStep `json:"steps"`
}

type oswStep struct {
	MeasureDirName string                             `json:"measure_dir_name"`
	Arguments      map[string]ctyjson.SimpleJSONValue `json:"arguments"`
}

// Execute writes the workflow file, runs the external process, and copies
// the resulting model snapshot to the request's output path. A non-zero
// exit is an *ExecutionError with the process's combined output; transport
// failures are *IOError.
func (e *CLIExecutor) Execute(ctx context.Context, req *Request) error {
	logger := ctxlog.FromContext(ctx).With("measure", req.Measure)

	oswPath := filepath.Join(req.WorkDir, "workflow.osw")
	data, err := json.MarshalIndent(buildOSW(req), "", "  ")
	if err != nil {
		return &IOError{Measure: req.Measure, Op: "encode workflow", Err: err}
	}
	if err := os.WriteFile(oswPath, data, 0o644); err != nil {
		return &IOError{Measure: req.Measure, Op: "write workflow", Err: err}
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	bin := e.Bin
	if bin == "" {
		bin = DefaultBin
	}
	cmdArgs := []string{"run"}
	if !req.RunSimulation {
		cmdArgs = append(cmdArgs, "--measures_only")
	}
	cmdArgs = append(cmdArgs, "-w", oswPath)

	logger.Info("Invoking external measure process.", "bin", bin, "args", cmdArgs)
	cmd := exec.CommandContext(ctx, bin, cmdArgs...)
	cmd.Dir = req.WorkDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &ExecutionError{Measure: req.Measure, ExitCode: code, Output: string(out)}
	}
	logger.Debug("External process finished.", "output_bytes", len(out))

	// The external tool writes the transformed model under run/; probe the
	// known locations and move the first hit to the agreed output path.
	for _, candidate := range []string{
		filepath.Join(req.WorkDir, "run", "in.osm"),
		filepath.Join(req.WorkDir, "in.osm"),
	} {
		if _, statErr := os.Stat(candidate); statErr == nil {
			if err := copyFile(candidate, req.OutputPath); err != nil {
				return &IOError{Measure: req.Measure, Op: "collect result", Err: err}
			}
			return nil
		}
	}
	return &IOError{Measure: req.Measure, Op: "locate result", Err: os.ErrNotExist}
}

func buildOSW(req *Request) *oswDocument {
	args := make(map[string]ctyjson.SimpleJSONValue, len(req.Arguments))
	for name, v := range req.Arguments {
		args[name] = ctyjson.SimpleJSONValue{Value: v}
	}
	return &oswDocument{
		SeedFile:     req.InputPath,
		MeasurePaths: []string{filepath.Dir(req.MeasureDir)},
		Steps: []oswStep{{
			MeasureDirName: filepath.Base(req.MeasureDir),
			Arguments:      args,
		}},
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
