// Package applymeasure bridges workflows to external measures: a single
// task type that selects a declared measure by name and delegates to the
// measure runner.
package applymeasure

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/measure"
	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/task"
)

// TaskType is the workflow-facing name of this task.
const TaskType = "apply_measure"

// Register adds the task to the registry. The manifests map and runner are
// captured by the task closures, so registration happens after manifests
// are loaded.
func Register(r *task.Registry, manifests map[string]*measure.Manifest, runner *measure.Runner) {
	noArgs := cty.EmptyObjectVal
	modelOnly := cty.False

	r.RegisterTask(&task.Task{
		Type:        TaskType,
		Description: "Apply a declared external measure to the model.",
		Inputs: map[string]task.InputSpec{
			"measure": {
				Type:        cty.String,
				Description: "Name of a declared measure.",
			},
			"arguments": {
				Type:        cty.DynamicPseudoType,
				Description: "Arguments forwarded to the measure.",
				Default:     &noArgs,
			},
			"run_simulation": {
				Type:        cty.Bool,
				Description: "Run the full simulation instead of the model transform only.",
				Default:     &modelOnly,
			},
		},
		Validate: func(ctx context.Context, m *osm.Model, args task.Args) task.ValidationResult {
			return validate(manifests, args)
		},
		Run: func(ctx context.Context, m *osm.Model, args task.Args) (*osm.Model, error) {
			return run(ctx, runner, manifests, m, args)
		},
	})
}

func validate(manifests map[string]*measure.Manifest, args task.Args) task.ValidationResult {
	name := args.Str("measure")
	mf, ok := manifests[name]
	if !ok {
		return task.Errorf("measure %q is not declared", name)
	}

	_, problems := task.CoerceInputs(mf.Inputs, measureArgs(args))
	if len(problems) > 0 {
		return task.ValidationResult{Status: task.StatusError, Messages: problems}
	}
	return task.Ready(fmt.Sprintf("measure %q accepted the arguments", name))
}

func run(ctx context.Context, runner *measure.Runner, manifests map[string]*measure.Manifest, m *osm.Model, args task.Args) (*osm.Model, error) {
	name := args.Str("measure")
	mf, ok := manifests[name]
	if !ok {
		return nil, fmt.Errorf("measure %q is not declared", name)
	}
	return runner.Run(ctx, m, mf, measureArgs(args), args.Bool("run_simulation"))
}

// measureArgs unpacks the forwarded 'arguments' object into raw values for
// manifest validation.
func measureArgs(args task.Args) map[string]cty.Value {
	v, ok := args["arguments"]
	if !ok || v.IsNull() || !v.CanIterateElements() {
		return nil
	}
	if v.LengthInt() == 0 {
		return nil
	}
	return v.AsValueMap()
}
