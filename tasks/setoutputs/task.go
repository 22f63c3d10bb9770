// Package setoutputs configures the simulation output variables requested
// from the model.
package setoutputs

import (
	"context"
	"fmt"
	"slices"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/ctxlog"
	"github.com/vk/osmkitgo/internal/entity"
	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/task"
)

// TaskType is the workflow-facing name of this task.
const TaskType = "set_output_variables"

// validFrequencies are the reporting frequencies the simulation engine
// accepts.
var validFrequencies = []string{"Detailed", "Timestep", "Hourly", "Daily", "Monthly", "RunPeriod", "Annual"}

// Register adds the task to the registry.
func Register(r *task.Registry) {
	hourly := cty.StringVal("Hourly")
	star := cty.StringVal("*")
	keep := cty.False

	r.RegisterTask(&task.Task{
		Type:        TaskType,
		Description: "Request simulation output variables at a reporting frequency.",
		Inputs: map[string]task.InputSpec{
			"variable_names": {
				Type:        cty.List(cty.String),
				Description: "Output variable names to request.",
			},
			"reporting_frequency": {
				Type:        cty.String,
				Description: "Reporting frequency for all requested variables.",
				Default:     &hourly,
			},
			"key_value": {
				Type:        cty.String,
				Description: "Key value filter, '*' for all objects.",
				Default:     &star,
			},
			"remove_existing": {
				Type:        cty.Bool,
				Description: "Remove all existing output variables first.",
				Default:     &keep,
			},
		},
		Validate: validate,
		Run:      run,
	})
}

func validate(_ context.Context, _ *osm.Model, args task.Args) task.ValidationResult {
	names := args.StrList("variable_names")
	if len(names) == 0 {
		return task.Errorf("the 'variable_names' list cannot be empty")
	}
	freq := args.Str("reporting_frequency")
	if !slices.Contains(validFrequencies, freq) {
		return task.Errorf("%q is not a valid frequency; choose from %v", freq, validFrequencies)
	}
	return task.Ready(fmt.Sprintf("validated request for %d variables at %q frequency", len(names), freq))
}

func run(ctx context.Context, m *osm.Model, args task.Args) (*osm.Model, error) {
	logger := ctxlog.FromContext(ctx)

	if args.Bool("remove_existing") {
		existing := m.AllOf(entity.OutputVariableTag)
		logger.Info("Removing existing output variables.", "count", len(existing))
		for _, o := range existing {
			m.Remove(o.Handle())
		}
	}

	freq := args.Str("reporting_frequency")
	keyValue := args.Str("key_value")
	added := 0
	for _, name := range args.StrList("variable_names") {
		if _, err := entity.AddOutputVariable(m, name, keyValue, freq); err != nil {
			return nil, fmt.Errorf("add output variable %q: %w", name, err)
		}
		added++
	}

	logger.Info("Output variables configured.", "added", added, "frequency", freq)
	return m, nil
}
