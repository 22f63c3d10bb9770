// Package spacemetrics applies externally-computed geometric properties
// (floor area, volume, ceiling height) to spaces from a list of data
// entries, each addressing its space by handle or name.
package spacemetrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/ctxlog"
	"github.com/vk/osmkitgo/internal/entity"
	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/record"
	"github.com/vk/osmkitgo/internal/task"
)

// TaskType is the workflow-facing name of this task.
const TaskType = "set_space_metrics"

// metricFields maps entry keys to the space attributes they set.
var metricFields = map[string]string{
	"floor_area":     "Floor Area {m2}",
	"volume":         "Volume {m3}",
	"ceiling_height": "Ceiling Height {m}",
}

// Register adds the task to the registry.
func Register(r *task.Registry) {
	r.RegisterTask(&task.Task{
		Type:        TaskType,
		Description: "Set floor area, volume, and ceiling height on spaces from a data list.",
		Inputs: map[string]task.InputSpec{
			"spaces": {
				Type:        cty.DynamicPseudoType,
				Description: "Entries with 'handle' or 'name' plus metric fields.",
			},
		},
		Validate: validate,
		Run:      run,
	})
}

func validate(_ context.Context, m *osm.Model, args task.Args) task.ValidationResult {
	entries, err := entryList(args["spaces"])
	if err != nil {
		return task.Errorf("invalid 'spaces' argument: %v", err)
	}
	if len(entries) == 0 {
		return task.Errorf("the 'spaces' data list is empty")
	}

	missing := 0
	for i, entry := range entries {
		handle := entryStr(entry, "handle")
		name := entryStr(entry, "name")
		if handle == "" && name == "" {
			return task.Errorf("entry %d must carry a 'handle' or a 'name'", i)
		}
		if handle == "" && len(m.ByName(entity.SpaceTag, name)) == 0 {
			missing++
		}
	}

	messages := []string{fmt.Sprintf("ready to process %d data entries", len(entries))}
	if missing > 0 {
		messages = append(messages, fmt.Sprintf("%d entries name spaces not present in the model and will be counted as errors", missing))
	}
	return task.ValidationResult{Status: task.StatusReady, Messages: messages}
}

func run(ctx context.Context, m *osm.Model, args task.Args) (*osm.Model, error) {
	logger := ctxlog.FromContext(ctx)

	entries, err := entryList(args["spaces"])
	if err != nil {
		return nil, fmt.Errorf("invalid 'spaces' argument: %w", err)
	}

	changes := make([]entity.Change, 0, len(entries))
	for _, entry := range entries {
		fields := make(record.Record)
		for key, attr := range metricFields {
			if v, ok := entry[key]; ok && !v.IsNull() {
				fields[attr] = v
			}
		}
		changes = append(changes, entity.Change{
			ID: osm.Identifier{
				Handle: entryStr(entry, "handle"),
				Name:   entryStr(entry, "name"),
			},
			Fields: fields,
		})
	}

	res := entity.UpdateSpaces(m, changes)
	logger.Info("Space metrics applied.",
		"updated", res.UpdatedCount, "errors", res.Errors, "status", res.Status)
	if res.Status == record.StatusError {
		return nil, fmt.Errorf("set space metrics: %s", strings.Join(res.Messages, "; "))
	}
	return m, nil
}

// entryList unpacks the 'spaces' argument into per-entry value maps. The
// argument is dynamically typed because entries are heterogeneous objects.
func entryList(v cty.Value) ([]map[string]cty.Value, error) {
	if v == cty.NilVal || v.IsNull() {
		return nil, nil
	}
	if !v.CanIterateElements() {
		return nil, fmt.Errorf("expected a list of objects, got %s", v.Type().FriendlyName())
	}
	var entries []map[string]cty.Value
	for i, elem := range v.AsValueSlice() {
		if elem.IsNull() || !elem.CanIterateElements() {
			return nil, fmt.Errorf("entry %d is not an object", i)
		}
		entries = append(entries, elem.AsValueMap())
	}
	return entries, nil
}

func entryStr(entry map[string]cty.Value, key string) string {
	v, ok := entry[key]
	if !ok || v.IsNull() || v.Type() != cty.String {
		return ""
	}
	return v.AsString()
}
