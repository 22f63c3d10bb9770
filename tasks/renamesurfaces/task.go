// Package renamesurfaces renames every surface after its parent space, its
// surface type, and its boundary: interzone surfaces carry the adjacent
// space's name, exterior ones the boundary condition. Names are suffixed
// _1, _2, … after a deterministic multi-key sort, so repeated runs produce
// the same names.
package renamesurfaces

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/ctxlog"
	"github.com/vk/osmkitgo/internal/entity"
	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/record"
	"github.com/vk/osmkitgo/internal/task"
)

// TaskType is the workflow-facing name of this task.
const TaskType = "rename_surfaces"

// Register adds the task to the registry.
func Register(r *task.Registry) {
	r.RegisterTask(&task.Task{
		Type:        TaskType,
		Description: "Rename surfaces after their space, type, and boundary condition.",
		Inputs:      map[string]task.InputSpec{},
		Validate:    validate,
		Run:         run,
	})
}

func validate(_ context.Context, m *osm.Model, _ task.Args) task.ValidationResult {
	count := len(m.AllOf(entity.SurfaceTag))
	if count == 0 {
		return task.Errorf("model contains no surfaces to rename")
	}
	return task.Ready(fmt.Sprintf("found %d surfaces to process", count))
}

func run(ctx context.Context, m *osm.Model, _ task.Args) (*osm.Model, error) {
	logger := ctxlog.FromContext(ctx)

	recs := entity.AllSurfaceRecords(m)

	// Surface name -> parent space name, for resolving interzone boundaries.
	surfaceSpace := make(map[string]string, len(recs))
	for _, rec := range recs {
		surfaceSpace[str(rec, "Name")] = str(rec, "Space Name")
	}

	// Sorting before naming is what makes the _n suffixes repeatable:
	// larger and more exposed surfaces are named first.
	sort.SliceStable(recs, func(i, j int) bool {
		for _, key := range []string{"Space Name", "Surface Type", "Outside Boundary Condition", "Sun Exposure", "Wind Exposure"} {
			a, b := str(recs[i], key), str(recs[j], key)
			if a != b {
				return a < b
			}
		}
		for _, key := range []string{"Gross Area {m2}", "Azimuth {deg}"} {
			a, b := num(recs[i], key), num(recs[j], key)
			if a != b {
				return a > b
			}
		}
		return false
	})

	counts := make(map[string]int)
	var changes []entity.Change
	for _, rec := range recs {
		base := baseName(rec, surfaceSpace)
		counts[base]++
		next := fmt.Sprintf("%s_%d", base, counts[base])
		if next == str(rec, "Name") {
			continue
		}
		changes = append(changes, entity.Change{
			ID:     osm.ByHandle(str(rec, "Handle")),
			Fields: record.Record{"Name": cty.StringVal(next)},
		})
	}

	res := entity.UpdateSurfaces(m, changes)
	logger.Info("Surfaces renamed.",
		"updated", res.UpdatedCount, "errors", res.Errors, "status", res.Status)
	if res.Status == record.StatusError {
		return nil, fmt.Errorf("rename surfaces: %s", strings.Join(res.Messages, "; "))
	}
	return m, nil
}

func baseName(rec record.Record, surfaceSpace map[string]string) string {
	suffix := str(rec, "Outside Boundary Condition")
	if boundaryObj := str(rec, "Outside Boundary Condition Object"); boundaryObj != "" {
		if space, ok := surfaceSpace[boundaryObj]; ok && space != "" {
			suffix = space
		} else {
			suffix = boundaryObj
		}
	}
	return str(rec, "Space Name") + "_" + str(rec, "Surface Type") + "_" + suffix
}

func str(rec record.Record, key string) string {
	v, ok := rec[key]
	if !ok || v.IsNull() {
		return ""
	}
	return v.AsString()
}

func num(rec record.Record, key string) float64 {
	v, ok := rec[key]
	if !ok || v.IsNull() {
		return 0
	}
	f, _ := v.AsBigFloat().Float64()
	return f
}
