// Package normalizenames replaces spaces and underscores in space names
// with hyphens so downstream naming conventions can rely on them.
package normalizenames

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
const TaskType = "normalize_space_names"

var replacer = strings.NewReplacer(" ", "-", "_", "-")

// Register adds the task to the registry.
func Register(r *task.Registry) {
	r.RegisterTask(&task.Task{
		Type:        TaskType,
		Description: "Replace spaces and underscores in space names with hyphens.",
		Inputs:      map[string]task.InputSpec{},
		Validate:    validate,
		Run:         run,
	})
}

func isNormalized(name string) bool {
	return !strings.ContainsAny(name, " _")
}

func validate(_ context.Context, m *osm.Model, _ task.Args) task.ValidationResult {
	spaces := m.AllOf(entity.SpaceTag)
	if len(spaces) == 0 {
		return task.Errorf("model contains no spaces to normalize")
	}

	needs := 0
	for _, s := range spaces {
		if name, ok := s.Name(); ok && !isNormalized(name) {
			needs++
		}
	}
	if needs == 0 {
		return task.Skip(
			fmt.Sprintf("found %d spaces", len(spaces)),
			"all space names are already normalized, nothing to do",
		)
	}
	return task.Ready(fmt.Sprintf("found %d spaces, %d require normalization", len(spaces), needs))
}

func run(ctx context.Context, m *osm.Model, _ task.Args) (*osm.Model, error) {
	logger := ctxlog.FromContext(ctx)

	renames := make(map[string]string)
	var changes []entity.Change
	for _, s := range m.AllOf(entity.SpaceTag) {
		name, ok := s.Name()
		if !ok {
			continue
		}
		next := strings.TrimSpace(replacer.Replace(name))
		if next == name {
			continue
		}
		renames[name] = next
		changes = append(changes, entity.Change{
			ID:     osm.ByHandle(s.Handle()),
			Fields: record.Record{"Name": cty.StringVal(next)},
		})
	}

	res := entity.UpdateSpaces(m, changes)
	logger.Info("Space names normalized.",
		"updated", res.UpdatedCount, "errors", res.Errors, "status", res.Status)
	if res.Status == record.StatusError {
		return nil, fmt.Errorf("normalize space names: %s", strings.Join(res.Messages, "; "))
	}

	// Surfaces reference their space by name; repoint them so the rename
	// does not orphan them.
	var surfaceChanges []entity.Change
	for _, s := range m.AllOf(entity.SurfaceTag) {
		v, ok := s.Attr("Space Name")
		if !ok {
			continue
		}
		next, renamed := renames[v.AsString()]
		if !renamed {
			continue
		}
		surfaceChanges = append(surfaceChanges, entity.Change{
			ID:     osm.ByHandle(s.Handle()),
			Fields: record.Record{"Space Name": cty.StringVal(next)},
		})
	}
	if len(surfaceChanges) > 0 {
		sres := entity.UpdateSurfaces(m, surfaceChanges)
		logger.Info("Surface references repointed.",
			"updated", sres.UpdatedCount, "errors", sres.Errors, "status", sres.Status)
		if sres.Status == record.StatusError {
			return nil, fmt.Errorf("repoint surface references: %s", strings.Join(sres.Messages, "; "))
		}
	}

	return m, nil
}
