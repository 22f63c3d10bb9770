// Package wwr reports the window-to-wall ratio of every space: the glazed
// area of a space's exterior walls divided by their gross area.
package wwr

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/ctxlog"
	"github.com/vk/osmkitgo/internal/entity"
	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/record"
	"github.com/vk/osmkitgo/internal/task"
)

// TaskType is the workflow-facing name of this task.
const TaskType = "wwr_report"

// windowTypes are the sub surface types that count as glazing.
var windowTypes = map[string]bool{
	"FixedWindow":    true,
	"OperableWindow": true,
	"GlassDoor":      true,
}

// Register adds the task to the registry.
func Register(r *task.Registry) {
	empty := cty.StringVal("")

	r.RegisterTask(&task.Task{
		Type:        TaskType,
		Description: "Report window-to-wall ratio per space, optionally to a CSV file.",
		Inputs: map[string]task.InputSpec{
			"output_path": {
				Type:        cty.String,
				Description: "CSV destination; empty writes the report to the log only.",
				Default:     &empty,
			},
		},
		Validate: validate,
		Run:      run,
	})
}

func validate(_ context.Context, m *osm.Model, _ task.Args) task.ValidationResult {
	recs := entity.AllSurfaceRecords(m)
	if len(recs) == 0 {
		return task.Errorf("model contains no surfaces")
	}

	walls := 0
	for _, rec := range recs {
		if isExteriorWall(rec) {
			walls++
		}
	}
	if walls == 0 {
		return task.Errorf("model contains no exterior walls, ratio is undefined")
	}
	return task.Ready(fmt.Sprintf("found %d exterior walls across the model", walls))
}

func run(ctx context.Context, m *osm.Model, args task.Args) (*osm.Model, error) {
	logger := ctxlog.FromContext(ctx)

	wallArea := make(map[string]float64)
	surfaceSpace := make(map[string]string)
	for _, rec := range entity.AllSurfaceRecords(m) {
		name := str(rec, "Name")
		space := str(rec, "Space Name")
		if isExteriorWall(rec) {
			wallArea[space] += num(rec, "Gross Area {m2}")
			surfaceSpace[name] = space
		}
	}

	windowArea := make(map[string]float64)
	for _, rec := range entity.AllSubSurfaceRecords(m) {
		if !windowTypes[str(rec, "Sub Surface Type")] {
			continue
		}
		space, ok := surfaceSpace[str(rec, "Surface Name")]
		if !ok {
			continue
		}
		windowArea[space] += num(rec, "Gross Area {m2}")
	}

	spaces := make([]string, 0, len(wallArea))
	for space := range wallArea {
		spaces = append(spaces, space)
	}
	sort.Strings(spaces)

	recs := make([]record.Record, 0, len(spaces))
	for _, space := range spaces {
		walls := wallArea[space]
		windows := windowArea[space]
		rec := record.Record{
			"Space Name":             cty.StringVal(space),
			"Gross Wall Area {m2}":   cty.NumberFloatVal(walls),
			"Gross Window Area {m2}": cty.NumberFloatVal(windows),
			"Window to Wall Ratio":   cty.NullVal(cty.Number),
		}
		// Walls without a gross-area attribute contribute zero; a space
		// whose walls total zero gets a null ratio instead of 0/0.
		if walls > 0 {
			rec["Window to Wall Ratio"] = cty.NumberFloatVal(windows / walls)
			logger.Info("Window to wall ratio computed.",
				"space", space, "wall_area", walls, "window_area", windows, "ratio", windows/walls)
		} else {
			logger.Warn("Space has no measured exterior wall area, ratio left empty.", "space", space)
		}
		recs = append(recs, rec)
	}

	if path := args.Str("output_path"); path != "" {
		tbl := record.FromRecords(recs)
		tbl.SortBy("Space Name")
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()
		if err := tbl.WriteCSV(f); err != nil {
			return nil, fmt.Errorf("write report: %w", err)
		}
		logger.Info("Report written.", "path", path, "rows", len(recs))
	}

	return m, nil
}

func isExteriorWall(rec record.Record) bool {
	return str(rec, "Surface Type") == "Wall" &&
		str(rec, "Outside Boundary Condition") == "Outdoors"
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
