package wwr

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/ctxlog"
	"github.com/vk/osmkitgo/internal/entity"
	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/task"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func registered(t *testing.T) *task.Task {
	t.Helper()
	r := task.New()
	Register(r)
	tk, ok := r.Lookup(TaskType)
	require.True(t, ok)
	return tk
}

func coerce(t *testing.T, tk *task.Task, raw map[string]cty.Value) task.Args {
	t.Helper()
	args, err := task.CoerceArgs(tk, raw)
	require.NoError(t, err)
	return args
}

func addSurface(t *testing.T, m *osm.Model, name, space, surfaceType, boundary string, area float64) {
	t.Helper()
	o := osm.NewObject(entity.SurfaceTag, name)
	o.SetAttr("Space Name", cty.StringVal(space))
	o.SetAttr("Surface Type", cty.StringVal(surfaceType))
	o.SetAttr("Outside Boundary Condition", cty.StringVal(boundary))
	o.SetAttr("Gross Area {m2}", cty.NumberFloatVal(area))
	require.NoError(t, m.Add(o))
}

func addWindow(t *testing.T, m *osm.Model, name, surface, subType string, area float64) {
	t.Helper()
	o := osm.NewObject(entity.SubSurfaceTag, name)
	o.SetAttr("Surface Name", cty.StringVal(surface))
	o.SetAttr("Sub Surface Type", cty.StringVal(subType))
	o.SetAttr("Gross Area {m2}", cty.NumberFloatVal(area))
	require.NoError(t, m.Add(o))
}

func glazedModel(t *testing.T) *osm.Model {
	t.Helper()

	m := osm.NewModel()
	require.NoError(t, m.Add(osm.NewObject(entity.SpaceTag, "Office")))

	addSurface(t, m, "Wall North", "Office", "Wall", "Outdoors", 30)
	addSurface(t, m, "Wall South", "Office", "Wall", "Outdoors", 20)
	// Neither of these counts toward the wall area.
	addSurface(t, m, "Floor", "Office", "Floor", "Ground", 100)
	addSurface(t, m, "Party Wall", "Office", "Wall", "Surface", 40)

	addWindow(t, m, "Window 1", "Wall North", "FixedWindow", 6)
	addWindow(t, m, "Window 2", "Wall South", "OperableWindow", 4)
	// A door is not glazing.
	addWindow(t, m, "Door", "Wall South", "Door", 2)

	return m
}

func TestValidate_NoSurfacesIsError(t *testing.T) {
	t.Parallel()

	tk := registered(t)
	res := tk.Validate(testContext(), osm.NewModel(), coerce(t, tk, nil))
	require.Equal(t, task.StatusError, res.Status)
}

func TestValidate_NoExteriorWallsIsError(t *testing.T) {
	t.Parallel()

	m := osm.NewModel()
	addSurface(t, m, "Floor", "Office", "Floor", "Ground", 100)

	tk := registered(t)
	res := tk.Validate(testContext(), m, coerce(t, tk, nil))
	require.Equal(t, task.StatusError, res.Status)
	require.Contains(t, res.Messages[0], "no exterior walls")
}

func TestRun_ComputesRatioPerSpace(t *testing.T) {
	t.Parallel()

	m := glazedModel(t)
	tk := registered(t)

	out, err := tk.Run(testContext(), m, coerce(t, tk, nil))
	require.NoError(t, err)

	// Reporting leaves the model unchanged.
	require.Equal(t, m.Len(), out.Len())
}

func TestRun_WritesCSVReport(t *testing.T) {
	t.Parallel()

	m := glazedModel(t)
	tk := registered(t)
	path := filepath.Join(t.TempDir(), "wwr.csv")

	_, err := tk.Run(testContext(), m, coerce(t, tk, map[string]cty.Value{
		"output_path": cty.StringVal(path),
	}))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Gross Wall Area {m2},Gross Window Area {m2},Space Name,Window to Wall Ratio", lines[0])

	// 50 m2 of exterior wall, 10 m2 of glazing: ratio 0.2.
	require.Contains(t, lines[1], "50")
	require.Contains(t, lines[1], "10")
	require.Contains(t, lines[1], "Office")
	require.Contains(t, lines[1], "0.2")
}

func TestRun_AreaLessExteriorWallLeavesRatioEmpty(t *testing.T) {
	t.Parallel()

	// Gross area is an optional attribute; an exterior wall may lack it.
	m := osm.NewModel()
	require.NoError(t, m.Add(osm.NewObject(entity.SpaceTag, "Office")))
	bare := osm.NewObject(entity.SurfaceTag, "Wall Bare")
	bare.SetAttr("Space Name", cty.StringVal("Office"))
	bare.SetAttr("Surface Type", cty.StringVal("Wall"))
	bare.SetAttr("Outside Boundary Condition", cty.StringVal("Outdoors"))
	require.NoError(t, m.Add(bare))

	tk := registered(t)
	res := tk.Validate(testContext(), m, coerce(t, tk, nil))
	require.Equal(t, task.StatusReady, res.Status)

	path := filepath.Join(t.TempDir(), "wwr.csv")
	_, err := tk.Run(testContext(), m, coerce(t, tk, map[string]cty.Value{
		"output_path": cty.StringVal(path),
	}))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "0,0,Office,", lines[1])
}

func TestRun_WindowsOnNonExteriorSurfacesAreIgnored(t *testing.T) {
	t.Parallel()

	m := osm.NewModel()
	require.NoError(t, m.Add(osm.NewObject(entity.SpaceTag, "Office")))
	addSurface(t, m, "Wall Out", "Office", "Wall", "Outdoors", 50)
	addSurface(t, m, "Party Wall", "Office", "Wall", "Surface", 40)
	addWindow(t, m, "Interior Window", "Party Wall", "FixedWindow", 5)

	tk := registered(t)
	path := filepath.Join(t.TempDir(), "wwr.csv")
	_, err := tk.Run(testContext(), m, coerce(t, tk, map[string]cty.Value{
		"output_path": cty.StringVal(path),
	}))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Office,0")
}
