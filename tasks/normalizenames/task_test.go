package normalizenames

import (
	"context"
	"io"
	"log/slog"
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

func addSpace(t *testing.T, m *osm.Model, name string) *osm.Object {
	t.Helper()
	o := osm.NewObject(entity.SpaceTag, name)
	require.NoError(t, m.Add(o))
	return o
}

func TestValidate_NoSpacesIsError(t *testing.T) {
	t.Parallel()

	tk := registered(t)
	res := tk.Validate(testContext(), osm.NewModel(), task.Args{})
	require.Equal(t, task.StatusError, res.Status)
}

func TestValidate_AllNormalizedIsSkip(t *testing.T) {
	t.Parallel()

	m := osm.NewModel()
	addSpace(t, m, "Office-1")
	addSpace(t, m, "Conf-Room")

	tk := registered(t)
	res := tk.Validate(testContext(), m, task.Args{})
	require.Equal(t, task.StatusSkip, res.Status)
	require.NotEmpty(t, res.Messages)
}

func TestValidate_SomeNeedWorkIsReady(t *testing.T) {
	t.Parallel()

	m := osm.NewModel()
	addSpace(t, m, "Office 1")
	addSpace(t, m, "Conf-Room")

	tk := registered(t)
	res := tk.Validate(testContext(), m, task.Args{})
	require.Equal(t, task.StatusReady, res.Status)
}

func TestRun_ReplacesSpacesAndUnderscores(t *testing.T) {
	t.Parallel()

	m := osm.NewModel()
	addSpace(t, m, "Office 1")
	addSpace(t, m, "Open_Plan Area")
	untouched := addSpace(t, m, "Lobby")

	tk := registered(t)
	out, err := tk.Run(testContext(), m, task.Args{})
	require.NoError(t, err)

	require.Len(t, out.ByName(entity.SpaceTag, "Office-1"), 1)
	require.Len(t, out.ByName(entity.SpaceTag, "Open-Plan-Area"), 1)

	name, _ := untouched.Name()
	require.Equal(t, "Lobby", name)
}

func TestRun_RepointsSurfaceReferences(t *testing.T) {
	t.Parallel()

	m := osm.NewModel()
	addSpace(t, m, "Office 1")
	surface := osm.NewObject(entity.SurfaceTag, "Face 1")
	surface.SetAttr("Space Name", cty.StringVal("Office 1"))
	require.NoError(t, m.Add(surface))

	tk := registered(t)
	_, err := tk.Run(testContext(), m, task.Args{})
	require.NoError(t, err)

	v, ok := surface.Attr("Space Name")
	require.True(t, ok)
	require.Equal(t, "Office-1", v.AsString())
}

func TestRun_DuplicateNamesBothNormalize(t *testing.T) {
	t.Parallel()

	// Two spaces sharing a name would be ambiguous by-name targets, but the
	// rename addresses each by handle, so both normalize.
	m := osm.NewModel()
	addSpace(t, m, "Office 1")
	addSpace(t, m, "Office 1")

	tk := registered(t)
	out, err := tk.Run(testContext(), m, task.Args{})
	require.NoError(t, err)
	require.Len(t, out.ByName(entity.SpaceTag, "Office-1"), 2)
}
