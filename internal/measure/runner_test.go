package measure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/task"
)

// fakeExecutor records the request and simulates the external process by
// transforming the input snapshot into the output snapshot.
type fakeExecutor struct {
	req       *Request
	err       error
	transform func(m *osm.Model) *osm.Model
}

func (f *fakeExecutor) Execute(_ context.Context, req *Request) error {
	f.req = req
	if f.err != nil {
		return f.err
	}
	m, err := osm.Load(req.InputPath)
	if err != nil {
		return err
	}
	if f.transform != nil {
		m = f.transform(m)
	}
	return osm.Save(m, req.OutputPath)
}

func rValueManifest() *Manifest {
	wall := cty.StringVal("Wall")
	skip := cty.False
	return &Manifest{
		Name:      "set_r_value",
		Directory: "/measures/set_r_value",
		Inputs: map[string]task.InputSpec{
			"r_value":       {Type: cty.Number},
			"surface_type":  {Type: cty.String, Default: &wall},
			"include_doors": {Type: cty.Bool, Default: &skip},
		},
	}
}

func TestRunner_RoundTrip(t *testing.T) {
	t.Parallel()

	m := osm.NewModel()
	require.NoError(t, m.Add(osm.NewObject("OS:Space", "Office")))

	exec := &fakeExecutor{
		transform: func(in *osm.Model) *osm.Model {
			require.NoError(t, in.Add(osm.NewObject("OS:Space", "Added By Measure")))
			return in
		},
	}

	out, err := NewRunner(exec).Run(testContext(), m, rValueManifest(), map[string]cty.Value{
		"r_value": cty.NumberFloatVal(3.5),
	}, false)
	require.NoError(t, err)

	// The returned model is a fresh handle reflecting the external
	// transformation; the input model is untouched.
	require.Equal(t, 2, out.Len())
	require.Equal(t, 1, m.Len())

	require.NotNil(t, exec.req)
	require.Equal(t, "set_r_value", exec.req.Measure)
	require.Equal(t, "/measures/set_r_value", exec.req.MeasureDir)
	require.False(t, exec.req.RunSimulation)

	// Defaults were applied before handing the arguments down.
	require.Equal(t, false, exec.req.Arguments.Bool("include_doors"))
}

func TestRunner_InvalidArgumentsFailBeforeLaunch(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{}
	_, err := NewRunner(exec).Run(testContext(), osm.NewModel(), rValueManifest(), map[string]cty.Value{
		"r_value": cty.NumberFloatVal(3.5),
		"unknown": cty.True,
	}, false)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "validate arguments", ioErr.Op)
	require.Contains(t, ioErr.Error(), `unknown argument "unknown"`)

	// The process was never launched.
	require.Nil(t, exec.req)
}

func TestRunner_MissingRequiredArgument(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{}
	_, err := NewRunner(exec).Run(testContext(), osm.NewModel(), rValueManifest(), nil, false)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Contains(t, ioErr.Error(), `missing required argument "r_value"`)
	require.Nil(t, exec.req)
}

func TestRunner_ExecutorErrorPassesThroughUnchanged(t *testing.T) {
	t.Parallel()

	execErr := &ExecutionError{Measure: "set_r_value", ExitCode: 3, Output: "ruby traceback"}
	exec := &fakeExecutor{err: execErr}

	_, err := NewRunner(exec).Run(testContext(), osm.NewModel(), rValueManifest(), map[string]cty.Value{
		"r_value": cty.NumberFloatVal(1),
	}, true)

	// No retry, no wrapping: the caller sees the executor's error as-is.
	var got *ExecutionError
	require.ErrorAs(t, err, &got)
	require.Same(t, execErr, got)
	require.True(t, exec.req.RunSimulation)
}

func TestRunner_MissingOutputIsIOError(t *testing.T) {
	t.Parallel()

	// An executor that "succeeds" without writing the output snapshot.
	execNoWrite := executorFunc(func(_ context.Context, _ *Request) error {
		return nil
	})

	_, err := NewRunner(execNoWrite).Run(testContext(), osm.NewModel(), rValueManifest(), map[string]cty.Value{
		"r_value": cty.NumberFloatVal(1),
	}, false)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "deserialize result", ioErr.Op)
}

type executorFunc func(ctx context.Context, req *Request) error

func (f executorFunc) Execute(ctx context.Context, req *Request) error { return f(ctx, req) }
