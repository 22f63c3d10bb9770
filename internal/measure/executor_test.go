package measure

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/task"
)

func TestBuildOSW(t *testing.T) {
	t.Parallel()

	req := &Request{
		Measure:    "set_r_value",
		MeasureDir: "/measures/set_r_value",
		InputPath:  "/work/input.osm.json",
		Arguments: task.Args{
			"r_value":       cty.NumberFloatVal(3.5),
			"surface_type":  cty.StringVal("Wall"),
			"include_doors": cty.False,
		},
	}

	doc := buildOSW(req)
	require.Equal(t, "/work/input.osm.json", doc.SeedFile)
	require.Equal(t, []string{"/measures"}, doc.MeasurePaths)
	require.Len(t, doc.Steps, 1)
	require.Equal(t, "set_r_value", doc.Steps[0].MeasureDirName)

	// Arguments serialize as plain JSON values the external tool can read.
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded struct {
		Steps []struct {
			Arguments map[string]any `json:"arguments"`
		} `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	args := decoded.Steps[0].Arguments
	require.Equal(t, 3.5, args["r_value"])
	require.Equal(t, "Wall", args["surface_type"])
	require.Equal(t, false, args["include_doors"])
}
