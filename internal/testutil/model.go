package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/osm"
)

// AddObject creates a named object of the given type, sets the provided
// attributes on it, and adds it to the model. It returns the object so
// tests can capture its handle.
func AddObject(t *testing.T, m *osm.Model, typeTag, name string, attrs map[string]cty.Value) *osm.Object {
	t.Helper()

	o := osm.NewObject(typeTag, name)
	for key, val := range attrs {
		o.SetAttr(key, val)
	}
	require.NoError(t, m.Add(o))
	return o
}
