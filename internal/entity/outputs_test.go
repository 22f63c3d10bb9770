package entity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/osmkitgo/internal/osm"
)

func TestAddOutputVariable(t *testing.T) {
	t.Parallel()

	m := osm.NewModel()
	o, err := AddOutputVariable(m, "Zone Mean Air Temperature", "*", "Hourly")
	require.NoError(t, err)
	require.NotEmpty(t, o.Handle())

	recs := AllOutputVariableRecords(m)
	require.Len(t, recs, 1)
	require.Equal(t, "Zone Mean Air Temperature", recs[0]["Variable Name"].AsString())
	require.Equal(t, "*", recs[0]["Key Value"].AsString())
	require.Equal(t, "Hourly", recs[0]["Reporting Frequency"].AsString())

	// Schedule Name was never set, so it comes back as a declared null.
	require.True(t, recs[0]["Schedule Name"].IsNull())
}

func TestAddOutputVariable_FreshHandles(t *testing.T) {
	t.Parallel()

	m := osm.NewModel()
	a, err := AddOutputVariable(m, "Zone Mean Air Temperature", "*", "Hourly")
	require.NoError(t, err)
	b, err := AddOutputVariable(m, "Zone Mean Air Temperature", "*", "Hourly")
	require.NoError(t, err)

	require.NotEqual(t, a.Handle(), b.Handle())
	require.Equal(t, 2, m.Len())
}
