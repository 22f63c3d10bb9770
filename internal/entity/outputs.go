package entity

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/record"
)

// OutputVariableTag is the type tag of OS:Output:Variable objects.
const OutputVariableTag = "OS:Output:Variable"

var outputVariableAttrs = []attrSpec{
	{key: "Key Value", typ: cty.String},
	{key: "Variable Name", typ: cty.String},
	{key: "Reporting Frequency", typ: cty.String},
	{key: "Schedule Name", typ: cty.String},
}

// OutputVariableRecord reads one output variable into a record.
func OutputVariableRecord(m *osm.Model, id osm.Identifier, ref *osm.Object) (record.Record, error) {
	return oneRecord(m, OutputVariableTag, outputVariableAttrs, id, ref)
}

// AllOutputVariableRecords reads every output variable, resolving each
// object exactly once.
func AllOutputVariableRecords(m *osm.Model) []record.Record {
	return allRecords(m, OutputVariableTag, outputVariableAttrs)
}

// OutputVariableTable exports all output variables as a table sorted by
// Name.
func OutputVariableTable(m *osm.Model) *record.Table {
	return asTable(AllOutputVariableRecords(m))
}

// UpdateOutputVariables applies a batch of output variable changes.
func UpdateOutputVariables(m *osm.Model, changes []Change) record.BatchResult {
	return updateObjects(m, OutputVariableTag, outputVariableAttrs, changes)
}

// AddOutputVariable creates a new output variable requesting the given
// simulation output at the given frequency, with a fresh handle.
func AddOutputVariable(m *osm.Model, variableName, keyValue, frequency string) (*osm.Object, error) {
	o := osm.NewObject(OutputVariableTag, variableName)
	o.SetAttr("Variable Name", cty.StringVal(variableName))
	o.SetAttr("Key Value", cty.StringVal(keyValue))
	o.SetAttr("Reporting Frequency", cty.StringVal(frequency))
	if err := m.Add(o); err != nil {
		return nil, err
	}
	return o, nil
}
