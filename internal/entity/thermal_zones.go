package entity

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/record"
)

// ThermalZoneTag is the type tag of OS:ThermalZone objects.
const ThermalZoneTag = "OS:ThermalZone"

var thermalZoneAttrs = []attrSpec{
	{key: "Multiplier", typ: cty.Number},
	{key: "Ceiling Height {m}", typ: cty.Number},
	{key: "Volume {m3}", typ: cty.Number},
	{key: "Floor Area {m2}", typ: cty.Number},
	{key: "Zone Inside Convection Algorithm", typ: cty.String},
	{key: "Zone Outside Convection Algorithm", typ: cty.String},
	{key: "Thermostat Name", typ: cty.String},
}

// ThermalZoneRecord reads one thermal zone into a record.
func ThermalZoneRecord(m *osm.Model, id osm.Identifier, ref *osm.Object) (record.Record, error) {
	return oneRecord(m, ThermalZoneTag, thermalZoneAttrs, id, ref)
}

// AllThermalZoneRecords reads every thermal zone, resolving each object
// exactly once.
func AllThermalZoneRecords(m *osm.Model) []record.Record {
	return allRecords(m, ThermalZoneTag, thermalZoneAttrs)
}

// ThermalZoneTable exports all thermal zones as a table sorted by Name.
func ThermalZoneTable(m *osm.Model) *record.Table {
	return asTable(AllThermalZoneRecords(m))
}

// UpdateThermalZones applies a batch of thermal zone changes.
func UpdateThermalZones(m *osm.Model, changes []Change) record.BatchResult {
	return updateObjects(m, ThermalZoneTag, thermalZoneAttrs, changes)
}
