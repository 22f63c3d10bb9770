package entity

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/record"
)

// SubSurfaceTag is the type tag of OS:SubSurface objects (windows, doors,
// skylights hosted by a surface).
const SubSurfaceTag = "OS:SubSurface"

var subSurfaceAttrs = []attrSpec{
	{key: "Sub Surface Type", typ: cty.String},
	{key: "Construction Name", typ: cty.String, refType: "OS:Construction"},
	{key: "Surface Name", typ: cty.String, refType: SurfaceTag},
	{key: "Multiplier", typ: cty.Number},
	{key: "Gross Area {m2}", typ: cty.Number},
}

// SubSurfaceRecord reads one subsurface into a record.
func SubSurfaceRecord(m *osm.Model, id osm.Identifier, ref *osm.Object) (record.Record, error) {
	return oneRecord(m, SubSurfaceTag, subSurfaceAttrs, id, ref)
}

// AllSubSurfaceRecords reads every subsurface, resolving each object
// exactly once.
func AllSubSurfaceRecords(m *osm.Model) []record.Record {
	return allRecords(m, SubSurfaceTag, subSurfaceAttrs)
}

// SubSurfaceTable exports all subsurfaces as a table sorted by Name.
func SubSurfaceTable(m *osm.Model) *record.Table {
	return asTable(AllSubSurfaceRecords(m))
}

// UpdateSubSurfaces applies a batch of subsurface changes.
func UpdateSubSurfaces(m *osm.Model, changes []Change) record.BatchResult {
	return updateObjects(m, SubSurfaceTag, subSurfaceAttrs, changes)
}
