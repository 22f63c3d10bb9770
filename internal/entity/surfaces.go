package entity

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/record"
)

// SurfaceTag is the type tag of OS:Surface objects.
const SurfaceTag = "OS:Surface"

var surfaceAttrs = []attrSpec{
	{key: "Surface Type", typ: cty.String},
	{key: "Construction Name", typ: cty.String, refType: "OS:Construction"},
	{key: "Space Name", typ: cty.String, refType: SpaceTag},
	{key: "Outside Boundary Condition", typ: cty.String},
	{key: "Outside Boundary Condition Object", typ: cty.String},
	{key: "Sun Exposure", typ: cty.String},
	{key: "Wind Exposure", typ: cty.String},
	{key: "View Factor to Ground", typ: cty.Number},
	{key: "Gross Area {m2}", typ: cty.Number},
	{key: "Azimuth {deg}", typ: cty.Number},
}

// SurfaceRecord reads one surface into a record.
func SurfaceRecord(m *osm.Model, id osm.Identifier, ref *osm.Object) (record.Record, error) {
	return oneRecord(m, SurfaceTag, surfaceAttrs, id, ref)
}

// AllSurfaceRecords reads every surface, resolving each object exactly once.
func AllSurfaceRecords(m *osm.Model) []record.Record {
	return allRecords(m, SurfaceTag, surfaceAttrs)
}

// SurfaceTable exports all surfaces as a table sorted by Name.
func SurfaceTable(m *osm.Model) *record.Table {
	return asTable(AllSurfaceRecords(m))
}

// UpdateSurfaces applies a batch of surface changes.
func UpdateSurfaces(m *osm.Model, changes []Change) record.BatchResult {
	return updateObjects(m, SurfaceTag, surfaceAttrs, changes)
}
