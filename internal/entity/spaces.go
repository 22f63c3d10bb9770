package entity

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/record"
)

// SpaceTag is the type tag of OS:Space objects.
const SpaceTag = "OS:Space"

var spaceAttrs = []attrSpec{
	{key: "Space Type Name", typ: cty.String, refType: "OS:SpaceType"},
	{key: "Default Construction Set Name", typ: cty.String, refType: "OS:DefaultConstructionSet"},
	{key: "Default Schedule Set Name", typ: cty.String, refType: "OS:DefaultScheduleSet"},
	{key: "Direction of Relative North {deg}", typ: cty.Number},
	{key: "X Origin {m}", typ: cty.Number},
	{key: "Y Origin {m}", typ: cty.Number},
	{key: "Z Origin {m}", typ: cty.Number},
	{key: "Building Story Name", typ: cty.String, refType: BuildingStoryTag},
	{key: "Thermal Zone Name", typ: cty.String, refType: ThermalZoneTag},
	{key: "Part of Total Floor Area", typ: cty.Bool},
	{key: "Volume {m3}", typ: cty.Number},
	{key: "Ceiling Height {m}", typ: cty.Number},
	{key: "Floor Area {m2}", typ: cty.Number},
}

// SpaceRecord reads one space into a record. A non-nil ref skips resolution
// entirely; batch callers use it to avoid re-resolving inside a loop.
func SpaceRecord(m *osm.Model, id osm.Identifier, ref *osm.Object) (record.Record, error) {
	return oneRecord(m, SpaceTag, spaceAttrs, id, ref)
}

// AllSpaceRecords reads every space, resolving each object exactly once.
func AllSpaceRecords(m *osm.Model) []record.Record {
	return allRecords(m, SpaceTag, spaceAttrs)
}

// SpaceTable exports all spaces as a table sorted by Name.
func SpaceTable(m *osm.Model) *record.Table {
	return asTable(AllSpaceRecords(m))
}

// UpdateSpaces applies a batch of space changes.
func UpdateSpaces(m *osm.Model, changes []Change) record.BatchResult {
	return updateObjects(m, SpaceTag, spaceAttrs, changes)
}
