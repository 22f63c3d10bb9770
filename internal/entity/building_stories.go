package entity

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/record"
)

// BuildingStoryTag is the type tag of OS:BuildingStory objects.
const BuildingStoryTag = "OS:BuildingStory"

var buildingStoryAttrs = []attrSpec{
	{key: "Nominal Z Coordinate {m}", typ: cty.Number},
	{key: "Nominal Floor to Floor Height {m}", typ: cty.Number},
	{key: "Nominal Floor to Ceiling Height {m}", typ: cty.Number},
	{key: "Default Construction Set Name", typ: cty.String, refType: "OS:DefaultConstructionSet"},
	{key: "Default Schedule Set Name", typ: cty.String, refType: "OS:DefaultScheduleSet"},
	{key: "Group Rendering Name", typ: cty.String, refType: "OS:Rendering:Color"},
}

// BuildingStoryRecord reads one building story into a record.
func BuildingStoryRecord(m *osm.Model, id osm.Identifier, ref *osm.Object) (record.Record, error) {
	return oneRecord(m, BuildingStoryTag, buildingStoryAttrs, id, ref)
}

// AllBuildingStoryRecords reads every building story, resolving each object
// exactly once.
func AllBuildingStoryRecords(m *osm.Model) []record.Record {
	return allRecords(m, BuildingStoryTag, buildingStoryAttrs)
}

// BuildingStoryTable exports all building stories as a table sorted by Name.
func BuildingStoryTable(m *osm.Model) *record.Table {
	return asTable(AllBuildingStoryRecords(m))
}

// UpdateBuildingStories applies a batch of building story changes.
func UpdateBuildingStories(m *osm.Model, changes []Change) record.BatchResult {
	return updateObjects(m, BuildingStoryTag, buildingStoryAttrs, changes)
}
