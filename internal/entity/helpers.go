package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/record"
)

// attrSpec declares one attribute of a category: its record key, its value
// type, and, for attributes naming another object, the referenced type
// tag, checked on update.
type attrSpec struct {
	key     string
	typ     cty.Type
	refType string
}

// Change is one entry in a batch mutation: the target identifier and the
// fields to apply. A null field value means "leave unchanged", so change
// sets round-tripped through tables are safe to apply as-is. The "Handle"
// key is ignored; handles are immutable and only identify the target.
type Change struct {
	ID     osm.Identifier
	Fields record.Record
}

func oneRecord(m *osm.Model, typeTag string, specs []attrSpec, id osm.Identifier, ref *osm.Object) (record.Record, error) {
	obj, err := osm.Resolve(m, typeTag, id, ref)
	if err != nil {
		return nil, err
	}
	return objectRecord(obj, specs), nil
}

// objectRecord flattens one object. Every declared attribute is read
// through a guarded existence check; absence becomes an explicit null of
// the declared type.
func objectRecord(o *osm.Object, specs []attrSpec) record.Record {
	rec := make(record.Record, len(specs)+2)
	rec["Handle"] = cty.StringVal(o.Handle())
	if name, ok := o.Name(); ok {
		rec["Name"] = cty.StringVal(name)
	} else {
		rec["Name"] = cty.NullVal(cty.String)
	}
	for _, s := range specs {
		if v, ok := o.Attr(s.key); ok {
			rec[s.key] = v
		} else {
			rec[s.key] = cty.NullVal(s.typ)
		}
	}
	return rec
}

// allRecords iterates the category's collection once, handing each object
// down as the pre-resolved reference. Resolution cannot fail on that path.
func allRecords(m *osm.Model, typeTag string, specs []attrSpec) []record.Record {
	objs := m.AllOf(typeTag)
	recs := make([]record.Record, 0, len(objs))
	for _, o := range objs {
		rec, err := oneRecord(m, typeTag, specs, osm.Identifier{}, o)
		if err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	return recs
}

// asTable exports a record collection sorted by Name.
func asTable(recs []record.Record) *record.Table {
	t := record.FromRecords(recs)
	t.SortBy("Name")
	return t
}

// updateObjects applies a batch of changes. Per entry: a resolution failure
// is counted and the batch continues; a resolved entry counts as updated,
// and its fields are applied best-effort. Each field failure is counted
// with a message naming the identifier and the field, without discarding
// the fields already applied.
func updateObjects(m *osm.Model, typeTag string, specs []attrSpec, changes []Change) record.BatchResult {
	byKey := make(map[string]attrSpec, len(specs))
	for _, s := range specs {
		byKey[s.key] = s
	}

	var b record.Batch
	for _, ch := range changes {
		obj, err := osm.Resolve(m, typeTag, ch.ID, nil)
		if err != nil {
			b.Failf("%s %s: %v", typeTag, ch.ID, err)
			continue
		}
		b.Updated()

		for _, key := range sortedFieldKeys(ch.Fields) {
			val := ch.Fields[key]
			if key == "Handle" || val.IsNull() {
				continue
			}
			if err := applyField(m, obj, byKey, key, val); err != nil {
				b.Failf("%s %s: field %q: %v", typeTag, ch.ID, key, err)
			}
		}
	}
	return b.Result()
}

func applyField(m *osm.Model, obj *osm.Object, byKey map[string]attrSpec, key string, val cty.Value) error {
	if key == "Name" {
		conv, err := convert.Convert(val, cty.String)
		if err != nil {
			return errors.New("name must be a string")
		}
		obj.SetName(conv.AsString())
		return nil
	}

	spec, ok := byKey[key]
	if !ok {
		return errors.New("not a settable attribute")
	}
	conv, err := convert.Convert(val, spec.typ)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s", val.Type().FriendlyName(), spec.typ.FriendlyName())
	}
	if spec.refType != "" {
		if len(m.ByName(spec.refType, conv.AsString())) == 0 {
			return fmt.Errorf("no %s named %q", spec.refType, conv.AsString())
		}
	}
	obj.SetAttr(key, conv)
	return nil
}

func sortedFieldKeys(fields record.Record) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
