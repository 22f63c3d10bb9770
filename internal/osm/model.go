package osm

import (
	"fmt"
	"sort"
)

// Model is the object graph of one building model. Objects are grouped by
// type tag in insertion order, with a handle index on top so handle lookups
// never scan a collection.
type Model struct {
	byType   map[string][]*Object
	byHandle map[string]*Object
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		byType:   make(map[string][]*Object),
		byHandle: make(map[string]*Object),
	}
}

// Add inserts an object into the graph. Handles must be unique.
func (m *Model) Add(o *Object) error {
	if _, exists := m.byHandle[o.Handle()]; exists {
		return fmt.Errorf("duplicate handle %q", o.Handle())
	}
	m.byHandle[o.Handle()] = o
	m.byType[o.Type()] = append(m.byType[o.Type()], o)
	return nil
}

// Remove deletes the object with the given handle. It reports whether an
// object was removed.
func (m *Model) Remove(handle string) bool {
	o, ok := m.byHandle[handle]
	if !ok {
		return false
	}
	delete(m.byHandle, handle)
	coll := m.byType[o.Type()]
	for i, candidate := range coll {
		if candidate == o {
			m.byType[o.Type()] = append(coll[:i:i], coll[i+1:]...)
			break
		}
	}
	return true
}

// AllOf returns all objects of a type tag in insertion order. The returned
// slice is a copy; the underlying collection is not exposed.
func (m *Model) AllOf(typeTag string) []*Object {
	coll := m.byType[typeTag]
	out := make([]*Object, len(coll))
	copy(out, coll)
	return out
}

// ByHandle looks an object up through the handle index. The type tag is
// checked so a handle of the wrong category does not resolve.
func (m *Model) ByHandle(typeTag, handle string) (*Object, bool) {
	o, ok := m.byHandle[handle]
	if !ok || o.Type() != typeTag {
		return nil, false
	}
	return o, true
}

// ByName scans the type's collection and returns every object carrying the
// given name. Names are not unique, so the result may hold several objects.
func (m *Model) ByName(typeTag, name string) []*Object {
	var out []*Object
	for _, o := range m.byType[typeTag] {
		if n, ok := o.Name(); ok && n == name {
			out = append(out, o)
		}
	}
	return out
}

// TypeTags returns the type tags present in the model, sorted.
func (m *Model) TypeTags() []string {
	tags := make([]string, 0, len(m.byType))
	for tag, coll := range m.byType {
		if len(coll) > 0 {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// Len returns the total number of objects in the graph.
func (m *Model) Len() int { return len(m.byHandle) }
