package osm

import (
	"sort"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
)

// Object is a single entry in the model graph. Its handle is globally
// unique and immutable for the object's lifetime; its name is mutable and
// may collide with other names of the same type.
type Object struct {
	handle  string
	typeTag string
	name    *string
	attrs   map[string]cty.Value
}

// NewObject creates an object of the given type with a freshly generated
// handle and the given name.
func NewObject(typeTag, name string) *Object {
	o := &Object{
		handle:  uuid.NewString(),
		typeTag: typeTag,
		attrs:   make(map[string]cty.Value),
	}
	o.SetName(name)
	return o
}

// RestoreObject rebuilds an object with a known handle, as read back from a
// transport file. A nil name restores an unnamed object.
func RestoreObject(handle, typeTag string, name *string) *Object {
	o := &Object{
		handle:  handle,
		typeTag: typeTag,
		attrs:   make(map[string]cty.Value),
	}
	if name != nil {
		o.SetName(*name)
	}
	return o
}

// Handle returns the object's handle string.
func (o *Object) Handle() string { return o.handle }

// Type returns the object's type tag, e.g. "OS:Space".
func (o *Object) Type() string { return o.typeTag }

// Name returns the object's name and whether one has been set.
func (o *Object) Name() (string, bool) {
	if o.name == nil {
		return "", false
	}
	return *o.name, true
}

// SetName sets the object's name.
func (o *Object) SetName(name string) {
	o.name = &name
}

// Attr returns the value of an attribute and whether it is set. Unset
// optional attributes report ok=false; accessors convert that into an
// explicit null in the output record.
func (o *Object) Attr(key string) (cty.Value, bool) {
	v, ok := o.attrs[key]
	return v, ok
}

// SetAttr sets an attribute value. Setting a null value clears the
// attribute back to its unset state.
func (o *Object) SetAttr(key string, v cty.Value) {
	if v.IsNull() {
		delete(o.attrs, key)
		return
	}
	o.attrs[key] = v
}

// AttrKeys returns the set attribute keys in sorted order.
func (o *Object) AttrKeys() []string {
	keys := make([]string, 0, len(o.attrs))
	for k := range o.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
