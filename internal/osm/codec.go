package osm

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// The transport snapshot is a JSON document listing every object with its
// handle, type tag, optional name, and attributes. Attribute values carry
// their cty type alongside the value so a round trip restores them exactly.
// Callers treat snapshot paths as opaque; only this codec reads or writes
// their contents.

type fileEnvelope struct {
	Objects []fileObject `json:"objects"`
}

type fileObject struct {
	Handle     string              `json:"handle"`
	Type       string              `json:"type"`
	Name       *string             `json:"name,omitempty"`
	Attributes map[string]fileAttr `json:"attributes,omitempty"`
}

type fileAttr struct {
	Type  json.RawMessage `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Write serializes the model. Objects are emitted in sorted type-tag order
// and per-type insertion order so output is deterministic.
func Write(m *Model, w io.Writer) error {
	env := fileEnvelope{Objects: make([]fileObject, 0, m.Len())}

	for _, tag := range m.TypeTags() {
		for _, o := range m.AllOf(tag) {
			fo := fileObject{Handle: o.Handle(), Type: o.Type()}
			if name, ok := o.Name(); ok {
				fo.Name = &name
			}
			keys := o.AttrKeys()
			if len(keys) > 0 {
				fo.Attributes = make(map[string]fileAttr, len(keys))
			}
			for _, key := range keys {
				v, _ := o.Attr(key)
				rawType, err := ctyjson.MarshalType(v.Type())
				if err != nil {
					return fmt.Errorf("object %s attribute %q: %w", o.Handle(), key, err)
				}
				rawValue, err := ctyjson.Marshal(v, v.Type())
				if err != nil {
					return fmt.Errorf("object %s attribute %q: %w", o.Handle(), key, err)
				}
				fo.Attributes[key] = fileAttr{Type: rawType, Value: rawValue}
			}
			env.Objects = append(env.Objects, fo)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&env)
}

// Read deserializes a model previously written by Write.
func Read(r io.Reader) (*Model, error) {
	var env fileEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode model snapshot: %w", err)
	}

	m := NewModel()
	for _, fo := range env.Objects {
		if fo.Handle == "" || fo.Type == "" {
			return nil, fmt.Errorf("object missing handle or type in snapshot")
		}
		o := RestoreObject(fo.Handle, fo.Type, fo.Name)
		for key, fa := range fo.Attributes {
			ty, err := ctyjson.UnmarshalType(fa.Type)
			if err != nil {
				return nil, fmt.Errorf("object %s attribute %q: %w", fo.Handle, key, err)
			}
			v, err := ctyjson.Unmarshal(fa.Value, ty)
			if err != nil {
				return nil, fmt.Errorf("object %s attribute %q: %w", fo.Handle, key, err)
			}
			o.SetAttr(key, v)
		}
		if err := m.Add(o); err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
	}
	return m, nil
}

// Save writes the model snapshot to a file path.
func Save(m *Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a model snapshot from a file path.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
