package osm

import "fmt"

// Identifier names an object by its stable handle string, its human-readable
// name, or both. Resolution always prefers the handle; the name is a
// fallback only, since names are mutable and not guaranteed unique.
type Identifier struct {
	Handle string
	Name   string
}

// ByHandle builds an identifier carrying only a handle string.
func ByHandle(handle string) Identifier { return Identifier{Handle: handle} }

// ByName builds an identifier carrying only a name.
func ByName(name string) Identifier { return Identifier{Name: name} }

// IsZero reports whether the identifier carries neither a handle nor a name.
func (id Identifier) IsZero() bool { return id.Handle == "" && id.Name == "" }

func (id Identifier) String() string {
	switch {
	case id.Handle != "" && id.Name != "":
		return fmt.Sprintf("handle=%s name=%q", id.Handle, id.Name)
	case id.Handle != "":
		return "handle=" + id.Handle
	case id.Name != "":
		return fmt.Sprintf("name=%q", id.Name)
	default:
		return "(empty identifier)"
	}
}
