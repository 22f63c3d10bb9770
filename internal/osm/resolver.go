package osm

// Source is the lookup surface the resolver needs from a model. *Model
// satisfies it; tests wrap it to count lookups.
type Source interface {
	ByHandle(typeTag, handle string) (*Object, bool)
	ByName(typeTag, name string) []*Object
}

// Resolve locates an object of the given type.
//
// When ref is non-nil it is assumed valid for typeTag and returned without
// touching the model at all. This is the batch fast path: "get all" callers
// resolve each object exactly once while iterating the collection and hand
// the reference down, keeping total lookups O(n) instead of O(n²).
//
// Otherwise the handle is tried first; only when it is absent or misses is
// the name tried. A name matching more than one object without a handle is
// an *AmbiguousNameError rather than a silent first match: duplicate names
// are common in models mid-cleanup, and picking one arbitrarily hides real
// mistakes. An identifier matching nothing is a *NotFoundError.
func Resolve(src Source, typeTag string, id Identifier, ref *Object) (*Object, error) {
	if ref != nil {
		return ref, nil
	}

	if id.Handle != "" {
		if o, ok := src.ByHandle(typeTag, id.Handle); ok {
			return o, nil
		}
	}

	if id.Name != "" {
		matches := src.ByName(typeTag, id.Name)
		switch len(matches) {
		case 0:
			// fall through to not-found
		case 1:
			return matches[0], nil
		default:
			return nil, &AmbiguousNameError{TypeTag: typeTag, Name: id.Name, Matches: len(matches)}
		}
	}

	return nil, &NotFoundError{TypeTag: typeTag, ID: id}
}
