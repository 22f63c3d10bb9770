package osm

import "fmt"

// NotFoundError reports that an identifier resolved to no object of the
// requested type.
type NotFoundError struct {
	TypeTag string
	ID      Identifier
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found for %s", e.TypeTag, e.ID)
}

// AmbiguousNameError reports that a name lookup matched more than one object
// and no handle string was given to disambiguate.
type AmbiguousNameError struct {
	TypeTag string
	Name    string
	Matches int
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("%d %s objects named %q; provide a handle to disambiguate", e.Matches, e.TypeTag, e.Name)
}
