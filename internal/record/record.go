package record

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Record is one model object flattened into attribute name/value pairs.
// Optional attributes the object does not carry are present as explicit
// null values, never omitted and never replaced by a placeholder string.
type Record map[string]cty.Value

// Keys returns the record's keys in column order: "Handle" and "Name"
// first, the rest alphabetical.
func (r Record) Keys() []string {
	set := make(map[string]struct{}, len(r))
	for k := range r {
		set[k] = struct{}{}
	}
	return orderColumns(set)
}

// orderColumns produces the stable column order shared by Record.Keys and
// Table: identifier columns lead, everything else is alphabetical.
func orderColumns(set map[string]struct{}) []string {
	var rest []string
	for k := range set {
		if k != "Handle" && k != "Name" {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)

	out := make([]string, 0, len(set))
	if _, ok := set["Handle"]; ok {
		out = append(out, "Handle")
	}
	if _, ok := set["Name"]; ok {
		out = append(out, "Name")
	}
	return append(out, rest...)
}
