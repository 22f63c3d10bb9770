// Package entity provides the per-category accessor and mutator functions:
// reading model objects into plain records, exporting record collections as
// tables, and applying batched change sets with a BatchResult summary.
//
// Every category follows the same triple pattern (one-object record,
// all-objects records, sorted table) plus a batch updater. The "all"
// variants resolve each object exactly once and pass the reference into the
// single-object accessor, so a collection of n objects costs n lookups.
package entity
