// Package osm holds the in-memory building-model object graph and the
// object resolution protocol used by every accessor in the toolkit.
//
// The graph is a single-owner resource: one caller chain holds a *Model at
// a time and threads it explicitly through every call. There is no ambient
// global model and no locking; concurrent mutation of the same model from
// two call chains is out of contract.
package osm
