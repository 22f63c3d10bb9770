// Package task defines the validate-then-run contract every toolkit
// operation implements, and the registry the workflow engine resolves task
// types against.
//
// A task carries no state between calls. Validate inspects the model and
// reports READY, SKIP, or ERROR without mutating anything; Run assumes the
// caller saw READY, may mutate the model in place, and signals structural
// failure by returning an error. A correct caller never invokes Run after
// a non-READY validation.
package task
