// Package measure wraps externally-executed model transformations. A
// measure is described by a declarative HCL manifest (argument names,
// types, defaults) and executed by serializing the model to a transport
// file, invoking an external process, and reading the resulting file back.
//
// The process boundary is behind the Executor interface so the concrete
// invocation mechanism stays swappable; CLIExecutor is the production
// implementation. Failures are never retried: the external process's side
// effects are not guaranteed idempotent.
package measure
