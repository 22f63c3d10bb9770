package measure

import "fmt"

// ExecutionError reports a non-zero exit from the external measure
// process, carrying its captured diagnostic output.
type ExecutionError struct {
	Measure  string
	ExitCode int
	Output   string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("measure %q: external process exited with code %d:\n%s", e.Measure, e.ExitCode, e.Output)
}

// IOError reports a failure at the serialization boundary: argument
// validation before launch, model transport, or workflow file handling.
type IOError struct {
	Measure string
	Op      string
	Err     error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("measure %q: %s: %v", e.Measure, e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
