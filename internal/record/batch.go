package record

import "fmt"

// Status is the aggregate outcome of a batch mutation.
type Status string

const (
	StatusSuccess        Status = "SUCCESS"
	StatusPartialSuccess Status = "PARTIAL_SUCCESS"
	StatusError          Status = "ERROR"
)

// BatchResult aggregates per-item outcomes of one batch mutation.
//
// The status follows a three-way rule: ERROR iff nothing was updated and at
// least one error occurred; PARTIAL_SUCCESS iff both updates and errors
// occurred; SUCCESS iff no errors occurred.
type BatchResult struct {
	Status       Status
	UpdatedCount int
	Errors       int
	Messages     []string
}

// Batch accumulates per-item outcomes while a mutator iterates its change
// entries. The zero value is ready to use.
type Batch struct {
	updated  int
	failed   int
	messages []string
}

// Updated records one successfully resolved and processed entry.
func (b *Batch) Updated() { b.updated++ }

// Failf records one failure with a formatted message. Messages keep the
// order failures occurred in.
func (b *Batch) Failf(format string, args ...any) {
	b.failed++
	b.messages = append(b.messages, fmt.Sprintf(format, args...))
}

// Result folds the accumulated counts into a BatchResult.
func (b *Batch) Result() BatchResult {
	res := BatchResult{
		UpdatedCount: b.updated,
		Errors:       b.failed,
		Messages:     b.messages,
	}
	switch {
	case b.failed == 0:
		res.Status = StatusSuccess
	case b.updated == 0:
		res.Status = StatusError
	default:
		res.Status = StatusPartialSuccess
	}
	return res
}
