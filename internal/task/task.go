package task

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/osm"
)

// Status is the outcome of a task's precondition check.
type Status string

const (
	// StatusReady means every precondition Run needs holds.
	StatusReady Status = "READY"
	// StatusSkip means the operation is a legitimate no-op for this model.
	StatusSkip Status = "SKIP"
	// StatusError means a prerequisite is missing or the caller made a
	// mistake. It is reported as a status, never raised.
	StatusError Status = "ERROR"
)

// ValidationResult is produced fresh by every Validate call and never
// persisted.
type ValidationResult struct {
	Status   Status
	Messages []string
}

// Ready builds a READY result with the given messages.
func Ready(messages ...string) ValidationResult {
	return ValidationResult{Status: StatusReady, Messages: messages}
}

// Skip builds a SKIP result with the given messages.
func Skip(messages ...string) ValidationResult {
	return ValidationResult{Status: StatusSkip, Messages: messages}
}

// Errorf builds an ERROR result with a single formatted message.
func Errorf(format string, args ...any) ValidationResult {
	return ValidationResult{Status: StatusError, Messages: []string{fmt.Sprintf(format, args...)}}
}

// Args holds a task invocation's arguments after coercion: every declared
// input is present and non-null, defaults applied, values converted to
// declared types.
type Args map[string]cty.Value

// Str returns a string argument. Coercion guarantees presence and type for
// declared string inputs.
func (a Args) Str(name string) string { return a[name].AsString() }

// Bool returns a bool argument.
func (a Args) Bool(name string) bool { return a[name].True() }

// Num returns a number argument as float64.
func (a Args) Num(name string) float64 {
	f, _ := a[name].AsBigFloat().Float64()
	return f
}

// StrList returns a list-of-string argument as a Go slice.
func (a Args) StrList(name string) []string {
	v := a[name]
	if v.IsNull() || v.LengthInt() == 0 {
		return nil
	}
	out := make([]string, 0, v.LengthInt())
	for _, elem := range v.AsValueSlice() {
		out = append(out, elem.AsString())
	}
	return out
}

// ValidateFunc checks preconditions. It must not mutate the model.
type ValidateFunc func(ctx context.Context, m *osm.Model, args Args) ValidationResult

// RunFunc applies the transformation and returns the (possibly same) model
// handle so the caller can continue the chain.
type RunFunc func(ctx context.Context, m *osm.Model, args Args) (*osm.Model, error)

// InputSpec declares one named input: its value type, an optional default
// (nil means required), and a description for usage output.
type InputSpec struct {
	Type        cty.Type
	Description string
	Default     *cty.Value
}

// Task is a named operation over the model graph.
type Task struct {
	Type        string
	Description string
	Inputs      map[string]InputSpec
	Validate    ValidateFunc
	Run         RunFunc
}
