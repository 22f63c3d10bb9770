package task

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// CoerceInputs checks a raw argument map against a set of input
// declarations. It rejects unknown keys, applies defaults, reports missing
// required inputs, and converts each value to its declared type. An
// explicit null is treated like an absent argument: the default applies,
// and inputs without one reject it, so accessors never see nulls. Problems
// are returned as messages so callers can decide whether they are a status
// or an error; a non-empty problem list means the returned Args must not be
// used.
func CoerceInputs(inputs map[string]InputSpec, raw map[string]cty.Value) (Args, []string) {
	var problems []string

	for _, name := range sortedKeys(raw) {
		if _, ok := inputs[name]; !ok {
			problems = append(problems, fmt.Sprintf("unknown argument %q", name))
		}
	}

	args := make(Args, len(inputs))
	for _, name := range sortedSpecKeys(inputs) {
		spec := inputs[name]
		v, ok := raw[name]
		if !ok || v.IsNull() {
			if spec.Default == nil {
				if ok {
					problems = append(problems, fmt.Sprintf("argument %q may not be null", name))
				} else {
					problems = append(problems, fmt.Sprintf("missing required argument %q", name))
				}
				continue
			}
			args[name] = *spec.Default
			continue
		}
		conv, err := convert.Convert(v, spec.Type)
		if err != nil {
			problems = append(problems, fmt.Sprintf("argument %q: cannot convert %s to %s",
				name, v.Type().FriendlyName(), spec.Type.FriendlyName()))
			continue
		}
		args[name] = conv
	}

	if len(problems) > 0 {
		return nil, problems
	}
	return args, nil
}

// CoerceArgs is CoerceInputs for a task, folding problems into a single
// error suitable for the workflow engine.
func CoerceArgs(t *Task, raw map[string]cty.Value) (Args, error) {
	args, problems := CoerceInputs(t.Inputs, raw)
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid arguments for task %q: %s", t.Type, strings.Join(problems, "; "))
	}
	return args, nil
}

func sortedKeys(m map[string]cty.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSpecKeys(m map[string]InputSpec) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
