package task

import (
	"fmt"
	"log/slog"
	"sort"
)

// Registry holds the task definitions available to one application
// instance, keyed by task type.
type Registry struct {
	tasks map[string]*Task
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{tasks: make(map[string]*Task)}
}

// RegisterTask adds a task definition. Registering the same type twice is a
// programmer error and panics.
func (r *Registry) RegisterTask(t *Task) {
	if _, exists := r.tasks[t.Type]; exists {
		panic(fmt.Sprintf("task with type '%s' already registered", t.Type))
	}
	slog.Debug("Registering task.", "type", t.Type)
	r.tasks[t.Type] = t
}

// Lookup returns the task registered under the given type.
func (r *Registry) Lookup(taskType string) (*Task, bool) {
	t, ok := r.tasks[taskType]
	return t, ok
}

// Types returns the registered task types, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.tasks))
	for t := range r.tasks {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
