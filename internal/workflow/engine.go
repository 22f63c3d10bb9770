// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package workflow

import (
	"context"
	"fmt"

	"github.com/vk/osmkitgo/internal/ctxlog"
	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/task"
)

// StepResult records what happened to one step.
type StepResult struct {
	Step       *Step
	Validation task.ValidationResult
	Ran        bool
}

// Result is the outcome of a workflow run. Halted is nil when every step
// ran; otherwise it points at the first step whose validator did not
// report READY, and no later step was attempted.
type Result struct {
	Model  *osm.Model
	Steps  []StepResult
	Halted *StepResult
}

// Failed reports whether the workflow halted on an ERROR validation, as
// opposed to completing or halting cleanly on a SKIP.
func (r *Result) Failed() bool {
	return r.Halted != nil && r.Halted.Validation.Status == task.StatusError
}

// Engine runs workflows sequentially against a task registry.
type Engine struct {
	reg *task.Registry
}

// NewEngine creates an engine over the given registry.
func NewEngine(reg *task.Registry) *Engine {
	return &Engine{reg: reg}
}

// Run executes the workflow's steps in order, threading the model handle
// from each task into the next. For every step the task's validator runs
// first; Run is invoked only on READY. A returned error means a step's
// task failed structurally, or referenced an unknown type or bad
// arguments. Validator halts are reported through Result, not as errors.
func (e *Engine) Run(ctx context.Context, m *osm.Model, wf *Workflow) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	res := &Result{Model: m}

	for _, step := range wf.Steps {
		stepLogger := logger.With("task", step.TaskType, "step", step.Name)

		t, ok := e.reg.Lookup(step.TaskType)
		if !ok {
			return nil, fmt.Errorf("unknown task type %q at %s", step.TaskType, step.DeclRange)
		}

		args, err := task.CoerceArgs(t, step.Arguments)
		if err != nil {
			return nil, fmt.Errorf("step %q at %s: %w", step.Name, step.DeclRange, err)
		}

		validation := t.Validate(ctx, res.Model, args)
		sr := StepResult{Step: step, Validation: validation}

		if validation.Status != task.StatusReady {
			stepLogger.Info("Workflow halted by validator.",
				"status", validation.Status, "messages", validation.Messages)
			res.Steps = append(res.Steps, sr)
			res.Halted = &res.Steps[len(res.Steps)-1]
			return res, nil
		}

		stepLogger.Debug("Validator passed.", "messages", validation.Messages)
		next, err := t.Run(ctx, res.Model, args)
		if err != nil {
			return nil, fmt.Errorf("task %q (step %q) failed: %w", step.TaskType, step.Name, err)
		}
		res.Model = next
		sr.Ran = true
		res.Steps = append(res.Steps, sr)
		stepLogger.Info("Step finished.")
	}

	return res, nil
}
