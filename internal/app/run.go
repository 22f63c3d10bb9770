package app

import (
	"context"
	"fmt"

	"github.com/vk/osmkitgo/internal/ctxlog"
	"github.com/vk/osmkitgo/internal/osm"
	"github.com/vk/osmkitgo/internal/workflow"
)

// Run executes the main application logic based on the provided configuration:
// load the model, load the workflow, run it to completion or halt, and write
// the resulting model back out.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	m, err := osm.Load(cfg.ModelPath)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	a.logger.Info("Model loaded.", "path", cfg.ModelPath, "objects", m.Len())

	wf, err := workflow.Load(ctx, cfg.WorkflowPath)
	if err != nil {
		return fmt.Errorf("failed to load workflow: %w", err)
	}
	a.logger.Info("Workflow loaded.", "path", cfg.WorkflowPath, "steps", len(wf.Steps))

	engine := workflow.NewEngine(a.registry)
	res, err := engine.Run(ctx, m, wf)
	if err != nil {
		return fmt.Errorf("workflow execution failed: %w", err)
	}

	for _, step := range res.Steps {
		a.logger.Info("Step finished.",
			"task", step.Step.TaskType,
			"step", step.Step.Name,
			"status", step.Validation.Status,
			"messages", step.Validation.Messages,
			"ran", step.Ran,
		)
	}

	if res.Halted != nil {
		if res.Failed() {
			return fmt.Errorf("workflow halted: step %q of task %q reported %s: %v",
				res.Halted.Step.Name, res.Halted.Step.TaskType,
				res.Halted.Validation.Status, res.Halted.Validation.Messages)
		}
		// A SKIP halt is a clean outcome: the workflow decided there was
		// nothing left to do.
		a.logger.Warn("Workflow halted on a skipped step.",
			"step", res.Halted.Step.Name, "task", res.Halted.Step.TaskType)
	}

	outPath := cfg.OutputPath
	if outPath == "" {
		outPath = cfg.ModelPath
	}
	if err := osm.Save(res.Model, outPath); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}
	a.logger.Info("Model saved.", "path", outPath, "objects", res.Model.Len())

	a.logger.Debug("App.Run method finished.")
	return nil
}
