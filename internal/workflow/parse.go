// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Step structure and the HCL decoding for workflow
// files. A step is a single, configured invocation of a registered task:
// the task defines the contract (typed inputs, validator, run logic) and
// the step supplies the arguments for one invocation.
//
// Argument expressions are evaluated at parse time with a nil evaluation
// context, so workflow files hold literal values only. Steps never consume
// each other's outputs; the model handle is the only thing threaded
// between them, which is what keeps the composition strictly sequential.

package workflow

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/osmkitgo/internal/ctxlog"
	"github.com/vk/osmkitgo/internal/fsutil"
)

// Step is one configured task invocation inside a workflow.
type Step struct {
	TaskType    string
	Name        string
	Description string
	Arguments   map[string]cty.Value
	DeclRange   hcl.Range
}

// Workflow is an ordered sequence of steps. Order is declaration order
// within a file; across files it follows sorted file paths.
type Workflow struct {
	Steps []*Step
}

var workflowRootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "task", LabelNames: []string{"type", "name"}},
	},
}

var stepBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "arguments"},
	},
}

// Load reads a workflow from a single .hcl file or from every .hcl file
// under a directory.
func Load(ctx context.Context, path string) (*Workflow, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("workflow path: %w", err)
	}

	paths := []string{path}
	if info.IsDir() {
		paths, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("walk workflow directory: %w", err)
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("no .hcl workflow files found in %s", path)
		}
	}

	parser := hclparse.NewParser()
	wf := &Workflow{}
	seen := make(map[string]hcl.Range)

	for _, filePath := range paths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parse workflow file %s: %w", filePath, diags)
		}
		steps, diags := decodeSteps(hclFile.Body)
		if diags.HasErrors() {
			return nil, fmt.Errorf("decode workflow file %s: %w", filePath, diags)
		}
		for _, step := range steps {
			key := step.TaskType + "." + step.Name
			if prev, dup := seen[key]; dup {
				return nil, fmt.Errorf("duplicate step %q at %s (first declared at %s)", key, step.DeclRange, prev)
			}
			seen[key] = step.DeclRange
			wf.Steps = append(wf.Steps, step)
		}
		logger.Debug("Workflow file loaded.", "file", filePath, "steps", len(steps))
	}

	logger.Info("Workflow loaded.", "steps", len(wf.Steps))
	return wf, nil
}

// decodeSteps extracts task blocks in declaration order.
func decodeSteps(body hcl.Body) ([]*Step, hcl.Diagnostics) {
	content, diags := body.Content(workflowRootSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	var steps []*Step
	for _, block := range content.Blocks {
		step, stepDiags := decodeStep(block)
		diags = append(diags, stepDiags...)
		if stepDiags.HasErrors() {
			continue
		}
		steps = append(steps, step)
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return steps, diags
}

func decodeStep(block *hcl.Block) (*Step, hcl.Diagnostics) {
	step := &Step{
		TaskType:  block.Labels[0],
		Name:      block.Labels[1],
		DeclRange: block.DefRange,
		Arguments: make(map[string]cty.Value),
	}

	content, diags := block.Body.Content(stepBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	if attr, exists := content.Attributes["description"]; exists {
		v, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() && v.Type() == cty.String && !v.IsNull() {
			step.Description = v.AsString()
		}
	}

	var argBlock *hcl.Block
	for _, b := range content.Blocks {
		if b.Type != "arguments" {
			continue
		}
		if argBlock != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate arguments block",
				Detail:   "A task block may contain at most one arguments block.",
				Subject:  &b.DefRange,
			})
			continue
		}
		argBlock = b
	}

	if argBlock != nil {
		attrs, attrDiags := argBlock.Body.JustAttributes()
		diags = append(diags, attrDiags...)
		for name, attr := range attrs {
			// nil eval context: workflow arguments must be literals.
			v, valDiags := attr.Expr.Value(nil)
			diags = append(diags, valDiags...)
			if valDiags.HasErrors() {
				continue
			}
			step.Arguments[name] = v
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return step, diags
}
