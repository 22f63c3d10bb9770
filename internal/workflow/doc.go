// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package workflow parses HCL workflow files into an ordered sequence of
// task steps and runs them sequentially over a model.
//
// A workflow threads one model handle through its steps: each task's
// returned handle feeds the next task. Execution halts at the first step
// whose validator does not report READY and surfaces that step's
// ValidationResult to the caller.
package workflow
