package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/osmkitgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("osmkit", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
osmkit - A declarative workflow runner for building energy models.

Usage:
  osmkit [options] [MODEL_PATH]

Arguments:
  MODEL_PATH
    Path to the model transport file to operate on.

Options:
`)
		flagSet.PrintDefaults()
	}

	modelFlag := flagSet.String("model", "", "Path to the model transport file.")
	workflowFlag := flagSet.String("workflow", "", "Path to a workflow .hcl file or a directory of them.")
	wFlag := flagSet.String("w", "", "Path to a workflow .hcl file or directory (shorthand).")
	outFlag := flagSet.String("out", "", "Path to write the resulting model. Defaults to the input path.")
	measuresPathFlag := flagSet.String("measures-path", "", "Path to the directory containing measure declarations.")
	measureBinFlag := flagSet.String("measure-bin", "", "Executable used to run measures. Defaults to 'openstudio'.")
	measureTimeoutFlag := flagSet.Duration("measure-timeout", 0, "Per-measure execution timeout. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	modelPath := *modelFlag
	if modelPath == "" && flagSet.NArg() > 0 {
		modelPath = flagSet.Arg(0)
	}
	slog.Debug("Model path determined.", "path", modelPath)

	if modelPath == "" {
		slog.Debug("No model path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	workflowPath := *workflowFlag
	if workflowPath == "" {
		workflowPath = *wFlag
	}
	if workflowPath == "" {
		return nil, false, &ExitError{Code: 2, Message: "a workflow path is required: pass -w or --workflow"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *measureTimeoutFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid measure-timeout: must not be negative"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ModelPath:      modelPath,
		WorkflowPath:   workflowPath,
		OutputPath:     *outFlag,
		MeasuresPath:   *measuresPathFlag,
		MeasureBin:     *measureBinFlag,
		MeasureTimeout: *measureTimeoutFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
