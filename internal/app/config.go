package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath    string // model transport file
	WorkflowPath string // hcl file or directory
	OutputPath   string // defaults to ModelPath when empty

	MeasuresPath   string // hcl measure declarations
	MeasureBin     string
	MeasureTimeout time.Duration

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("ModelPath is a required configuration field and cannot be empty")
	}
	if cfg.WorkflowPath == "" {
		return nil, errors.New("WorkflowPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = cfg.ModelPath
	}

	return &cfg, nil
}
