package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/osmkitgo/internal/ctxlog"
	"github.com/vk/osmkitgo/internal/measure"
	"github.com/vk/osmkitgo/internal/task"
	"github.com/vk/osmkitgo/tasks/applymeasure"
	"github.com/vk/osmkitgo/tasks/normalizenames"
	"github.com/vk/osmkitgo/tasks/renamesurfaces"
	"github.com/vk/osmkitgo/tasks/setoutputs"
	"github.com/vk/osmkitgo/tasks/spacemetrics"
	"github.com/vk/osmkitgo/tasks/wwr"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	registry  *task.Registry
	manifests map[string]*measure.Manifest
}

// New is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry,
// with the built-in tasks and any declared measures registered.
func New(outW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := task.New()
	normalizenames.Register(reg)
	renamesurfaces.Register(reg)
	setoutputs.Register(reg)
	spacemetrics.Register(reg)
	wwr.Register(reg)
	logger.Debug("Built-in tasks registered.", "count", len(reg.Types()))

	manifests := map[string]*measure.Manifest{}
	if cfg.MeasuresPath != "" {
		var err error
		manifests, err = measure.LoadManifests(ctx, cfg.MeasuresPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load measure declarations: %w", err)
		}
		logger.Debug("Measure declarations loaded.", "count", len(manifests))
	}

	exec := &measure.CLIExecutor{Bin: cfg.MeasureBin, Timeout: cfg.MeasureTimeout}
	if exec.Bin == "" {
		exec.Bin = measure.DefaultBin
	}
	applymeasure.Register(reg, manifests, measure.NewRunner(exec))

	return &App{
		outW:      outW,
		logger:    logger,
		registry:  reg,
		manifests: manifests,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *task.Registry {
	return a.registry
}
