package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/ctxlog"
	"github.com/vk/techgridgo/internal/graph"
	"github.com/vk/techgridgo/internal/milestone"
	"github.com/vk/techgridgo/internal/settings"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	graph    *graph.Graph
	settings *settings.Settings
	engine   *milestone.Engine
}

// NewApp is the constructor for the main application. It loads the project,
// builds the object graph, applies the project's milestone settings, and
// constructs the engine. A failure to load or link the project is a fatal
// startup error and panics; main recovers and reports it.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.ProjectPath)
	if err != nil {
		panic(fmt.Errorf("failed to load project: %w", err))
	}
	logger.Debug("Project loaded and translated into unified model.", "objects", len(model.Objects))

	g, err := graph.Build(ctx, model)
	if err != nil {
		panic(fmt.Errorf("failed to build object graph: %w", err))
	}
	logger.Debug("Object graph built.", "node_count", g.Len(), "roots", len(g.Roots()))

	if err := g.DetectCycles(); err != nil {
		// Cycles are survivable (the engine's step cap bounds them) but
		// almost always a project mistake, so surface them early.
		logger.Warn("Project dependency graph is cyclic.", "error", err)
	}

	set, err := settings.FromConfig(g, model.Milestones)
	if err != nil {
		panic(fmt.Errorf("invalid milestone settings: %w", err))
	}
	logger.Debug("Milestone settings applied.", "milestones", len(set.Milestones()))

	var opts []milestone.Option
	if appConfig.StepCap > 0 {
		opts = append(opts, milestone.WithStepCap(appConfig.StepCap))
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		graph:    g,
		settings: set,
		engine:   milestone.New(g, set, opts...),
	}
}

// Engine returns the application's milestone engine. This is primarily for testing.
func (a *App) Engine() *milestone.Engine {
	return a.engine
}
