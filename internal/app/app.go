package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/impactgridgo/internal/config"
	"github.com/specialistvlad/impactgridgo/internal/ctxlog"
	"github.com/specialistvlad/impactgridgo/internal/executor"
	"github.com/specialistvlad/impactgridgo/internal/impact"
	"github.com/specialistvlad/impactgridgo/internal/model"
	"github.com/specialistvlad/impactgridgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	grid     *model.Grid
	graph    *impact.Graph
	registry *registry.Registry
	runner   executor.Runner

	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, loaded grid
// and populated environment registry. A nil runner selects the shipped
// local-process runner; tests inject their own.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, runner executor.Runner) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	grid, err := loader.Load(ctx, appConfig.GridPath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Grid loaded and translated into unified model.",
		"environments", len(grid.Environments), "targets", len(grid.Targets))

	graph, err := impact.BuildGraph(grid, appConfig.ImpactMapPaths...)
	if err != nil {
		panic(fmt.Errorf("failed to build dependency graph: %w", err))
	}
	logger.Debug("Dependency graph built.")

	reg := registry.New()
	reg.PopulateFromGrid(grid)
	if err := reg.ValidateRegistry(ctx); err != nil {
		// A grid without environments can never place a target.
		panic(err)
	}
	logger.Debug("Environment registry populated and validated.", "environments", reg.Size())

	if runner == nil {
		runner = executor.NewProcessRunner()
	}

	return &App{
		outW:     outW,
		logger:   logger,
		grid:     grid,
		graph:    graph,
		registry: reg,
		runner:   runner,
	}
}

// Grid returns the loaded grid model. This is primarily for testing.
func (a *App) Grid() *model.Grid {
	return a.grid
}

// Registry returns the application's environment registry. This is
// primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
