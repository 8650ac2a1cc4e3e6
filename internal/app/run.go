package app

import (
	"context"
	"fmt"

	"github.com/packplan/packplan/internal/ctxlog"
	"github.com/packplan/packplan/internal/dag"
	"github.com/packplan/packplan/internal/plan"
	"github.com/packplan/packplan/internal/props"
	"github.com/packplan/packplan/internal/render"
	"github.com/packplan/packplan/internal/validate"
)

// Run executes the main application logic. In watch mode it keeps
// re-running the pipeline on configuration changes until the context is
// cancelled; otherwise it runs the pipeline once.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.registry.ValidateRegistry(ctx); err != nil {
		// A mismatch between kind specs and emitters is a programmer
		// error, so we panic.
		panic(err)
	}
	a.logger.Debug("Registry validation passed.")

	if a.config.Watch {
		return a.watch(ctx)
	}
	return a.runPipeline(ctx)
}

// runPipeline drives one full pass: load, validate, graph, render, emit.
func (a *App) runPipeline(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	model, err := a.loader.Load(ctx, a.config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded into unified model.",
		"properties", len(model.Properties), "modules", len(model.Modules))

	if a.config.PropsFile != "" {
		decls, err := props.LoadFile(a.config.PropsFile)
		if err != nil {
			return fmt.Errorf("failed to load properties file: %w", err)
		}
		model.Properties = append(model.Properties, decls...)
		logger.Debug("External properties merged.", "count", len(decls))
	}

	store, err := validate.Run(ctx, model, a.registry)
	if err != nil {
		return err
	}
	logger.Info("Validation passed.",
		"variables", store.Len(), "modules", len(model.Modules))

	graph, err := dag.Build(ctx, model)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	logger.Debug("Dependency graph built.", "node_count", graph.Len())

	if a.config.CheckOnly {
		logger.Info("Check-only run complete; nothing rendered.")
		return nil
	}

	if graph.Len() == 0 {
		logger.Warn("No modules found, nothing to plan.")
		return nil
	}

	logger.Info("🚀 Starting plan execution...", "workers", a.config.WorkerCount)
	executor := plan.NewExecutor(a.registry, render.NewRenderer(store), a.config.WorkerCount, a.config.OutDir)
	buildPlan, err := executor.Execute(ctx, model, graph)
	if err != nil {
		return fmt.Errorf("plan execution failed: %w", err)
	}

	planPath, err := buildPlan.Write(a.config.OutDir)
	if err != nil {
		return err
	}
	logger.Info("🏁 Plan complete.", "plan_id", buildPlan.ID, "plan", planPath,
		"artifacts", len(buildPlan.Artifacts))
	return nil
}
