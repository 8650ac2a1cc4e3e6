package app

import (
	"io"
	"log/slog"

	"github.com/packplan/packplan/internal/config"
	"github.com/packplan/packplan/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	loader   config.Loader
	config   *Config
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry.
func New(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	// Populate the kind registry through the explicit registration list.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreKinds
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Module kinds registered.", "count", len(modules), "kinds", reg.Kinds())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		loader:   loader,
		config:   cfg,
	}
}

// Registry returns the application's kind registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
