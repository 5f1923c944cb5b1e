package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/resourcekit/internal/config"
	"github.com/specialistvlad/resourcekit/internal/ctxlog"
	"github.com/specialistvlad/resourcekit/internal/mapping"
	"github.com/specialistvlad/resourcekit/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger   *slog.Logger
	cfg      *Config
	registry *registry.Registry
	model    *config.Model
	factory  *mapping.Factory
}

// NewApp is the constructor for the main application. Logs are written to
// logW. It panics when the configuration cannot be loaded or the registered
// bundles are inconsistent.
func NewApp(logW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model := config.NewModel()
	if len(cfg.ConfigPaths) > 0 {
		loaded, err := loader.Load(ctx, cfg.ConfigPaths...)
		if err != nil {
			// A failure to load config is a fatal startup error.
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		model = loaded
	}
	logger.Debug("Configuration loaded.", "bundles", len(model.Bundles), "resources", len(model.Overrides))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All bundle modules registered.", "count", len(modules))

	if err := reg.ValidateRegistry(ctx); err != nil {
		// A mismatch between compiled-in bundles is a programmer error.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		logger:   logger,
		cfg:      cfg,
		registry: reg,
		model:    model,
		factory:  mapping.DefaultFactory(),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded configuration model.
func (a *App) Model() *config.Model {
	return a.model
}
