package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/specialistvlad/blockplace/internal/cachetag"
	"github.com/specialistvlad/blockplace/internal/config"
	"github.com/specialistvlad/blockplace/internal/ctxlog"
	"github.com/specialistvlad/blockplace/internal/plugin"
	"github.com/specialistvlad/blockplace/internal/store"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	registry *plugin.Registry
	model    *config.Model
	bus      *cachetag.MemoryBus
	listings *cachetag.RenderCache
	store    *store.Store
}

// NewApp is the constructor for the main application. Listings are written to
// outW and logs to logW. Configuration that cannot be loaded, or a registry
// that is out of sync with its manifests, is a fatal startup error and panics.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...plugin.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// The modules path is optional; the placement path must exist.
	var paths []string
	if cfg.ModulesPath != "" {
		if _, err := os.Stat(cfg.ModulesPath); errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Modules path not found, skipping manifests.", "path", cfg.ModulesPath)
		} else {
			paths = append(paths, cfg.ModulesPath)
		}
	}
	paths = append(paths, cfg.ConfigPath)

	model, err := loader.Load(ctx, paths...)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded.", "plugins", len(model.Plugins), "placements", len(model.Placements))

	reg := plugin.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All block modules registered.", "count", len(modules))

	reg.PopulateDefinitionsFromModel(model)
	if err := reg.ValidateRegistry(ctx); err != nil {
		// A mismatch between code and manifests is a programmer error.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	bus := cachetag.NewMemoryBus()
	return &App{
		outW:     outW,
		logger:   logger,
		cfg:      cfg,
		registry: reg,
		model:    model,
		bus:      bus,
		listings: cachetag.NewRenderCache(bus),
		store:    store.New(),
	}
}

// Registry returns the application's plugin registry.
func (a *App) Registry() *plugin.Registry { return a.registry }

// Store returns the application's placement storage.
func (a *App) Store() *store.Store { return a.store }

// Bus returns the application's cache tag bus.
func (a *App) Bus() *cachetag.MemoryBus { return a.bus }
