package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/specialistvlad/blockplace/internal/config"
	"github.com/specialistvlad/blockplace/internal/ctxlog"
)

// FallbackPluginID is the plugin used whenever a requested plugin cannot be
// resolved.
const FallbackPluginID = "broken"

var fallbackDefinition = Definition{
	ID:         FallbackPluginID,
	AdminLabel: "Broken/Missing",
	Category:   "Block",
	Provider:   "block",
}

// Module is the interface that all block modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// RegisteredPlugin holds the compiled Go part of a plugin.
type RegisteredPlugin struct {
	New Factory
}

// Registry holds plugin definitions and factories for a single application
// instance.
type Registry struct {
	factories   map[string]*RegisteredPlugin
	definitions map[string]Definition
}

// New creates a Registry that already knows the fallback plugin.
func New() *Registry {
	return &Registry{
		factories: map[string]*RegisteredPlugin{
			FallbackPluginID: {New: func(cfg Config) Instance { return NewBase(cfg) }},
		},
		definitions: map[string]Definition{
			FallbackPluginID: fallbackDefinition,
		},
	}
}

// RegisterPlugin registers the Go factory for a plugin id.
func (r *Registry) RegisterPlugin(id string, p *RegisteredPlugin) {
	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("plugin with id '%s' already registered", id))
	}
	if p == nil || p.New == nil {
		panic(fmt.Sprintf("plugin '%s' registered without a factory", id))
	}
	slog.Debug("Registering block plugin.", "id", id)
	r.factories[id] = p
}

// AddDefinition records a plugin definition. Later definitions for the same
// id replace earlier ones.
func (r *Registry) AddDefinition(def Definition) {
	r.definitions[def.ID] = def
}

// PopulateDefinitionsFromModel copies the plugin manifests loaded into the
// config model into the registry.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for id, def := range model.Plugins {
		r.AddDefinition(Definition{
			ID:         id,
			AdminLabel: def.AdminLabel,
			Category:   def.Category,
			Provider:   def.Provider,
		})
	}
}

// Definition returns the definition of a plugin id.
func (r *Registry) Definition(id string) (Definition, bool) {
	def, ok := r.definitions[id]
	return def, ok
}

// Definitions returns every known definition ordered by id.
func (r *Registry) Definitions() []Definition {
	ids := slices.Sorted(maps.Keys(r.definitions))
	out := make([]Definition, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.definitions[id])
	}
	return out
}

// Instantiate builds the plugin instance for id, configured with settings
// and owned by the entity ownerID. An id without both a definition and a
// factory resolves to the fallback plugin.
func (r *Registry) Instantiate(ctx context.Context, id string, settings map[string]any, ownerID string) Instance {
	def, hasDef := r.definitions[id]
	p, hasFactory := r.factories[id]
	if !hasDef || !hasFactory {
		ctxlog.FromContext(ctx).Warn("Block plugin not found, using fallback.",
			"plugin", id, "owner", ownerID, "has_definition", hasDef, "has_factory", hasFactory)
		def, p = r.definitions[FallbackPluginID], r.factories[FallbackPluginID]
	}

	return p.New(Config{
		PluginID:   def.ID,
		OwnerID:    ownerID,
		Settings:   settings,
		Definition: def,
	})
}
