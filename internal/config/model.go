package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given files or directories and
	// translates it into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Model is the unified representation of all loaded configuration.
type Model struct {
	Plugins    map[string]*PluginDefinition
	Placements []*Placement
}

// NewModel returns an empty, initialized Model.
func NewModel() *Model {
	return &Model{Plugins: make(map[string]*PluginDefinition)}
}

// PluginDefinition is the manifest of one block plugin.
type PluginDefinition struct {
	ID         string
	AdminLabel string
	Category   string
	Provider   string
	FilePath   string
}

// Placement is the stored configuration of one block placed in a theme.
type Placement struct {
	ID       string
	Plugin   string
	Theme    string
	Region   string
	Weight   int
	Status   bool
	Settings map[string]any
	FilePath string
}
