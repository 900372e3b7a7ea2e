package plugin

import (
	"maps"

	"github.com/specialistvlad/blockplace/internal/condition"
)

// VisibilitySetting is the settings key holding visibility conditions.
const VisibilitySetting = "visibility"

// Definition is the declared metadata of a plugin.
type Definition struct {
	ID         string
	AdminLabel string
	Category   string
	Provider   string
}

// Instance is a configured, runtime plugin.
type Instance interface {
	PluginID() string
	Definition() Definition
	Configuration() map[string]any
	VisibilityConditions() *condition.Set
}

// Config is everything a Factory receives to build an instance.
type Config struct {
	PluginID   string
	OwnerID    string
	Settings   map[string]any
	Definition Definition
}

// Factory builds a plugin instance. It must be deterministic for equal
// configs.
type Factory func(cfg Config) Instance

// Base is a complete Instance that modules can embed and extend.
type Base struct {
	id         string
	ownerID    string
	definition Definition
	settings   map[string]any
	visibility *condition.Set
}

// NewBase builds a Base from a factory config.
func NewBase(cfg Config) *Base {
	vis, _ := cfg.Settings[VisibilitySetting].(map[string]any)
	return &Base{
		id:         cfg.PluginID,
		ownerID:    cfg.OwnerID,
		definition: cfg.Definition,
		settings:   maps.Clone(cfg.Settings),
		visibility: condition.NewSet(vis),
	}
}

func (b *Base) PluginID() string       { return b.id }
func (b *Base) OwnerID() string        { return b.ownerID }
func (b *Base) Definition() Definition { return b.definition }

// Configuration returns a shallow copy of the plugin settings.
func (b *Base) Configuration() map[string]any {
	out := maps.Clone(b.settings)
	if out == nil {
		out = make(map[string]any)
	}
	return out
}

// Setting returns one plugin setting, or nil.
func (b *Base) Setting(name string) any { return b.settings[name] }

func (b *Base) VisibilityConditions() *condition.Set { return b.visibility }

// Summarizer is implemented by plugins that can describe their
// configuration in one line for administrative listings.
type Summarizer interface {
	Summary() string
}
