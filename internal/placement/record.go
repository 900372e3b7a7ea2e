package placement

import (
	"context"

	"github.com/specialistvlad/blockplace/internal/cachetag"
	"github.com/specialistvlad/blockplace/internal/condition"
	"github.com/specialistvlad/blockplace/internal/config"
	"github.com/specialistvlad/blockplace/internal/entity"
	"github.com/specialistvlad/blockplace/internal/plugin"
)

const (
	// EntityType is the entity type id of placement records.
	EntityType = "block"

	// RegionNone marks a placement that is not rendered in any region.
	RegionNone = "-1"

	// LabelSetting is the settings key that overrides the plugin's admin label.
	LabelSetting = "label"

	fieldTheme = "theme"
)

// PluginInstantiator resolves a plugin id and its settings into an instance.
// *plugin.Registry satisfies it.
type PluginInstantiator interface {
	Instantiate(ctx context.Context, id string, settings map[string]any, ownerID string) plugin.Instance
}

// Params is the configuration of a new Record.
type Params struct {
	ID       string
	Plugin   string
	Theme    string
	Region   string
	Weight   int
	Status   bool
	Settings map[string]any
}

// ParamsFromConfig converts a loaded placement into Params.
func ParamsFromConfig(p *config.Placement) Params {
	return Params{
		ID:       p.ID,
		Plugin:   p.Plugin,
		Theme:    p.Theme,
		Region:   p.Region,
		Weight:   p.Weight,
		Status:   p.Status,
		Settings: p.Settings,
	}
}

// Record is one block placement.
type Record struct {
	base     *entity.Base
	plugins  PluginInstantiator
	region   string
	weight   int
	pluginID string
	settings map[string]any

	instance plugin.Instance
}

// New creates a Record. An empty region means RegionNone. Settings are deep
// copied. A nil plugins resolves every plugin id to the fallback plugin.
func New(p Params, plugins PluginInstantiator, bus cachetag.Bus) *Record {
	region := p.Region
	if region == "" {
		region = RegionNone
	}
	if plugins == nil {
		plugins = plugin.New()
	}
	return &Record{
		base: entity.New(EntityType, p.ID, bus, map[string]any{
			fieldTheme:         p.Theme,
			entity.FieldStatus: p.Status,
		}),
		plugins:  plugins,
		region:   region,
		weight:   p.Weight,
		pluginID: p.Plugin,
		settings: condition.CloneConfig(p.Settings),
	}
}

func (r *Record) ID() string       { return r.base.ID() }
func (r *Record) UUID() string     { return r.base.UUID() }
func (r *Record) Status() bool     { return r.base.Status() }
func (r *Record) Region() string   { return r.region }
func (r *Record) Weight() int      { return r.weight }
func (r *Record) PluginID() string { return r.pluginID }

// Theme returns the theme the placement belongs to.
func (r *Record) Theme() string { return r.base.GetString(fieldTheme) }

// SetStatus enables or disables the placement.
func (r *Record) SetStatus(enabled bool) { r.base.SetStatus(enabled) }

// SetRegion moves the placement. RegionNone disables rendering.
func (r *Record) SetRegion(region string) {
	if region == "" {
		region = RegionNone
	}
	r.region = region
}

// SetWeight changes the ordering hint within the region.
func (r *Record) SetWeight(weight int) { r.weight = weight }

// Placed reports whether the placement is in a region.
func (r *Record) Placed() bool { return r.region != RegionNone }

// Settings returns a deep copy of the plugin settings.
func (r *Record) Settings() map[string]any { return condition.CloneConfig(r.settings) }

// Plugin returns the plugin instance, building it on first use. The same
// instance is returned for the lifetime of the record.
func (r *Record) Plugin() plugin.Instance {
	return r.PluginWithContext(context.Background())
}

// PluginWithContext is Plugin, with ctx used for logging the first build.
func (r *Record) PluginWithContext(ctx context.Context) plugin.Instance {
	if r.instance == nil {
		r.instance = r.plugins.Instantiate(ctx, r.pluginID, r.settings, r.ID())
	}
	return r.instance
}

// PluginCollections exposes the plugin instances owned by the record, keyed
// by the settings property that configures them.
func (r *Record) PluginCollections() map[string]plugin.Instance {
	return map[string]plugin.Instance{"settings": r.Plugin()}
}

// Label returns the settings label override, or the plugin's admin label.
func (r *Record) Label() string {
	if label, ok := r.settings[LabelSetting].(string); ok && label != "" {
		return label
	}
	return r.Plugin().Definition().AdminLabel
}

// CalculateDependencies rebuilds the dependency set: the modules providing
// the record's plugins and the theme.
func (r *Record) CalculateDependencies() map[string][]string {
	r.base.CalculateDependencies()
	for _, inst := range r.PluginCollections() {
		r.base.AddDependency("module", inst.Definition().Provider)
	}
	r.base.AddDependency("theme", r.Theme())
	return r.base.Dependencies()
}

// Dependencies returns the last calculated dependency set.
func (r *Record) Dependencies() map[string][]string { return r.base.Dependencies() }

// CacheTags returns the entity tags plus the theme tag, if there is a theme.
func (r *Record) CacheTags() []string {
	theme := r.Theme()
	if theme == "" {
		return cachetag.Merge(r.base.CacheTags())
	}
	return cachetag.Merge(r.base.CacheTags(), []string{cachetag.Tag("theme", theme)})
}

// PostSave runs after the record was stored. A new placement may appear on
// pages that never rendered it, so its tags are invalidated as well.
func (r *Record) PostSave(ctx context.Context, update bool) {
	r.base.PostSave(ctx, update, r.CacheTags())
	if !update {
		r.base.Invalidate(ctx, r.CacheTags())
	}
}

// PostDelete runs after the record was removed from storage.
func (r *Record) PostDelete(ctx context.Context) {
	r.base.PostDelete(ctx, r.CacheTags())
}

// Visibility returns the plugin's visibility condition configuration.
func (r *Record) Visibility() map[string]any {
	return r.Plugin().VisibilityConditions().Configuration()
}
