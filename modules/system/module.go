// Package system provides the site-wide block plugins.
package system

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/blockplace/internal/plugin"
)

// Module implements the plugin.Module interface for this package.
type Module struct{}

// BrandingBlock shows the site logo and name.
type BrandingBlock struct {
	*plugin.Base
}

// NewBrandingBlock is the factory of system_branding_block.
func NewBrandingBlock(cfg plugin.Config) plugin.Instance {
	return &BrandingBlock{Base: plugin.NewBase(cfg)}
}

// Summary lists the enabled branding elements.
func (b *BrandingBlock) Summary() string {
	var parts []string
	for _, name := range []string{"logo", "name", "slogan"} {
		if enabled(b.Setting("use_site_" + name), true) {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "nothing shown"
	}
	return "shows " + strings.Join(parts, ", ")
}

// PoweredByBlock shows a "Powered by" notice.
type PoweredByBlock struct {
	*plugin.Base
}

// NewPoweredByBlock is the factory of system_powered_by_block.
func NewPoweredByBlock(cfg plugin.Config) plugin.Instance {
	return &PoweredByBlock{Base: plugin.NewBase(cfg)}
}

func (b *PoweredByBlock) Summary() string {
	return fmt.Sprintf("Powered by %s", b.Definition().Provider)
}

// enabled reads a boolean setting, falling back to def when unset.
func enabled(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

// Register registers the plugin factories with the registry.
func (m *Module) Register(r *plugin.Registry) {
	r.RegisterPlugin("system_branding_block", &plugin.RegisteredPlugin{New: NewBrandingBlock})
	r.RegisterPlugin("system_powered_by_block", &plugin.RegisteredPlugin{New: NewPoweredByBlock})
}
