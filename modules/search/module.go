// Package search provides the search form block plugin.
package search

import (
	"fmt"

	"github.com/specialistvlad/blockplace/internal/plugin"
)

// Module implements the plugin.Module interface for this package.
type Module struct{}

const defaultPage = "/search"

// FormBlock renders a search form posting to a search page.
type FormBlock struct {
	*plugin.Base
}

// NewFormBlock is the factory of search_form_block.
func NewFormBlock(cfg plugin.Config) plugin.Instance {
	return &FormBlock{Base: plugin.NewBase(cfg)}
}

// Page returns the path the form submits to.
func (b *FormBlock) Page() string {
	if p, ok := b.Setting("page").(string); ok && p != "" {
		return p
	}
	return defaultPage
}

func (b *FormBlock) Summary() string {
	return fmt.Sprintf("submits to %s", b.Page())
}

// Register registers the plugin factory with the registry.
func (m *Module) Register(r *plugin.Registry) {
	r.RegisterPlugin("search_form_block", &plugin.RegisteredPlugin{New: NewFormBlock})
}
