package testutil

import "github.com/specialistvlad/blockplace/internal/plugin"

// NoopModule registers a plain plugin.Base factory for each of its ids.
type NoopModule struct {
	IDs []string
}

// Register implements plugin.Module.
func (m *NoopModule) Register(r *plugin.Registry) {
	for _, id := range m.IDs {
		r.RegisterPlugin(id, &plugin.RegisteredPlugin{New: func(cfg plugin.Config) plugin.Instance { return plugin.NewBase(cfg) }})
	}
}
