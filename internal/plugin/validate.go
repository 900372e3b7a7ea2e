package plugin

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/blockplace/internal/ctxlog"
	"go.uber.org/multierr"
)

// ValidateRegistry performs a strict parity check between manifests and Go
// code: every declared plugin must have a factory, every factory a
// declaration, and every declaration an admin label.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var err error

	for _, id := range slices.Sorted(maps.Keys(r.definitions)) {
		def := r.definitions[id]
		if _, ok := r.factories[id]; !ok {
			err = multierr.Append(err, fmt.Errorf("plugin '%s': manifest declares the plugin, but no Go module registers it", id))
		}
		if def.AdminLabel == "" {
			err = multierr.Append(err, fmt.Errorf("plugin '%s': manifest is missing 'admin_label'", id))
		}
		if def.Provider == "" {
			logger.Warn("Plugin manifest has no provider; no module dependency will be recorded.", "plugin", id)
		}
	}

	for _, id := range slices.Sorted(maps.Keys(r.factories)) {
		if _, ok := r.definitions[id]; !ok {
			err = multierr.Append(err, fmt.Errorf("plugin '%s': Go module registers the plugin, but no manifest declares it", id))
		}
	}

	if err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	logger.Debug("Plugin registry validated.", "plugins", len(r.definitions))
	return nil
}
