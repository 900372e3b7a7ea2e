package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/blockplace/internal/config"
	"github.com/specialistvlad/blockplace/internal/ctxlog"
	"github.com/specialistvlad/blockplace/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths. Any file may hold plugin
// manifests and block placements. Ids must be unique across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	placementFiles := make(map[string]string)
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, p := range root.Plugins {
			if prev, ok := model.Plugins[p.ID]; ok {
				return nil, fmt.Errorf("plugin '%s' in %s is already declared in %s", p.ID, file, prev.FilePath)
			}
			model.Plugins[p.ID] = translatePlugin(p, file)
		}

		for _, b := range root.Blocks {
			if prev, ok := placementFiles[b.ID]; ok {
				return nil, fmt.Errorf("block '%s' in %s is already declared in %s", b.ID, file, prev)
			}
			placement, err := translateBlock(b, file)
			if err != nil {
				return nil, err
			}
			placementFiles[b.ID] = file
			model.Placements = append(model.Placements, placement)
		}
	}

	logger.Debug("HCL loading complete.", "plugins", len(model.Plugins), "placements", len(model.Placements))
	return model, nil
}

func translatePlugin(p *pluginBlock, file string) *config.PluginDefinition {
	return &config.PluginDefinition{
		ID:         p.ID,
		AdminLabel: p.AdminLabel,
		Category:   p.Category,
		Provider:   p.Provider,
		FilePath:   file,
	}
}

func translateBlock(b *blockBlock, file string) (*config.Placement, error) {
	status := true
	if b.Status != nil {
		status = *b.Status
	}

	settings := map[string]any{}
	if b.Settings != nil {
		v, diags := b.Settings.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("block '%s' in %s: failed to evaluate settings: %w", b.ID, file, diags)
		}
		var err error
		settings, err = settingsFromValue(v)
		if err != nil {
			return nil, fmt.Errorf("block '%s' in %s: %w", b.ID, file, err)
		}
	}

	return &config.Placement{
		ID:       b.ID,
		Plugin:   b.Plugin,
		Theme:    b.Theme,
		Region:   b.Region,
		Weight:   b.Weight,
		Status:   status,
		Settings: settings,
		FilePath: file,
	}, nil
}
