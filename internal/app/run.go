package app

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/specialistvlad/blockplace/internal/cachetag"
	"github.com/specialistvlad/blockplace/internal/ctxlog"
	"github.com/specialistvlad/blockplace/internal/placement"
	"github.com/specialistvlad/blockplace/internal/plugin"
)

// Run saves every loaded placement and writes the block listing of each
// theme (or only the configured one) to the output writer.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.cfg.ListPlugins {
		return a.writePlugins()
	}

	if err := a.SavePlacements(ctx); err != nil {
		return err
	}

	themes := a.store.Themes()
	if a.cfg.Theme != "" {
		themes = []string{a.cfg.Theme}
	}
	if len(themes) == 0 {
		a.logger.Warn("No block placements found, nothing to list.")
		return nil
	}

	for _, theme := range themes {
		if _, err := io.WriteString(a.outW, a.Listing(ctx, theme)); err != nil {
			return fmt.Errorf("failed to write listing for theme %s: %w", theme, err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// SavePlacements turns every loaded placement into a record and saves it.
func (a *App) SavePlacements(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	for _, p := range a.model.Placements {
		rec := placement.New(placement.ParamsFromConfig(p), a.registry, a.bus)
		if err := a.store.Save(ctxlog.With(ctx, "block", p.ID), rec); err != nil {
			return fmt.Errorf("failed to save block %s from %s: %w", p.ID, p.FilePath, err)
		}
	}
	a.logger.Info("Block placements saved.", "count", len(a.model.Placements))
	return nil
}

// Listing renders the administrative block listing of a theme. Results are
// cached until a block of the theme, or the block list, is invalidated.
func (a *App) Listing(ctx context.Context, theme string) string {
	key := "listing:" + theme
	if cached, ok := a.listings.Get(key); ok {
		ctxlog.FromContext(ctx).Debug("Block listing served from cache.", "theme", theme)
		return cached.(string)
	}

	records := a.store.LoadByTheme(theme)
	out := renderListing(theme, records)

	tags := []string{cachetag.Tag("theme", theme), placement.EntityType + "_list"}
	for _, rec := range records {
		tags = cachetag.Merge(tags, rec.CacheTags())
	}
	a.listings.Set(key, out, tags)
	return out
}

// writePlugins writes every available block plugin definition.
func (a *App) writePlugins() error {
	var b strings.Builder
	b.WriteString("Available blocks:\n")
	for _, def := range a.registry.Definitions() {
		fmt.Fprintf(&b, "  %s: %s (%s, %s)\n", def.ID, def.AdminLabel, def.Category, def.Provider)
	}
	if _, err := io.WriteString(a.outW, b.String()); err != nil {
		return fmt.Errorf("failed to write plugin list: %w", err)
	}
	return nil
}

func renderListing(theme string, records []*placement.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Theme: %s\n", theme)
	if len(records) == 0 {
		b.WriteString("  (no blocks)\n")
		return b.String()
	}

	groups := placement.GroupByRegion(records)
	regions := slices.Sorted(maps.Keys(groups))
	// The unplaced group always comes last.
	if i := slices.Index(regions, placement.RegionNone); i >= 0 {
		regions = append(slices.Delete(regions, i, i+1), placement.RegionNone)
	}

	for _, region := range regions {
		if region == placement.RegionNone {
			b.WriteString("  Disabled\n")
		} else {
			fmt.Fprintf(&b, "  %s\n", region)
		}
		for _, rec := range groups[region] {
			b.WriteString("    - ")
			b.WriteString(describe(rec))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func describe(rec *placement.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] weight=%d", rec.Label(), rec.PluginID(), rec.Weight())
	if s, ok := rec.Plugin().(plugin.Summarizer); ok {
		fmt.Fprintf(&b, " (%s)", s.Summary())
	}
	if !rec.Status() {
		b.WriteString(" disabled")
	}
	if conds := rec.Plugin().VisibilityConditions(); conds.Len() > 0 {
		fmt.Fprintf(&b, " visibility=%s", strings.Join(conds.IDs(), ","))
	}
	return b.String()
}
