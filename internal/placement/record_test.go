package placement

import (
	"context"
	"testing"

	"github.com/specialistvlad/blockplace/internal/cachetag"
	"github.com/specialistvlad/blockplace/internal/config"
	"github.com/specialistvlad/blockplace/internal/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRegistry wraps a registry and counts Instantiate calls.
type countingRegistry struct {
	*plugin.Registry
	calls int
}

func (c *countingRegistry) Instantiate(ctx context.Context, id string, settings map[string]any, ownerID string) plugin.Instance {
	c.calls++
	return c.Registry.Instantiate(ctx, id, settings, ownerID)
}

func newTestRegistry() *countingRegistry {
	r := plugin.New()
	r.AddDefinition(plugin.Definition{ID: "search_form_block", AdminLabel: "Search block", Category: "Forms", Provider: "search"})
	r.RegisterPlugin("search_form_block", &plugin.RegisteredPlugin{New: func(cfg plugin.Config) plugin.Instance { return plugin.NewBase(cfg) }})
	return &countingRegistry{Registry: r}
}

func newRecord(t *testing.T, p Params, bus cachetag.Bus) (*Record, *countingRegistry) {
	t.Helper()
	reg := newTestRegistry()
	if p.Plugin == "" {
		p.Plugin = "search_form_block"
	}
	if p.Theme == "" {
		p.Theme = "bartik"
	}
	return New(p, reg, bus), reg
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	r, _ := newRecord(t, Params{ID: "bartik_search", Status: true}, nil)

	assert.Equal(t, "bartik_search", r.ID())
	assert.Equal(t, RegionNone, r.Region())
	assert.False(t, r.Placed())
	assert.Equal(t, 0, r.Weight())
	assert.Equal(t, "bartik", r.Theme())
	assert.NotEmpty(t, r.UUID())
	assert.Empty(t, r.Settings())
}

func TestParamsFromConfig(t *testing.T) {
	t.Parallel()

	p := ParamsFromConfig(&config.Placement{
		ID: "x", Plugin: "p", Theme: "bartik", Region: "header", Weight: 3, Status: true,
		Settings: map[string]any{"label": "L"},
	})
	assert.Equal(t, Params{
		ID: "x", Plugin: "p", Theme: "bartik", Region: "header", Weight: 3, Status: true,
		Settings: map[string]any{"label": "L"},
	}, p)
}

func TestPlugin_IsBuiltOnceAndCached(t *testing.T) {
	t.Parallel()

	r, reg := newRecord(t, Params{ID: "bartik_search", Settings: map[string]any{"label": "Find"}}, nil)
	assert.Equal(t, 0, reg.calls, "the plugin is not built before first use")

	first := r.Plugin()
	second := r.Plugin()
	_ = r.Label()
	_ = r.Visibility()

	assert.Same(t, first, second)
	assert.Equal(t, 1, reg.calls)
	assert.Equal(t, "search_form_block", first.PluginID())
	assert.Equal(t, "bartik_search", first.(*plugin.Base).OwnerID())
	assert.Equal(t, map[string]plugin.Instance{"settings": first}, r.PluginCollections())
}

func TestPlugin_UnknownIDUsesFallback(t *testing.T) {
	t.Parallel()

	r, _ := newRecord(t, Params{ID: "x", Plugin: "gone_block"}, nil)
	assert.Equal(t, plugin.FallbackPluginID, r.Plugin().PluginID())
	assert.Equal(t, "Broken/Missing", r.Label())
}

func TestLabel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		settings map[string]any
		want     string
	}{
		{name: "override wins", settings: map[string]any{"label": "Custom Title"}, want: "Custom Title"},
		{name: "empty override ignored", settings: map[string]any{"label": ""}, want: "Search block"},
		{name: "non-string override ignored", settings: map[string]any{"label": 42}, want: "Search block"},
		{name: "no settings", settings: nil, want: "Search block"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, _ := newRecord(t, Params{ID: "x", Settings: tc.settings}, nil)
			assert.Equal(t, tc.want, r.Label())
		})
	}
}

func TestSettings_AreCopied(t *testing.T) {
	t.Parallel()

	vis := map[string]any{
		"request_path": map[string]any{"pages": []any{"/node/*"}},
	}
	in := map[string]any{"label": "A", "visibility": vis}
	r, _ := newRecord(t, Params{ID: "x", Settings: in}, nil)

	in["label"] = "B"
	vis["user_role"] = map[string]any{}
	vis["request_path"].(map[string]any)["pages"].([]any)[0] = "/admin/*"

	out := r.Settings()
	out["label"] = "C"
	out["visibility"].(map[string]any)["injected"] = map[string]any{}

	assert.Equal(t, "A", r.Label())
	assert.Equal(t, map[string]any{
		"request_path": map[string]any{"pages": []any{"/node/*"}},
	}, r.Visibility())
	assert.Equal(t, map[string]any{"label": "A", "visibility": map[string]any{
		"request_path": map[string]any{"pages": []any{"/node/*"}},
	}}, r.Settings())
}

func TestNew_NilInstantiatorUsesFallback(t *testing.T) {
	t.Parallel()

	r := New(Params{ID: "x", Plugin: "search_form_block", Theme: "bartik"}, nil, nil)

	assert.Equal(t, plugin.FallbackPluginID, r.Plugin().PluginID())
	assert.Equal(t, "Broken/Missing", r.Label())
}

func TestCacheTags(t *testing.T) {
	t.Parallel()

	r, _ := newRecord(t, Params{ID: "1", Theme: "bartik"}, nil)
	assert.Equal(t, []string{"block:1", "theme:bartik"}, r.CacheTags())
}

func TestCacheTags_NoTheme(t *testing.T) {
	t.Parallel()

	r := New(Params{ID: "3", Plugin: "search_form_block"}, newTestRegistry(), nil)

	assert.Equal(t, []string{"block:3"}, r.CacheTags())
	assert.Equal(t, map[string][]string{"module": {"search"}}, r.CalculateDependencies())
}

func TestCalculateDependencies(t *testing.T) {
	t.Parallel()

	r, _ := newRecord(t, Params{ID: "1", Theme: "bartik"}, nil)

	first := r.CalculateDependencies()
	second := r.CalculateDependencies()

	want := map[string][]string{
		"module": {"search"},
		"theme":  {"bartik"},
	}
	assert.Equal(t, want, first)
	assert.Equal(t, want, second, "recalculating does not duplicate entries")
	assert.Equal(t, want, r.Dependencies())
}

func TestPostSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("new record invalidates its own tags", func(t *testing.T) {
		t.Parallel()
		bus := cachetag.NewMemoryBus()
		r, _ := newRecord(t, Params{ID: "1", Theme: "bartik"}, bus)

		r.PostSave(ctx, false)

		require.Equal(t, [][]string{
			{"block_list"},
			{"block:1", "theme:bartik"},
		}, bus.Invalidations())
	})

	t.Run("update relies on the default invalidation only", func(t *testing.T) {
		t.Parallel()
		bus := cachetag.NewMemoryBus()
		r, _ := newRecord(t, Params{ID: "1", Theme: "bartik"}, bus)

		r.PostSave(ctx, true)

		require.Equal(t, [][]string{
			{"block:1", "block_list", "theme:bartik"},
		}, bus.Invalidations())
	})

	t.Run("new record makes cached theme pages stale", func(t *testing.T) {
		t.Parallel()
		bus := cachetag.NewMemoryBus()
		pages := cachetag.NewRenderCache(bus)
		pages.Set("/node/1", "page", []string{"theme:bartik", "node:1"})
		pages.Set("/admin", "admin page", []string{"theme:seven"})

		r, _ := newRecord(t, Params{ID: "new_block", Theme: "bartik", Region: "header"}, bus)
		r.PostSave(ctx, false)

		_, ok := pages.Get("/node/1")
		assert.False(t, ok)
		_, ok = pages.Get("/admin")
		assert.True(t, ok)
	})
}

func TestPostDelete(t *testing.T) {
	t.Parallel()
	bus := cachetag.NewMemoryBus()
	r, _ := newRecord(t, Params{ID: "1", Theme: "bartik"}, bus)

	r.PostDelete(context.Background())
	assert.Equal(t, [][]string{{"block:1", "block_list", "theme:bartik"}}, bus.Invalidations())
}

func TestVisibility(t *testing.T) {
	t.Parallel()

	vis := map[string]any{
		"request_path": map[string]any{"pages": []any{"/node/*"}},
	}
	r, _ := newRecord(t, Params{ID: "1", Settings: map[string]any{"visibility": vis}}, nil)

	assert.Equal(t, vis, r.Visibility())

	r2, _ := newRecord(t, Params{ID: "2"}, nil)
	assert.Empty(t, r2.Visibility())
}

func TestSetters(t *testing.T) {
	t.Parallel()

	r, _ := newRecord(t, Params{ID: "1", Region: "header", Weight: 1, Status: true}, nil)
	r.SetRegion("")
	r.SetWeight(7)
	r.SetStatus(false)

	assert.Equal(t, RegionNone, r.Region())
	assert.Equal(t, 7, r.Weight())
	assert.False(t, r.Status())
}
